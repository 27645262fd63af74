package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/services"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
	tu "github.com/wjsmc123/music-bingo-generator-spotify/internal/testing"
)

// newTestApp builds the CLI command tree around a runner with temp output
// directories, returning the app and its output buffer.
func newTestApp(t *testing.T, spotify *tu.MockService) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.Defaults.CSVDir = filepath.Join(dir, "csv")
	config.Defaults.PDFDir = filepath.Join(dir, "pdf")

	// A typed nil mock must not become a non-nil Service.
	var svc services.Service
	if spotify != nil {
		svc = spotify
	}

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:  config,
		Spotify: svc,
		Logger:  shared.NewLogger(output),
		Output:  output,
	})

	app := &cli.Command{
		Name:     "bingo",
		Commands: runner.register(),
	}
	return app, output
}

func writePoolCSV(t *testing.T, trackCount int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("title,artists\n")
	for i := 1; i <= trackCount; i++ {
		fmt.Fprintf(&sb, "Song %d,Artist %d\n", i, i)
	}

	path := filepath.Join(t.TempDir(), "pool.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		t.Fatalf("failed to write pool CSV: %v", err)
	}
	return path
}

func mockExport(trackCount int) *tu.MockService {
	export := &models.PlaylistExport{
		Playlist: models.Playlist{ID: "sp1", Name: "Party Hits", TrackCount: trackCount},
	}
	for i := 1; i <= trackCount; i++ {
		export.Tracks = append(export.Tracks, models.Track{
			Position: i,
			Title:    fmt.Sprintf("Song %d", i),
			Artists:  fmt.Sprintf("Artist %d", i),
			Duration: 180,
		})
	}
	return &tu.MockService{
		Playlists: []models.Playlist{export.Playlist},
		Export:    export,
	}
}

func TestCardsCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a PDF from a CSV pool", func(t *testing.T) {
		app, output := newTestApp(t, nil)
		csvPath := writePoolCSV(t, 20)
		pdfPath := filepath.Join(t.TempDir(), "cards.pdf")

		err := app.Run(ctx, []string{"bingo", "cards", csvPath, "--cards", "2", "--seed", "7", "-o", pdfPath})
		if err != nil {
			t.Fatalf("cards command failed: %v", err)
		}

		tu.AssertFileExists(t, pdfPath)
		if !strings.Contains(output.String(), pdfPath) {
			t.Errorf("expected output to mention %s, got %q", pdfPath, output.String())
		}
		if !strings.Contains(output.String(), "Cards: 2") {
			t.Errorf("expected card count in output, got %q", output.String())
		}
	})

	t.Run("derives output path from source name", func(t *testing.T) {
		app, output := newTestApp(t, nil)
		csvPath := writePoolCSV(t, 20)

		if err := app.Run(ctx, []string{"bingo", "cards", csvPath, "--cards", "1"}); err != nil {
			t.Fatalf("cards command failed: %v", err)
		}
		if !strings.Contains(output.String(), "pool_bingo_cards.pdf") {
			t.Errorf("expected derived PDF name in output, got %q", output.String())
		}
	})

	t.Run("fails when pool is too small", func(t *testing.T) {
		app, _ := newTestApp(t, nil)
		csvPath := writePoolCSV(t, 10)

		err := app.Run(ctx, []string{"bingo", "cards", csvPath, "--cards", "1"})
		if !errors.Is(err, shared.ErrInsufficientTracks) {
			t.Errorf("expected ErrInsufficientTracks, got %v", err)
		}
	})

	t.Run("fails for no-repeat with insufficient pool", func(t *testing.T) {
		app, _ := newTestApp(t, nil)
		csvPath := writePoolCSV(t, 20)

		err := app.Run(ctx, []string{"bingo", "cards", csvPath, "--cards", "2", "--no-repeat"})
		if !errors.Is(err, shared.ErrInsufficientTracks) {
			t.Errorf("expected ErrInsufficientTracks, got %v", err)
		}
	})

	t.Run("requires a source argument", func(t *testing.T) {
		app, _ := newTestApp(t, nil)

		err := app.Run(ctx, []string{"bingo", "cards"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("from-library requires an initialized library", func(t *testing.T) {
		app, _ := newTestApp(t, nil)

		err := app.Run(ctx, []string{"bingo", "cards", "Party Hits", "--from-library"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("writes a CSV for a playlist", func(t *testing.T) {
		app, output := newTestApp(t, mockExport(5))
		csvPath := filepath.Join(t.TempDir(), "party.csv")

		err := app.Run(ctx, []string{"bingo", "export", "sp1", "-o", csvPath})
		if err != nil {
			t.Fatalf("export command failed: %v", err)
		}

		tu.AssertFileExists(t, csvPath)
		content := tu.MustReadFile(t, csvPath)
		if !strings.Contains(content, "Song 3,Artist 3") {
			t.Errorf("CSV missing track row:\n%s", content)
		}
		if !strings.Contains(output.String(), "Tracks: 5") {
			t.Errorf("expected track count in output, got %q", output.String())
		}
	})

	t.Run("resolves playlists by name", func(t *testing.T) {
		svc := mockExport(3)
		app, _ := newTestApp(t, svc)

		err := app.Run(ctx, []string{"bingo", "export", "Party Hits", "-o", filepath.Join(t.TempDir(), "out.csv")})
		if err != nil {
			t.Fatalf("export command failed: %v", err)
		}
		if len(svc.ExportCalls) != 2 || svc.ExportCalls[1] != "sp1" {
			t.Errorf("expected name resolution retry, got calls %v", svc.ExportCalls)
		}
	})

	t.Run("passes the market flag through", func(t *testing.T) {
		svc := mockExport(3)
		app, _ := newTestApp(t, svc)

		err := app.Run(ctx, []string{"bingo", "export", "sp1", "-m", "SE", "-o", filepath.Join(t.TempDir(), "out.csv")})
		if err != nil {
			t.Fatalf("export command failed: %v", err)
		}
		if len(svc.Markets) == 0 || svc.Markets[0] != "SE" {
			t.Errorf("expected market SE, got %v", svc.Markets)
		}
	})

	t.Run("fails without a Spotify service", func(t *testing.T) {
		app, _ := newTestApp(t, nil)

		err := app.Run(ctx, []string{"bingo", "export", "sp1"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("full pipeline writes CSV and PDF", func(t *testing.T) {
		app, output := newTestApp(t, mockExport(20))

		err := app.Run(ctx, []string{"bingo", "run", "sp1", "--cards", "2", "--seed", "11"})
		if err != nil {
			t.Fatalf("run command failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "party_hits.csv") {
			t.Errorf("expected CSV path in output, got %q", out)
		}
		if !strings.Contains(out, "party_hits_bingo_cards.pdf") {
			t.Errorf("expected PDF path in output, got %q", out)
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		app, _ := newTestApp(t, mockExport(20))

		err := app.Run(ctx, []string{"bingo", "run", "absent"})
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}
