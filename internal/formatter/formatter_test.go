package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

func sampleExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:         "pl123",
			Name:       "Quiz Night",
			TrackCount: 2,
		},
		Tracks: []models.Track{
			{
				Position: 1,
				Title:    "Song One",
				Artists:  "Artist One",
				Album:    "Album One",
				AddedAt:  "2024-01-01T00:00:00Z",
				Duration: 180,
				ISRC:     "USRC12345678",
				URL:      "https://open.spotify.com/track/t1",
			},
			{
				Position: 2,
				Title:    "Song Two",
				Artists:  "Artist Two, Artist Three",
				Album:    "Album Two",
				Duration: 240,
			},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	t.Run("writes header and rows", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, strings.Join(Header, ",")) {
			t.Errorf("CSV missing header, got: %s", output)
		}
		if !strings.Contains(output, "Song One") {
			t.Error("CSV missing first track title")
		}
		if !strings.Contains(output, `"Artist Two, Artist Three"`) {
			t.Error("CSV should quote joined artist names")
		}
		if !strings.Contains(output, "Quiz Night") {
			t.Error("CSV missing playlist name column")
		}
	})

	t.Run("drops exact duplicate rows", func(t *testing.T) {
		export := sampleExport()
		export.Tracks = append(export.Tracks, export.Tracks[0])

		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		if got := strings.Count(string(data), "Song One"); got != 1 {
			t.Errorf("expected duplicate row dropped, found %d occurrences", got)
		}
	})
}

func TestWriteTracksCSV(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "csv_files", "quiz.csv")

		if err := WriteTracksCSV(sampleExport(), path); err != nil {
			t.Fatalf("WriteTracksCSV failed: %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected CSV file to exist: %v", err)
		}
	})
}

func TestReadTracksCSV(t *testing.T) {
	writeCSV := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "tracks.csv")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test CSV: %v", err)
		}
		return path
	}

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tracks.csv")
		if err := WriteTracksCSV(sampleExport(), path); err != nil {
			t.Fatalf("WriteTracksCSV failed: %v", err)
		}

		tracks, err := ReadTracksCSV(path)
		if err != nil {
			t.Fatalf("ReadTracksCSV failed: %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].Title != "Song One" || tracks[0].Artists != "Artist One" {
			t.Errorf("unexpected first track %+v", tracks[0])
		}
		if tracks[1].Album != "Album Two" {
			t.Errorf("expected album column read back, got %q", tracks[1].Album)
		}
	})

	t.Run("accepts header aliases", func(t *testing.T) {
		path := writeCSV(t, "Track,Artist\nSong,Someone\n")

		tracks, err := ReadTracksCSV(path)
		if err != nil {
			t.Fatalf("ReadTracksCSV failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].Title != "Song" {
			t.Errorf("unexpected tracks %+v", tracks)
		}
	})

	t.Run("skips incomplete rows and collapses duplicates", func(t *testing.T) {
		path := writeCSV(t, "title,artists\nSong,Someone\n,NoTitle\nNoArtist,\nsong,SOMEONE\n")

		tracks, err := ReadTracksCSV(path)
		if err != nil {
			t.Fatalf("ReadTracksCSV failed: %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "title,album\nSong,LP\n")

		_, err := ReadTracksCSV(path)
		if !errors.Is(err, shared.ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadTracksCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
