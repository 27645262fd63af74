package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testExport(spotifyID, name string, trackCount int) *models.PlaylistExport {
	export := &models.PlaylistExport{
		Playlist: models.Playlist{ID: spotifyID, Name: name},
		Market:   "GB",
	}
	for i := 1; i <= trackCount; i++ {
		export.Tracks = append(export.Tracks, models.Track{
			Position: i,
			Title:    fmt.Sprintf("Track %d", i),
			Artists:  fmt.Sprintf("Artist %d", i),
			Album:    "Album",
			Duration: 180 + i,
		})
	}
	return export
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("SaveExport and GetByName round trip", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		if err := repo.SaveExport(testExport("sp1", "Quiz Night", 3)); err != nil {
			t.Fatalf("SaveExport failed: %v", err)
		}

		got, err := repo.GetByName("quiz night")
		if err != nil {
			t.Fatalf("GetByName failed: %v", err)
		}
		if got.Playlist.ID != "sp1" {
			t.Errorf("unexpected spotify ID %q", got.Playlist.ID)
		}
		if got.Market != "GB" {
			t.Errorf("unexpected market %q", got.Market)
		}
		if len(got.Tracks) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(got.Tracks))
		}
		if got.Tracks[0].Title != "Track 1" || got.Tracks[2].Position != 3 {
			t.Errorf("tracks not returned in playlist order: %+v", got.Tracks)
		}
	})

	t.Run("SaveExport replaces previous snapshot", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)
		tracks := NewTrackRepository(db)

		if err := repo.SaveExport(testExport("sp1", "Quiz Night", 5)); err != nil {
			t.Fatalf("first SaveExport failed: %v", err)
		}
		if err := repo.SaveExport(testExport("sp1", "Quiz Night", 2)); err != nil {
			t.Fatalf("second SaveExport failed: %v", err)
		}

		got, err := repo.GetByName("Quiz Night")
		if err != nil {
			t.Fatalf("GetByName failed: %v", err)
		}
		if len(got.Tracks) != 2 {
			t.Errorf("expected snapshot replaced with 2 tracks, got %d", len(got.Tracks))
		}

		count, err := tracks.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 2 {
			t.Errorf("expected old track rows removed, have %d", count)
		}
	})

	t.Run("GetByName unknown playlist", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		_, err := repo.GetByName("absent")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("List orders by export time", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		if err := repo.SaveExport(testExport("sp1", "First", 1)); err != nil {
			t.Fatalf("SaveExport failed: %v", err)
		}
		if err := repo.SaveExport(testExport("sp2", "Second", 1)); err != nil {
			t.Fatalf("SaveExport failed: %v", err)
		}

		playlists, err := repo.List()
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
	})

	t.Run("Delete cascades to tracks", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewPlaylistRepository(db)
		tracks := NewTrackRepository(db)

		if err := repo.SaveExport(testExport("sp1", "Quiz Night", 4)); err != nil {
			t.Fatalf("SaveExport failed: %v", err)
		}

		if err := repo.Delete("Quiz Night"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		count, err := tracks.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected cascade delete, have %d track rows", count)
		}

		if err := repo.Delete("Quiz Night"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound on second delete, got %v", err)
		}
	})

	t.Run("SaveExport validates input", func(t *testing.T) {
		repo := NewPlaylistRepository(newTestDB(t))

		if err := repo.SaveExport(&models.PlaylistExport{}); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
