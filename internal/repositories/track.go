package repositories

import (
	"database/sql"
	"fmt"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// TrackRepository handles track rows in the track library.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// createTx inserts a playlist's tracks inside an existing transaction.
func (r *TrackRepository) createTx(tx *sql.Tx, playlistID string, tracks []models.Track) error {
	stmt, err := tx.Prepare(`
		INSERT INTO tracks (id, playlist_id, position, title, artists, album, added_at, duration, isrc, spotify_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for _, track := range tracks {
		_, err := stmt.Exec(
			shared.GenerateID(),
			playlistID,
			track.Position,
			track.Title,
			track.Artists,
			track.Album,
			track.AddedAt,
			track.Duration,
			track.ISRC,
			track.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert track %q: %w", track.Title, err)
		}
	}

	return nil
}

// ListByPlaylist returns a playlist's tracks in playlist order.
func (r *TrackRepository) ListByPlaylist(playlistID string) ([]models.Track, error) {
	rows, err := r.db.Query(`
		SELECT position, title, artists, album, added_at, duration, isrc, spotify_url
		FROM tracks
		WHERE playlist_id = ?
		ORDER BY position`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(&t.Position, &t.Title, &t.Artists, &t.Album, &t.AddedAt, &t.Duration, &t.ISRC, &t.URL); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, rows.Err()
}

// Count returns the number of cached tracks across all playlists.
func (r *TrackRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}
