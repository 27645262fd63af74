package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// CachedPlaylist is a playlist row from the library.
type CachedPlaylist struct {
	ID         string
	SpotifyID  string
	Name       string
	Market     string
	TrackCount int
	ExportedAt time.Time
}

// PlaylistRepository handles playlist rows in the track library.
type PlaylistRepository struct {
	db     *sql.DB
	tracks *TrackRepository
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db, tracks: NewTrackRepository(db)}
}

// SaveExport stores a playlist export, replacing any previous snapshot of the
// same Spotify playlist. The playlist row and all track rows are written in
// one transaction so the library never holds a partial export.
func (r *PlaylistRepository) SaveExport(export *models.PlaylistExport) error {
	if export == nil || export.Playlist.ID == "" {
		return fmt.Errorf("%w: export has no playlist ID", shared.ErrInvalidArgument)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascade removes the old snapshot's tracks.
	if _, err := tx.Exec("DELETE FROM playlists WHERE spotify_id = ?", export.Playlist.ID); err != nil {
		return fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	id := shared.GenerateID()
	_, err = tx.Exec(`
		INSERT INTO playlists (id, spotify_id, name, description, track_count, market, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		export.Playlist.ID,
		export.Playlist.Name,
		export.Playlist.Description,
		len(export.Tracks),
		export.Market,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	if err := r.tracks.createTx(tx, id, export.Tracks); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByName retrieves the most recently exported playlist whose name matches
// (case-insensitive), with its full track listing.
func (r *PlaylistRepository) GetByName(name string) (*models.PlaylistExport, error) {
	row := r.db.QueryRow(`
		SELECT id, spotify_id, name, description, market
		FROM playlists
		WHERE name = ? COLLATE NOCASE
		ORDER BY exported_at DESC
		LIMIT 1`, name)

	var id, spotifyID, plName, description, market string
	if err := row.Scan(&id, &spotifyID, &plName, &description, &market); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %q is not in the library", shared.ErrPlaylistNotFound, name)
		}
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	tracks, err := r.tracks.ListByPlaylist(id)
	if err != nil {
		return nil, err
	}

	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          spotifyID,
			Name:        plName,
			Description: description,
			TrackCount:  len(tracks),
		},
		Market: market,
		Tracks: tracks,
	}, nil
}

// List returns all cached playlists, most recently exported first.
func (r *PlaylistRepository) List() ([]CachedPlaylist, error) {
	rows, err := r.db.Query(`
		SELECT id, spotify_id, name, track_count, market, exported_at
		FROM playlists
		ORDER BY exported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []CachedPlaylist
	for rows.Next() {
		var p CachedPlaylist
		if err := rows.Scan(&p.ID, &p.SpotifyID, &p.Name, &p.TrackCount, &p.Market, &p.ExportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}

	return playlists, rows.Err()
}

// Delete removes a cached playlist by name; track rows go with it via the
// foreign key cascade.
func (r *PlaylistRepository) Delete(name string) error {
	result, err := r.db.Exec("DELETE FROM playlists WHERE name = ? COLLATE NOCASE", name)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q is not in the library", shared.ErrPlaylistNotFound, name)
	}

	return nil
}
