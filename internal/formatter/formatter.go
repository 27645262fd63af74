// package formatter handles the CSV interchange format between the exporter and the card generator
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// Header is the stable column layout written by the exporter.
//
// The generator only requires title and artists; everything else is carried
// for other consumers of the export.
var Header = []string{
	"position", "title", "artists", "album", "added_at",
	"duration", "isrc", "spotify_url", "playlist_name", "playlist_id",
}

// ExportToCSV renders a playlist export as CSV bytes.
//
// Exact duplicate rows (same title, artists, album and URL) are dropped, so
// a playlist containing the same recording twice yields one row.
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	seen := map[string]bool{}
	for _, track := range export.Tracks {
		key := strings.Join([]string{track.Title, track.Artists, track.Album, track.URL}, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true

		record := []string{
			strconv.Itoa(track.Position),
			track.Title,
			track.Artists,
			track.Album,
			track.AddedAt,
			strconv.Itoa(track.Duration),
			track.ISRC,
			track.URL,
			export.Playlist.Name,
			export.Playlist.ID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteTracksCSV writes a playlist export to path.
//
// The file content is fully built in memory first so a failure never leaves a
// partial CSV behind. Parent directories are created as needed.
func WriteTracksCSV(export *models.PlaylistExport, path string) error {
	data, err := ExportToCSV(export)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}

// titleAliases and artistAliases are the accepted header spellings for the
// two required columns, checked case-insensitively.
var (
	titleAliases  = []string{"title", "track", "name"}
	artistAliases = []string{"artists", "artist"}
)

// ReadTracksCSV reads a track pool from a CSV file.
//
// Only the title and artists columns are required; rows missing either value
// are skipped and duplicate (title, artists) pairs are collapsed
// case-insensitively. A file without the required columns is an
// invalid-argument error.
func ReadTracksCSV(path string) ([]models.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV file", shared.ErrInvalidInput)
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	titleCol, ok := findColumn(columns, titleAliases)
	if !ok {
		return nil, fmt.Errorf("%w: CSV must contain a 'title' column", shared.ErrMissingColumn)
	}
	artistCol, ok := findColumn(columns, artistAliases)
	if !ok {
		return nil, fmt.Errorf("%w: CSV must contain an 'artists' column", shared.ErrMissingColumn)
	}
	albumCol, hasAlbum := columns["album"]

	seen := map[string]bool{}
	var tracks []models.Track
	for _, record := range records[1:] {
		title := fieldAt(record, titleCol)
		artists := fieldAt(record, artistCol)
		if title == "" || artists == "" {
			continue
		}

		key := strings.ToLower(title) + "\x00" + strings.ToLower(artists)
		if seen[key] {
			continue
		}
		seen[key] = true

		track := models.Track{Position: len(tracks) + 1, Title: title, Artists: artists}
		if hasAlbum {
			track.Album = fieldAt(record, albumCol)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

func findColumn(columns map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := columns[alias]; ok {
			return idx, true
		}
	}
	return 0, false
}

func fieldAt(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
