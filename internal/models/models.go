// package models defines the data transfer objects shared across the bingo pipeline
package models

// Playlist represents playlist metadata from Spotify.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// PlaylistExport represents a playlist with its complete, ordered track listing.
type PlaylistExport struct {
	Playlist Playlist
	Market   string
	Tracks   []Track
}

// Track represents a single playlist entry.
//
// Artists holds all artist names joined by ", " since the card labels and the
// CSV interchange format treat the artist list as one display string.
type Track struct {
	ID       string
	Position int
	Title    string
	Artists  string
	Album    string
	AddedAt  string
	Duration int    // Duration in seconds
	ISRC     string // International Standard Recording Code
	URL      string // Open Spotify link
}
