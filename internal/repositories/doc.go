// Package repositories implements SQLite persistence for the local track library.
//
// Exports are cached so cards can be regenerated without re-fetching from the
// API. [PlaylistRepository] owns playlist rows and delegates track rows to
// [TrackRepository]; saving an export replaces any previous snapshot of the
// same playlist atomically, and deleting a playlist cascades to its tracks.
package repositories
