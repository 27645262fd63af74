// Package services implements the Spotify Web API client used by the exporter.
//
// [SpotifyService] authenticates via OAuth2 authorization code flow
// (golang.org/x/oauth2) and exposes playlist listing, best-match lookup by
// name, and full playlist export with offset pagination. Page requests are
// rate limited so exporting long playlists stays inside the API's limits.
//
// The [Service] interface exists so the pipeline and TUI can be tested
// against a mock without network access.
package services
