// package services defines interface Service for interacting with the Spotify Web API
package services

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
)

// Service defines the operations the exporter needs from a music service.
type Service interface {
	// Authenticate performs token-based authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// FindPlaylistByName picks the best-matching playlist among the user's
	// playlists for a free-form name.
	FindPlaylistByName(ctx context.Context, name string) (*models.Playlist, error)

	// ExportPlaylist exports a playlist with all its tracks, traversing every
	// page of the track listing. The market code biases track metadata and
	// may be empty. Local tracks are skipped unless includeLocal is set.
	ExportPlaylist(ctx context.Context, playlistID, market string, includeLocal bool) (*models.PlaylistExport, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService is implemented by services that authenticate via OAuth2
// authorization code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for the callback server.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs a previously obtained token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}
