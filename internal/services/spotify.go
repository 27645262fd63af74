// Spotify API implementation of [Service]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	playlistPageSize = 50
	trackPageSize    = 100
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type externalIDs struct {
	ISRC string `json:"isrc"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	IsLocal      bool            `json:"is_local"`
	ExternalIDs  externalIDs     `json:"external_ids"`
	ExternalURLs externalURLs    `json:"external_urls"`
}

// SpotifyPlaylistTrack represents a track within a playlist context.
type SpotifyPlaylistTrack struct {
	AddedAt string        `json:"added_at"`
	Track   *SpotifyTrack `json:"track"`
}

// SpotifyPaginatedPlaylistTracks represents one page of a playlist's track listing.
type SpotifyPaginatedPlaylistTracks struct {
	Items  []SpotifyPlaylistTrack `json:"items"`
	Total  int                    `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
	Next   *string                `json:"next"`
}

type playlistTrackCount struct {
	Total int `json:"total"`
}

// SpotifySimplePlaylist represents a simplified playlist object (used in lists).
type SpotifySimplePlaylist struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Public      bool               `json:"public"`
	Tracks      playlistTrackCount `json:"tracks"`
}

// SpotifyPaginatedPlaylists represents a paginated response of playlists.
type SpotifyPaginatedPlaylists struct {
	Items  []SpotifySimplePlaylist `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
	Next   *string                 `json:"next"`
}

// SpotifyService implements [Service] and [OAuthService] for the Spotify Web API.
//
// Page requests share a [rate.Limiter] so long playlists do not trip the
// API's rate limits.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"playlist-read-private",
			"playlist-read-collaborative",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate performs authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		token := &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		}
		return s.OAuthenticate(ctx, token)
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		return s.OAuthenticate(ctx, token)
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// OAuthenticate installs a token obtained from the authorization flow.
func (s *SpotifyService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}
	s.token = token
	s.httpClient = s.config.Client(ctx, token)
	return nil
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig exposes the OAuth2 config for the callback server.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated, rate-limited GET against the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrPlaylistNotFound, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetPlaylists retrieves all of the current user's playlists, traversing every page.
func (s *SpotifyService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var all []models.Playlist
	offset := 0

	for {
		endpoint := fmt.Sprintf("/me/playlists?limit=%d&offset=%d", playlistPageSize, offset)

		var page SpotifyPaginatedPlaylists
		if err := s.doRequest(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		for _, sp := range page.Items {
			all = append(all, models.Playlist{
				ID:          sp.ID,
				Name:        sp.Name,
				Description: sp.Description,
				TrackCount:  sp.Tracks.Total,
				Public:      sp.Public,
			})
		}

		if page.Next == nil {
			break
		}
		offset += playlistPageSize
	}

	return all, nil
}

// GetPlaylist retrieves a specific playlist by ID.
func (s *SpotifyService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("/playlists/%s?fields=id,name,description,public,tracks.total", url.PathEscape(playlistID))

	var sp SpotifySimplePlaylist
	if err := s.doRequest(ctx, endpoint, &sp); err != nil {
		return nil, err
	}

	return &models.Playlist{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		TrackCount:  sp.Tracks.Total,
		Public:      sp.Public,
	}, nil
}

// FindPlaylistByName picks the best match for a free-form name among the
// user's playlists.
//
// Exact (case-insensitive) matches win, then substring matches penalized by
// length difference, then simple word overlap. No overlap at all means not
// found.
func (s *SpotifyService) FindPlaylistByName(ctx context.Context, name string) (*models.Playlist, error) {
	playlists, err := s.GetPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(strings.TrimSpace(name))
	var best *models.Playlist
	bestScore := 0

	for i := range playlists {
		candidate := strings.ToLower(playlists[i].Name)

		var score int
		switch {
		case candidate == target:
			score = 100
		case strings.Contains(candidate, target):
			score = 80 - abs(len(candidate)-len(target))
		default:
			score = wordOverlap(target, candidate)
		}

		if score > bestScore {
			bestScore = score
			best = &playlists[i]
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no playlist matching %q", shared.ErrPlaylistNotFound, name)
	}
	return best, nil
}

// ExportPlaylist exports a playlist with all its tracks, following pagination
// until the listing is exhausted.
func (s *SpotifyService) ExportPlaylist(ctx context.Context, playlistID, market string, includeLocal bool) (*models.PlaylistExport, error) {
	playlist, err := s.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	export := &models.PlaylistExport{Playlist: *playlist, Market: market}

	offset := 0
	position := 0
	for {
		query := url.Values{}
		query.Set("limit", fmt.Sprintf("%d", trackPageSize))
		query.Set("offset", fmt.Sprintf("%d", offset))
		query.Set("additional_types", "track")
		if market != "" {
			query.Set("market", market)
		}
		endpoint := fmt.Sprintf("/playlists/%s/tracks?%s", url.PathEscape(playlistID), query.Encode())

		var page SpotifyPaginatedPlaylistTracks
		if err := s.doRequest(ctx, endpoint, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			tr := item.Track
			if tr == nil {
				continue
			}
			if tr.IsLocal && !includeLocal {
				continue
			}

			position++
			export.Tracks = append(export.Tracks, models.Track{
				ID:       tr.ID,
				Position: position,
				Title:    strings.TrimSpace(tr.Name),
				Artists:  joinArtists(tr.Artists),
				Album:    strings.TrimSpace(tr.Album.Name),
				AddedAt:  item.AddedAt,
				Duration: tr.DurationMS / 1000,
				ISRC:     strings.TrimSpace(tr.ExternalIDs.ISRC),
				URL:      tr.ExternalURLs.Spotify,
			})
		}

		if page.Next == nil {
			break
		}
		offset += trackPageSize
	}

	return export, nil
}

// joinArtists joins all artist names with ", ", skipping empty entries.
func joinArtists(artists []SpotifyArtist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func wordOverlap(a, b string) int {
	words := map[string]bool{}
	for _, w := range strings.Fields(a) {
		words[w] = true
	}

	count := 0
	for _, w := range strings.Fields(b) {
		if words[w] {
			count++
			delete(words, w)
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
