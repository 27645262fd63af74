// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// MockService is a configurable test double for [services.Service]
type MockService struct {
	Playlists   []models.Playlist
	Export      *models.PlaylistExport
	AuthErr     error
	ExportErr   error
	ExportCalls []string
	Markets     []string
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthErr
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	return m.Playlists, nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	for _, pl := range m.Playlists {
		if pl.ID == playlistID {
			return &pl, nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (m *MockService) FindPlaylistByName(ctx context.Context, name string) (*models.Playlist, error) {
	for _, pl := range m.Playlists {
		if strings.EqualFold(pl.Name, name) {
			return &pl, nil
		}
	}
	return nil, shared.ErrPlaylistNotFound
}

func (m *MockService) ExportPlaylist(ctx context.Context, playlistID, market string, includeLocal bool) (*models.PlaylistExport, error) {
	m.ExportCalls = append(m.ExportCalls, playlistID)
	m.Markets = append(m.Markets, market)
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	if m.Export == nil || m.Export.Playlist.ID != playlistID {
		return nil, shared.ErrPlaylistNotFound
	}
	return m.Export, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
