package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "bingo.db" {
			t.Errorf("expected database path bingo.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Defaults.Market != "GB" {
			t.Errorf("expected default market GB, got %s", config.Defaults.Market)
		}
		if config.Defaults.Cards != 6 {
			t.Errorf("expected default card count 6, got %d", config.Defaults.Cards)
		}
		if config.Defaults.CSVDir != "csv_files" || config.Defaults.PDFDir != "quiz_pdfs" {
			t.Errorf("unexpected output directories %s, %s", config.Defaults.CSVDir, config.Defaults.PDFDir)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9090/callback"

[defaults]
market = "SE"
cards = 10
csv_dir = "out/csv"
pdf_dir = "out/pdf"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("unexpected database path %s", config.Database.Path)
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("unexpected client_id %s", config.Credentials.Spotify.ClientID)
		}
		if config.Defaults.Market != "SE" || config.Defaults.Cards != 10 {
			t.Errorf("unexpected defaults %+v", config.Defaults)
		}
	})

	t.Run("LoadConfig applies environment overrides", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		t.Setenv("SPOTIFY_CLIENT_ID", "env_client")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_secret")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Credentials.Spotify.ClientID != "env_client" {
			t.Errorf("expected env override for client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected env override for client_secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.AccessToken = "token123"
		config.Credentials.Spotify.RefreshToken = "refresh456"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		if loaded.Credentials.Spotify.AccessToken != "token123" {
			t.Errorf("access token not persisted, got %s", loaded.Credentials.Spotify.AccessToken)
		}
		if loaded.Credentials.Spotify.RefreshToken != "refresh456" {
			t.Errorf("refresh token not persisted, got %s", loaded.Credentials.Spotify.RefreshToken)
		}
	})
}

func TestSpotifyConfig(t *testing.T) {
	t.Run("Update stores token fields", func(t *testing.T) {
		var config SpotifyConfig
		expiry := time.Now().Add(time.Hour)

		err := config.Update(&oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       expiry,
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		if config.AccessToken != "access" || config.RefreshToken != "refresh" {
			t.Errorf("tokens not stored: %+v", config)
		}
		if !config.TokenExpiry.Equal(expiry) {
			t.Errorf("expiry not stored: %v", config.TokenExpiry)
		}
	})

	t.Run("Update keeps refresh token when omitted", func(t *testing.T) {
		config := SpotifyConfig{RefreshToken: "original"}

		if err := config.Update(&oauth2.Token{AccessToken: "new"}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if config.RefreshToken != "original" {
			t.Errorf("expected refresh token preserved, got %s", config.RefreshToken)
		}
	})

	t.Run("Update rejects empty token", func(t *testing.T) {
		var config SpotifyConfig

		if err := config.Update(nil); err == nil {
			t.Error("expected error for nil token")
		}
		if err := config.Update(&oauth2.Token{}); err == nil {
			t.Error("expected error for empty access token")
		}
	})

	t.Run("Token reconstructs oauth2 token", func(t *testing.T) {
		config := SpotifyConfig{AccessToken: "a", RefreshToken: "r"}

		token := config.Token()
		if token.AccessToken != "a" || token.RefreshToken != "r" {
			t.Errorf("unexpected token %+v", token)
		}
	})
}
