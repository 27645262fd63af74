package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/repositories"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/services"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.Service
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			if config.Credentials.Spotify.AccessToken != "" {
				svc.OAuthenticate(context.Background(), config.Credentials.Spotify.Token())
			}
			spotifyService = svc
		}
	}

	// The library is only wired when the database already exists so plain
	// exports do not leave a stray db file behind. `bingo setup` creates it.
	var library *repositories.PlaylistRepository
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			if err := shared.RunMigrations(db); err == nil {
				library = repositories.NewPlaylistRepository(db)
			} else {
				logger.Warn("failed to migrate library database", "error", err)
				db.Close()
			}
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Spotify:    spotifyService,
		Library:    library,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "bingo",
		Usage:    "Export Spotify playlists and generate music bingo cards",
		Version:  "0.3.0",
		Commands: runner.register(),
		Action:   runner.TUI,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
