package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/tasks"
)

// Export fetches a playlist by name or ID and writes its tracks as CSV.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	playlist := cmd.StringArg("playlist")
	if playlist == "" {
		return fmt.Errorf("%w: playlist name or ID is required", shared.ErrMissingArgument)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'bingo auth' first", shared.ErrServiceUnavailable)
	}

	opts := tasks.ExportOpts{
		Market:       cmd.String("market"),
		IncludeLocal: cmd.Bool("include-local"),
		OutputPath:   cmd.String("output"),
		OutputDir:    r.config.Defaults.CSVDir,
		SkipCache:    cmd.Bool("no-cache"),
	}

	r.logger.Infof("exporting spotify playlist %v (market %v)", playlist, opts.Market)

	result, err := r.exportWithRetry(ctx, cmd, playlist, opts)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ Playlist exported to %s\n", result.Path)
	r.writePlain("  Playlist: %s\n", result.Export.Playlist.Name)
	r.writePlain("  Tracks: %d\n", result.TrackCount)
	if result.Cached {
		r.writePlain("  Saved to library\n")
	}
	return nil
}

// Run exports a playlist and generates bingo cards from it in one pass.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	playlist := cmd.StringArg("playlist")
	if playlist == "" {
		return fmt.Errorf("%w: playlist name or ID is required", shared.ErrMissingArgument)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'bingo auth' first", shared.ErrServiceUnavailable)
	}

	exportOpts := tasks.ExportOpts{
		Market:       cmd.String("market"),
		IncludeLocal: cmd.Bool("include-local"),
		OutputDir:    r.config.Defaults.CSVDir,
	}
	cardOpts := r.cardOptsFromFlags(cmd)

	r.logger.Infof("running pipeline for playlist %v", playlist)

	var result *tasks.RunResult
	err := r.runWithProgress(func(progress chan<- tasks.ProgressUpdate) error {
		var runErr error
		result, runErr = r.engine.Run(ctx, progress, playlist, exportOpts, cardOpts)
		return runErr
	})
	if err != nil {
		if reauthed, authErr := r.handleSpotifyAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			err = r.runWithProgress(func(progress chan<- tasks.ProgressUpdate) error {
				var runErr error
				result, runErr = r.engine.Run(ctx, progress, playlist, exportOpts, cardOpts)
				return runErr
			})
			if err != nil {
				return err
			}
		} else {
			return err
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlainln("✓ Pipeline complete")
	r.writePlain("  CSV: %s (%d tracks)\n", result.Export.Path, result.Export.TrackCount)
	r.writePlain("  PDF: %s (%d cards)\n", result.Cards.Path, len(result.Cards.Set))
	return nil
}

// exportWithRetry runs the export once, reauthorizing and retrying on an
// expired token.
func (r *Runner) exportWithRetry(ctx context.Context, cmd *cli.Command, playlist string, opts tasks.ExportOpts) (*tasks.ExportResult, error) {
	var result *tasks.ExportResult
	run := func() error {
		return r.runWithProgress(func(progress chan<- tasks.ProgressUpdate) error {
			var err error
			result, err = r.engine.Export(ctx, progress, playlist, opts)
			return err
		})
	}

	err := run()
	if err != nil {
		reauthed, authErr := r.handleSpotifyAuthError(ctx, err, cmd)
		if !reauthed {
			return nil, err
		}
		if authErr != nil {
			return nil, authErr
		}
		if err := run(); err != nil {
			return nil, err
		}
	}
	return result, nil
}
