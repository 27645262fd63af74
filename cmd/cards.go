package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/tasks"
)

// Cards generates bingo card PDFs from a CSV file or a library export.
func (r *Runner) Cards(ctx context.Context, cmd *cli.Command) error {
	source := cmd.StringArg("source")
	if source == "" {
		return fmt.Errorf("%w: CSV path or library playlist name is required", shared.ErrMissingArgument)
	}

	opts := r.cardOptsFromFlags(cmd)
	opts.Source = source
	opts.FromLibrary = cmd.Bool("from-library")

	if opts.FromLibrary && r.library == nil {
		return fmt.Errorf("%w: library database not initialized, run 'bingo setup' first", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("generating %v cards from %v", opts.Cards, source)

	var result *tasks.CardsResult
	err := r.runWithProgress(func(progress chan<- tasks.ProgressUpdate) error {
		var cardsErr error
		result, cardsErr = r.engine.Cards(ctx, progress, opts)
		return cardsErr
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, true)
	}

	r.writePlain("✓ Cards written to %s\n", result.Path)
	r.writePlain("  Cards: %d\n", len(result.Set))
	r.writePlain("  Track pool: %d\n", result.PoolSize)
	return nil
}

// cardOptsFromFlags builds CardOpts from the flags shared by cards and run.
func (r *Runner) cardOptsFromFlags(cmd *cli.Command) tasks.CardOpts {
	opts := tasks.CardOpts{
		Cards:      cmd.Int("cards"),
		NoRepeat:   cmd.Bool("no-repeat"),
		Title:      cmd.String("title"),
		Subtitle:   cmd.String("subtitle"),
		OutputPath: cmd.String("output"),
		OutputDir:  r.config.Defaults.PDFDir,
	}
	if cmd.IsSet("seed") {
		seed := cmd.Int64("seed")
		opts.Seed = &seed
	}
	return opts
}
