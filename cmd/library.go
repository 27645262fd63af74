package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/bingo"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// LibraryList lists the playlist exports cached in the library.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	if r.library == nil {
		return fmt.Errorf("%w: library database not initialized, run 'bingo setup' first", shared.ErrServiceUnavailable)
	}

	playlists, err := r.library.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	if len(playlists) == 0 {
		r.writePlain("Library is empty. Run 'bingo export' to cache a playlist.\n")
		return nil
	}

	r.writePlain("Found %d cached playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		if p.Market != "" {
			r.writePlain("   Market: %s\n", p.Market)
		}
		r.writePlain("   Exported: %s\n\n", p.ExportedAt)
	}
	return nil
}

// LibraryShow prints a cached playlist's track listing.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}
	if r.library == nil {
		return fmt.Errorf("%w: library database not initialized, run 'bingo setup' first", shared.ErrServiceUnavailable)
	}

	export, err := r.library.GetByName(name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(export, true)
	}

	r.writePlainHeader(export.Playlist.Name)
	r.writePlain("Tracks: %d\n\n", len(export.Tracks))
	for _, track := range export.Tracks {
		r.writePlain("%d. %s\n", track.Position, bingo.Label(track))
	}
	return nil
}

// LibraryRemove deletes a cached playlist export.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}
	if r.library == nil {
		return fmt.Errorf("%w: library database not initialized, run 'bingo setup' first", shared.ErrServiceUnavailable)
	}

	if err := r.library.Delete(name); err != nil {
		return err
	}

	r.writePlain("✓ Removed %q from the library\n", name)
	return nil
}
