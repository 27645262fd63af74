package tasks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/bingo"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/formatter"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/render"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/services"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// ExportOpts contains configuration for a playlist export.
type ExportOpts struct {
	Market       string // Spotify market code for track relinking (e.g. "GB")
	IncludeLocal bool   // Include local files from the playlist
	OutputPath   string // Explicit CSV path; derived from the playlist name when empty
	OutputDir    string // Directory for derived CSV paths
	SkipCache    bool   // Do not save the export to the library
}

// ExportResult contains all data from a completed export.
type ExportResult struct {
	Export     *models.PlaylistExport // Playlist with its full track listing
	Path       string                 // CSV file written
	TrackCount int                    // Rows exported
	Cached     bool                   // Export was saved to the library
}

// CardOpts contains configuration for card generation.
type CardOpts struct {
	Source      string // CSV path, or a playlist name when FromLibrary is set
	FromLibrary bool   // Load the pool from the local library instead of a CSV
	Cards       int    // Number of cards (default 6)
	NoRepeat    bool   // No track may appear on more than one card
	Seed        *int64 // Deterministic sampling seed (random when nil)
	Title       string // Optional page title
	Subtitle    string // Optional page subtitle
	OutputPath  string // Explicit PDF path; derived from the source when empty
	OutputDir   string // Directory for derived PDF paths
}

// CardsResult contains all data from a completed card generation.
type CardsResult struct {
	Path     string        // PDF file written
	Set      bingo.CardSet // Generated cards
	PoolSize int           // Distinct tracks available for sampling
}

// RunResult contains the results of a full export-then-cards pipeline.
type RunResult struct {
	Export *ExportResult
	Cards  *CardsResult
}

// defaultCards is the number of cards generated when the caller does not ask
// for a specific count.
const defaultCards = 6

// Engine defines the playlist-to-bingo-card pipeline operations.
type Engine interface {
	// Export fetches a playlist by ID or name and writes its tracks as CSV.
	Export(ctx context.Context, progress chan<- ProgressUpdate, nameOrID string, opts ExportOpts) (*ExportResult, error)

	// Cards builds a bingo card PDF from a CSV file or a cached library export.
	Cards(ctx context.Context, progress chan<- ProgressUpdate, opts CardOpts) (*CardsResult, error)

	// Run performs the full pipeline by exporting a playlist and generating cards from it.
	Run(ctx context.Context, progress chan<- ProgressUpdate, nameOrID string, exportOpts ExportOpts, cardOpts CardOpts) (*RunResult, error)
}

// Cacher persists playlist exports for offline reuse.
//
// Implemented by repositories.PlaylistRepository.
type Cacher interface {
	SaveExport(export *models.PlaylistExport) error
	GetByName(name string) (*models.PlaylistExport, error)
}

// BingoEngine implements Engine.
// Contains dependencies on the Spotify service and an optional library cache.
type BingoEngine struct {
	spotify services.Service
	cache   Cacher
	logger  *log.Logger
}

// NewBingoEngine creates a new BingoEngine. cache may be nil, in which case
// exports are not persisted and FromLibrary generation is unavailable. A nil
// logger falls back to the package default.
func NewBingoEngine(spotify services.Service, cache Cacher, logger *log.Logger) *BingoEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &BingoEngine{
		spotify: spotify,
		cache:   cache,
		logger:  logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BingoEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Export fetches a playlist and writes its track listing as CSV.
//
// The argument is treated as a playlist ID first; when no playlist with that
// ID exists it is matched against the authenticated user's playlist names.
func (e *BingoEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, nameOrID string, opts ExportOpts) (*ExportResult, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if strings.TrimSpace(nameOrID) == "" {
		return nil, fmt.Errorf("%w: playlist name or ID required", shared.ErrMissingArgument)
	}

	e.sendProgress(progress, resolvingUpdate(nameOrID))

	export, err := e.spotify.ExportPlaylist(ctx, nameOrID, opts.Market, opts.IncludeLocal)
	if err != nil {
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			return nil, err
		}

		playlist, findErr := e.spotify.FindPlaylistByName(ctx, nameOrID)
		if findErr != nil {
			return nil, fmt.Errorf("%w: no playlist matched %q", shared.ErrPlaylistNotFound, nameOrID)
		}

		export, err = e.spotify.ExportPlaylist(ctx, playlist.ID, opts.Market, opts.IncludeLocal)
		if err != nil {
			return nil, fmt.Errorf("failed to export playlist %q: %w", playlist.Name, err)
		}
	}
	export.Market = opts.Market

	e.sendProgress(progress, fetchedUpdate(export))

	path := opts.OutputPath
	if path == "" {
		path = filepath.Join(opts.OutputDir, shared.SanitizeFilename(export.Playlist.Name, "csv"))
	}

	e.sendProgress(progress, writeCSVUpdate(path))
	if err := formatter.WriteTracksCSV(export, path); err != nil {
		return nil, err
	}

	result := &ExportResult{
		Export:     export,
		Path:       path,
		TrackCount: len(export.Tracks),
	}

	if e.cache != nil && !opts.SkipCache {
		e.sendProgress(progress, cacheUpdate(export.Playlist.Name))
		// Caching is best effort; a broken library never fails the export.
		if err := e.cache.SaveExport(export); err != nil {
			e.logger.Warn("failed to cache export", "playlist", export.Playlist.Name, "error", err)
		} else {
			result.Cached = true
		}
	}

	return result, nil
}

// Cards builds a bingo card PDF from a track pool.
func (e *BingoEngine) Cards(ctx context.Context, progress chan<- ProgressUpdate, opts CardOpts) (*CardsResult, error) {
	if strings.TrimSpace(opts.Source) == "" {
		return nil, fmt.Errorf("%w: track pool source required", shared.ErrMissingArgument)
	}
	if opts.Cards == 0 {
		opts.Cards = defaultCards
	}

	pool, err := e.loadPool(opts)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, loadPoolUpdate(opts.Source, len(pool)))

	e.sendProgress(progress, sampleUpdate(1, opts.Cards))
	set, err := bingo.Generate(pool, opts.Cards, bingo.Options{
		NoRepeatAcross: opts.NoRepeat,
		Seed:           opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	path := opts.OutputPath
	if path == "" {
		base := strings.TrimSuffix(filepath.Base(opts.Source), filepath.Ext(opts.Source))
		path = filepath.Join(opts.OutputDir, shared.SanitizeFilename(base+" bingo cards", "pdf"))
	}

	e.sendProgress(progress, renderUpdate(path, len(set)))
	if err := render.WritePDF(set, render.Options{Title: opts.Title, Subtitle: opts.Subtitle}, path); err != nil {
		return nil, err
	}

	return &CardsResult{
		Path:     path,
		Set:      set,
		PoolSize: len(bingo.Dedupe(pool)),
	}, nil
}

// Run performs the full pipeline: export a playlist to CSV, then generate
// cards from the exported file.
func (e *BingoEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, nameOrID string, exportOpts ExportOpts, cardOpts CardOpts) (*RunResult, error) {
	exportRes, err := e.Export(ctx, progress, nameOrID, exportOpts)
	if err != nil {
		return nil, err
	}

	cardOpts.Source = exportRes.Path
	cardOpts.FromLibrary = false
	if cardOpts.Title == "" {
		cardOpts.Title = exportRes.Export.Playlist.Name
	}

	cardsRes, err := e.Cards(ctx, progress, cardOpts)
	if err != nil {
		return &RunResult{Export: exportRes}, err
	}

	return &RunResult{Export: exportRes, Cards: cardsRes}, nil
}

// loadPool reads the track pool from the configured source.
func (e *BingoEngine) loadPool(opts CardOpts) ([]models.Track, error) {
	if opts.FromLibrary {
		if e.cache == nil {
			return nil, fmt.Errorf("%w: library not initialized", shared.ErrServiceUnavailable)
		}
		export, err := e.cache.GetByName(opts.Source)
		if err != nil {
			return nil, err
		}
		return export.Tracks, nil
	}
	return formatter.ReadTracksCSV(opts.Source)
}
