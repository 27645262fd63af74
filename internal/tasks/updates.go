package tasks

import (
	"fmt"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolvePlaylist Phase = iota
	FetchTracks
	WriteCSV
	CacheExport
	LoadPool
	SampleCards
	RenderPDF
)

func (p Phase) String() string {
	switch p {
	case ResolvePlaylist:
		return "resolve_playlist"
	case FetchTracks:
		return "fetch_tracks"
	case WriteCSV:
		return "write_csv"
	case CacheExport:
		return "cache_export"
	case LoadPool:
		return "load_pool"
	case SampleCards:
		return "sample_cards"
	case RenderPDF:
		return "render_pdf"
	default:
		return ""
	}
}

func resolvingUpdate(nameOrID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking up playlist %q on Spotify...", nameOrID),
	}
}

func fetchedUpdate(export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", export.Playlist.Name, len(export.Tracks)),
		Data:    export,
	}
}

func writeCSVUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteCSV,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing track listing to %s...", path),
	}
}

func cacheUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving %s to the local library...", name),
	}
}

func loadPoolUpdate(source string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPool,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d tracks from %s", count, source),
	}
}

func sampleUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SampleCards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Sampling card %d of %d...", step, total),
	}
}

func renderUpdate(path string, cards int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderPDF,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Rendering %d cards to %s...", cards, path),
	}
}
