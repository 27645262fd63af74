// Package tasks orchestrates the playlist-to-bingo-card pipeline with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines three operations:
//
//  1. [Engine.Export] : Spotify playlist → CSV
//     - Resolves the argument as a playlist ID, falling back to name matching
//     - Fetches every page of the playlist's tracks
//     - Writes the track listing as a CSV file
//
//  2. [Engine.Cards] : track pool → bingo card PDF
//     - Loads the pool from a CSV file or the local library
//     - Samples 4x4 cards, optionally without repeats across cards
//     - Renders one page per card into a single PDF
//
//  3. [Engine.Run] : full pipeline, export then cards in one pass
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Library Caching
//
// The optional [Cacher] interface enables automatic export persistence.
// Exports are cached silently (errors ignored) so a cache failure never fails an export.
//
// # Implementation
//
// [BingoEngine] implements [Engine] with dependencies on:
//   - [services.Service] : the Spotify API client
//   - [Cacher] : optional persistence layer (repositories.PlaylistRepository)
package tasks
