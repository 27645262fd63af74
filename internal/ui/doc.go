// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for building bingo cards:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [SetupView] : Configure card count, titles, seed and repeat mode
//  3. [ConfirmView] : Confirm before any files are written
//  4. [GenerateView] : Monitor real-time progress updates
//  5. [ResultView] : Display the CSV and PDF paths that were written
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the BingoEngine, providing non-blocking status reporting during generation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
