// Package bingo implements card sampling for music bingo.
//
// A [Card] is a 4x4 grid of sixteen distinct tracks drawn from a track pool,
// and [Generate] produces an ordered [CardSet] of them. Sampling is seedable:
// the same pool, count, mode and seed always produce an identical card set.
//
// Two sampling modes exist. In the default mode each card is an independent
// draw without replacement, so a track may appear on several cards but never
// twice on one. With [Options.NoRepeatAcross] the whole pool is shuffled once
// and partitioned into consecutive sixteen-track chunks, which makes global
// uniqueness a property of the partition rather than of bookkeeping.
package bingo

import (
	"fmt"
	"strings"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
)

const (
	// GridSize is the number of rows and columns on a card.
	GridSize = 4
	// CardSize is the number of cells on a card.
	CardSize = GridSize * GridSize
)

// Card is one bingo card: sixteen distinct tracks in grid order (row-major).
type Card struct {
	Number int // 1-based position within the set
	Tracks []models.Track
}

// CardSet is an ordered batch of cards produced by one Generate call.
type CardSet []Card

// Label formats a track for display in a card cell.
func Label(t models.Track) string {
	return fmt.Sprintf("%s — %s", t.Title, t.Artists)
}

// Labels returns the card's sixteen cell labels in grid order.
func (c Card) Labels() []string {
	labels := make([]string, len(c.Tracks))
	for i, t := range c.Tracks {
		labels[i] = Label(t)
	}
	return labels
}

// Key returns the identity of a track for uniqueness purposes.
//
// Case-insensitive (title, artists) pair; duplicate rows from sloppy CSVs
// collapse to one pool entry.
func Key(t models.Track) string {
	return strings.ToLower(strings.TrimSpace(t.Title)) + "\x00" + strings.ToLower(strings.TrimSpace(t.Artists))
}

// Dedupe returns the pool with duplicate track identities removed, preserving
// first-occurrence order.
func Dedupe(pool []models.Track) []models.Track {
	seen := make(map[string]struct{}, len(pool))
	out := make([]models.Track, 0, len(pool))
	for _, t := range pool {
		k := Key(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}
