package bingo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/models"
	"github.com/wjsmc123/music-bingo-generator-spotify/internal/shared"
)

// Options controls sampling behavior for [Generate].
type Options struct {
	// NoRepeatAcross forbids a track from appearing on more than one card in
	// the generated set. Requires a pool of at least CardSize*n tracks.
	NoRepeatAcross bool

	// Seed fixes the random source for reproducible card sets. Nil means a
	// time-derived seed.
	Seed *int64
}

// Generate samples n cards from the pool.
//
// The pool is deduplicated by track identity before sampling. All argument
// validation happens up front: no cards are built unless the whole batch can
// be satisfied.
func Generate(pool []models.Track, n int, opts Options) (CardSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: card count must be positive, got %d", shared.ErrInvalidArgument, n)
	}

	unique := Dedupe(pool)
	if len(unique) < CardSize {
		return nil, fmt.Errorf("%w: need at least %d unique tracks for one card, have %d", shared.ErrInsufficientTracks, CardSize, len(unique))
	}
	if opts.NoRepeatAcross && len(unique) < CardSize*n {
		return nil, fmt.Errorf("%w: need %d unique tracks for %d cards without repeats, have %d", shared.ErrInsufficientTracks, CardSize*n, n, len(unique))
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	if opts.NoRepeatAcross {
		return generatePartitioned(unique, n, rng), nil
	}
	return generateIndependent(unique, n, rng), nil
}

// generatePartitioned shuffles the pool once and slices it into consecutive
// chunks of CardSize. A leftover remainder smaller than a full card is unused.
func generatePartitioned(pool []models.Track, n int, rng *rand.Rand) CardSet {
	shuffled := shuffle(pool, rng)

	set := make(CardSet, 0, n)
	for i := 0; i < n; i++ {
		chunk := shuffled[i*CardSize : (i+1)*CardSize]
		set = append(set, newCard(i+1, chunk))
	}
	return set
}

// generateIndependent shuffles a fresh copy of the pool per card and takes the
// first CardSize entries, so cards may share tracks but never repeat within
// themselves.
func generateIndependent(pool []models.Track, n int, rng *rand.Rand) CardSet {
	set := make(CardSet, 0, n)
	for i := 0; i < n; i++ {
		shuffled := shuffle(pool, rng)
		set = append(set, newCard(i+1, shuffled[:CardSize]))
	}
	return set
}

func newCard(number int, tracks []models.Track) Card {
	card := Card{Number: number, Tracks: make([]models.Track, CardSize)}
	copy(card.Tracks, tracks)
	return card
}

func shuffle(pool []models.Track, rng *rand.Rand) []models.Track {
	shuffled := make([]models.Track, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
