// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
// Each calendar day maps to a fixed triple of puzzles (one easy, one
// medium, one hard) derived purely from the day index. For a fixed
// catalog and day index the triple is identical on every call and every
// device; this is the central correctness property of the daily challenge.

package daily

import (
	"errors"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
	"github.com/AdplixMarketing/Frequency-Zero/internal/rng"
)

// Seed offsets keep the three difficulty shuffles independent.
const (
	seedOffsetEasy   = 0
	seedOffsetMedium = 1000
	seedOffsetHard   = 2000
)

// ErrNoPuzzles is returned when a difficulty bucket is empty.
var ErrNoPuzzles = errors.New("daily: catalog has no puzzles for a difficulty")

// Slot is one member of the daily triple.
type Slot struct {
	Puzzle catalog.Puzzle `json:"puzzle"`
	Index  int            `json:"index"` // 0=easy, 1=medium, 2=hard
}

// Triple returns the three puzzles assigned to dayIndex.
// Per difficulty: flatten the catalog, shuffle with seed
// dayIndex(+offset), pick dayIndex mod length.
func Triple(dayIndex int) ([3]Slot, error) {
	var out [3]Slot
	offsets := []int{seedOffsetEasy, seedOffsetMedium, seedOffsetHard}
	for i, difficulty := range catalog.Difficulties {
		pool := catalog.ByDifficulty(difficulty)
		if len(pool) == 0 {
			return out, ErrNoPuzzles
		}
		shuffled := rng.Shuffle(pool, float64(dayIndex+offsets[i]))
		out[i] = Slot{Puzzle: shuffled[dayIndex%len(shuffled)], Index: i}
	}
	return out, nil
}
