// internal/daily/store.go
//
// Per-date daily challenge progress.
// One record per calendar date (key daily_<date>), created fresh the first
// time progress for a date is requested, never deleted. Slot values:
// nil = not attempted, true = solved, false = skipped/failed.

package daily

import (
	"context"
	"fmt"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

// Progress is the persisted state of one day's challenge.
type Progress struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	Puzzles      [3]*bool `json:"puzzles"`
	HintsUsed    [3]int   `json:"hintsUsed"`
	Times        [3]*int  `json:"times"` // seconds
	Scores       [3]int   `json:"scores"`
	Completed    bool     `json:"completed"`
	CurrentIndex int      `json:"currentIndex"` // 0..2
}

// Result is one finished slot attempt.
type Result struct {
	Solved    bool
	HintsUsed int
	Time      int // seconds
	Score     int
}

// Store reads and writes daily progress for one player.
type Store struct {
	rec *store.Records
	clk *clock.Clock
}

// NewStore binds daily progress to a player's records.
func NewStore(rec *store.Records, clk *clock.Clock) *Store {
	return &Store{rec: rec, clk: clk}
}

func progressKey(date string) string { return fmt.Sprintf("daily_%s", date) }

// Progress returns today's record, creating a fresh one exactly once.
// Repeated calls without intervening writes return identical records.
func (s *Store) Progress(ctx context.Context) Progress {
	today := s.clk.TodayKey()
	p := Progress{Date: today}
	if !s.rec.Load(ctx, progressKey(today), &p) {
		s.rec.Save(ctx, progressKey(today), p)
	}
	return p
}

// CurrentIndex returns the first unattempted slot, or -1 when all three
// slots are filled.
func (s *Store) CurrentIndex(ctx context.Context) int {
	p := s.Progress(ctx)
	for i := 0; i < 3; i++ {
		if p.Puzzles[i] == nil {
			return i
		}
	}
	return -1
}

// Completed reports whether all three slots are done.
func (s *Store) Completed(ctx context.Context) bool {
	return s.Progress(ctx).Completed
}

// Record stores the result for slot index and advances the cursor.
// Filling slot 2 marks the day completed.
func (s *Store) Record(ctx context.Context, index int, r Result) Progress {
	p := s.Progress(ctx)
	solved := r.Solved
	t := r.Time
	p.Puzzles[index] = &solved
	p.HintsUsed[index] = r.HintsUsed
	p.Times[index] = &t
	p.Scores[index] = r.Score
	p.CurrentIndex = index + 1
	if p.CurrentIndex > 2 {
		p.CurrentIndex = 2
	}
	if index == 2 {
		p.Completed = true
	}
	s.rec.Save(ctx, progressKey(p.Date), p)
	return p
}

// TotalScore sums the three slot scores.
func (p Progress) TotalScore() int {
	return p.Scores[0] + p.Scores[1] + p.Scores[2]
}

// SolvedCount counts slots solved (not skipped).
func (p Progress) SolvedCount() int {
	n := 0
	for _, solved := range p.Puzzles {
		if solved != nil && *solved {
			n++
		}
	}
	return n
}
