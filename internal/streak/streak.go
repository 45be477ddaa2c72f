// internal/streak/streak.go
//
// Consecutive-day completion streak.
// The streak increments on the first full daily-challenge completion of a
// calendar date (idempotent per date) and is lost when more than one full
// calendar day passes without a completion. The loss check runs lazily on
// every read; best is a historical high-water mark the reset never touches.

package streak

import (
	"context"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

const recordKey = "streak"

// Record is the persisted streak state.
type Record struct {
	Current           int    `json:"current"`
	Best              int    `json:"best"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"` // YYYY-MM-DD
}

// Tracker reads and advances the streak for one player.
type Tracker struct {
	rec *store.Records
	clk *clock.Clock
}

// NewTracker binds the streak to a player's records.
func NewTracker(rec *store.Records, clk *clock.Clock) *Tracker {
	return &Tracker{rec: rec, clk: clk}
}

// Get returns the reconciled streak. A gap of more than one calendar day
// since the last completion forces current back to zero.
func (t *Tracker) Get(ctx context.Context) Record {
	var rec Record
	t.rec.Load(ctx, recordKey, &rec)

	if rec.LastCompletedDate != "" {
		last, err := t.clk.ParseDateKey(rec.LastCompletedDate)
		if err == nil && t.clk.DaysBetween(last, t.clk.Today()) > 1 && rec.Current != 0 {
			rec.Current = 0
			t.rec.Save(ctx, recordKey, rec)
		}
	}
	return rec
}

// Complete counts today's daily-challenge completion. Calling it twice on
// the same calendar date increments only once.
func (t *Tracker) Complete(ctx context.Context) Record {
	rec := t.Get(ctx)
	today := t.clk.TodayKey()
	if rec.LastCompletedDate == today {
		return rec
	}
	rec.Current++
	if rec.Current > rec.Best {
		rec.Best = rec.Current
	}
	rec.LastCompletedDate = today
	t.rec.Save(ctx, recordKey, rec)
	return rec
}
