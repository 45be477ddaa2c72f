// internal/economy/economy.go
//
// Consumable resource counters: energy and hint tokens.
// Both follow the same daily-refill policy: once per calendar-day boundary
// in the game's reference timezone the counter snaps back to its refill
// value (not additive). Grants may push the counter above the nominal
// refill value, up to a fixed overflow ceiling.
//
// The refill is reconciled lazily at the start of every read/write path;
// correctness never depends on a timer firing.

package economy

import (
	"context"
	"time"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

// Nominal values and overflow headroom.
const (
	EnergyMax      = 10
	EnergyOverflow = 10 // grants may stack up to EnergyMax+EnergyOverflow
	HintRefill     = 5
	HintOverflow   = 10

	BonusEnergyAmount = 3 // rewarded-ad grant
	PracticeCost      = 1 // daily challenge play is always free
)

// Record is the persisted shape of a meter.
type Record struct {
	Current    int   `json:"current"`
	Max        int   `json:"max,omitempty"`
	LastRefill int64 `json:"lastRefill"` // unix milliseconds
}

// Meter tracks one consumable counter against the store.
type Meter struct {
	key      string
	refillTo int
	cap      int
	rec      *store.Records
	clk      *clock.Clock
}

// NewEnergy returns the energy meter for the bound player.
func NewEnergy(rec *store.Records, clk *clock.Clock) *Meter {
	return &Meter{key: "energy", refillTo: EnergyMax, cap: EnergyMax + EnergyOverflow, rec: rec, clk: clk}
}

// NewHints returns the hint-token meter for the bound player.
func NewHints(rec *store.Records, clk *clock.Clock) *Meter {
	return &Meter{key: "hints_data", refillTo: HintRefill, cap: HintRefill + HintOverflow, rec: rec, clk: clk}
}

// Get returns the reconciled record: if a calendar day has passed since the
// last refill, the counter snaps to its refill value first. Idempotent
// within the same day.
func (m *Meter) Get(ctx context.Context) Record {
	now := m.clk.Now()
	rec := Record{Current: m.refillTo, Max: m.maxField(), LastRefill: now.UnixMilli()}
	loaded := m.rec.Load(ctx, m.key, &rec)

	if loaded && m.clk.IsNewDay(time.UnixMilli(rec.LastRefill), now) {
		rec.Current = m.refillTo
		rec.LastRefill = now.UnixMilli()
		m.rec.Save(ctx, m.key, rec)
	}
	if !loaded {
		m.rec.Save(ctx, m.key, rec)
	}
	return rec
}

// Current returns the reconciled counter value.
func (m *Meter) Current(ctx context.Context) int { return m.Get(ctx).Current }

// Has reports whether at least n units are available.
func (m *Meter) Has(ctx context.Context, n int) bool { return m.Current(ctx) >= n }

// Consume removes n units. Refuses without mutation when short.
func (m *Meter) Consume(ctx context.Context, n int) bool {
	rec := m.Get(ctx)
	if rec.Current < n {
		return false
	}
	rec.Current -= n
	m.rec.Save(ctx, m.key, rec)
	return true
}

// Grant adds n units, clamped at the overflow ceiling. Returns the new value.
func (m *Meter) Grant(ctx context.Context, n int) int {
	rec := m.Get(ctx)
	rec.Current += n
	if rec.Current > m.cap {
		rec.Current = m.cap
	}
	if rec.Current < 0 {
		rec.Current = 0
	}
	m.rec.Save(ctx, m.key, rec)
	return rec.Current
}

// UntilRefill returns the time until the next daily refill boundary.
func (m *Meter) UntilRefill() time.Duration { return m.clk.UntilTomorrow() }

func (m *Meter) maxField() int {
	if m.key == "energy" {
		return EnergyMax
	}
	return 0
}
