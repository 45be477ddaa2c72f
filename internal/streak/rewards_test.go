package streak

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AdplixMarketing/Frequency-Zero/internal/economy"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

func cycleAt(t *testing.T, rec *store.Records, value string) (*Cycle, *economy.Meter, *economy.Meter) {
	t.Helper()
	clk := fixed(t, value)
	energy := economy.NewEnergy(rec, clk)
	hints := economy.NewHints(rec, clk)
	return NewCycle(rec, clk, energy, hints), energy, hints
}

func TestClaimOncePerDate(t *testing.T) {
	ctx := context.Background()
	rec := records(store.NewMemoryStore())
	c, _, _ := cycleAt(t, rec, "2025-06-15 12:00:00")

	if !c.CanClaim(ctx) {
		t.Fatal("fresh cycle not claimable")
	}
	claimed, err := c.Claim(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if claimed.Reward.Day != 1 {
		t.Errorf("first claim served day %d", claimed.Reward.Day)
	}
	if claimed.Cycle.CurrentDay != 2 || claimed.Cycle.TotalClaims != 1 {
		t.Errorf("cycle after claim: %+v", claimed.Cycle)
	}

	if c.CanClaim(ctx) {
		t.Error("claimable twice on one date")
	}
	if _, err := c.Claim(ctx); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("second claim error = %v", err)
	}
}

func TestClaimAppliesEnergyReward(t *testing.T) {
	ctx := context.Background()
	rec := records(store.NewMemoryStore())
	c, energy, _ := cycleAt(t, rec, "2025-06-15 12:00:00")

	energy.Consume(ctx, 5)
	before := energy.Current(ctx)
	if _, err := c.Claim(ctx); err != nil { // day 1 grants +2 energy
		t.Fatal(err)
	}
	if got := energy.Current(ctx); got != before+2 {
		t.Errorf("energy after day-1 claim = %d, want %d", got, before+2)
	}
}

func TestCycleWrapsAfterDaySeven(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	rec := records(st)

	days := []string{
		"2025-06-15", "2025-06-16", "2025-06-17", "2025-06-18",
		"2025-06-19", "2025-06-20", "2025-06-21",
	}
	for i, d := range days {
		c, _, _ := cycleAt(t, rec, d+" 12:00:00")
		claimed, err := c.Claim(ctx)
		if err != nil {
			t.Fatalf("day %d: %v", i+1, err)
		}
		if claimed.Reward.Day != i+1 {
			t.Fatalf("day %d served reward %d", i+1, claimed.Reward.Day)
		}
	}

	c, _, _ := cycleAt(t, rec, "2025-06-22 12:00:00")
	got := c.Get(ctx)
	if got.CurrentDay != 1 {
		t.Errorf("after day 7 the cycle points at day %d", got.CurrentDay)
	}
	if len(got.CycleClaimedDays) != 0 {
		t.Errorf("claimed set survived the wrap: %v", got.CycleClaimedDays)
	}
	if got.TotalClaims != 7 {
		t.Errorf("total claims = %d, want 7", got.TotalClaims)
	}
}

func TestGapRestartsCyclePreservingTotals(t *testing.T) {
	ctx := context.Background()
	rec := records(store.NewMemoryStore())

	c1, _, _ := cycleAt(t, rec, "2025-06-15 12:00:00")
	c1.Claim(ctx)
	c2, _, _ := cycleAt(t, rec, "2025-06-16 12:00:00")
	c2.Claim(ctx)

	// Three days of silence restart the cycle at day 1.
	c3, _, _ := cycleAt(t, rec, "2025-06-19 12:00:00")
	got := c3.Get(ctx)
	if got.CurrentDay != 1 || len(got.CycleClaimedDays) != 0 {
		t.Errorf("gap did not restart: %+v", got)
	}
	if got.TotalClaims != 2 {
		t.Errorf("gap reset lifetime claims: %+v", got)
	}
}

func TestMysteryBoxResult(t *testing.T) {
	ctx := context.Background()
	rec := records(store.NewMemoryStore())

	// Force the record to day 7 and claim.
	rec.Save(ctx, "rewards", CycleRecord{CurrentDay: 7, TotalClaims: 6})
	c, _, _ := cycleAt(t, rec, "2025-06-15 12:00:00")
	claimed, err := c.Claim(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if claimed.Reward.Type != RewardMystery {
		t.Fatalf("day 7 reward = %s", claimed.Reward.Type)
	}
	if !strings.HasPrefix(claimed.Result, "+") || !strings.HasSuffix(claimed.Result, "!") {
		t.Errorf("mystery result label = %q", claimed.Result)
	}
}

func TestMultiplierActivationAndExpiry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	rec := records(st)

	// No record: neutral.
	c, _, _ := cycleAt(t, rec, "2025-06-15 12:00:00")
	if got := c.Multiplier(ctx); got != 1 {
		t.Fatalf("idle multiplier = %v", got)
	}

	// Day 5 claim activates 2x for 24 hours.
	rec.Save(ctx, "rewards", CycleRecord{CurrentDay: 5, TotalClaims: 4})
	if _, err := c.Claim(ctx); err != nil {
		t.Fatal(err)
	}
	if got := c.Multiplier(ctx); got != 2 {
		t.Errorf("active multiplier = %v, want 2", got)
	}

	// Still active 23 hours later, gone after 25.
	c23, _, _ := cycleAt(t, rec, "2025-06-16 11:00:00")
	if got := c23.Multiplier(ctx); got != 2 {
		t.Errorf("multiplier at 23h = %v", got)
	}
	c25, _, _ := cycleAt(t, rec, "2025-06-16 13:00:00")
	if got := c25.Multiplier(ctx); got != 1 {
		t.Errorf("multiplier at 25h = %v", got)
	}
	// Expired record is removed, not just ignored.
	var raw map[string]any
	if rec.Load(ctx, "score_multiplier", &raw) {
		t.Error("expired multiplier record still stored")
	}
}

func TestMalformedRecordMigrates(t *testing.T) {
	ctx := context.Background()
	rec := records(store.NewMemoryStore())
	rec.Save(ctx, "rewards", CycleRecord{CurrentDay: 99, TotalClaims: 12})

	c, _, _ := cycleAt(t, rec, "2025-06-15 12:00:00")
	got := c.Get(ctx)
	if got.CurrentDay != 1 {
		t.Errorf("malformed day not reset: %+v", got)
	}
	if got.TotalClaims != 12 {
		t.Errorf("migration lost lifetime claims: %+v", got)
	}
}
