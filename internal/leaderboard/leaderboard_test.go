package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

const tz = "America/Chicago"

func fixed(t *testing.T, value string) *clock.Clock {
	t.Helper()
	loc, err := time.LoadLocation(tz)
	if err != nil {
		t.Fatal(err)
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, loc)
	if err != nil {
		t.Fatal(err)
	}
	return clock.NewFixed(ts, tz)
}

func boardAt(t *testing.T, st store.Store, value string) *Board {
	t.Helper()
	return New(store.NewRecords(st, "p1", zerolog.Nop()), fixed(t, value))
}

func TestFreshBoardIsToppedUp(t *testing.T) {
	ctx := context.Background()
	b := boardAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	for _, period := range Periods {
		entries := b.Top(ctx, period, 0)
		if len(entries) < minEntries {
			t.Errorf("%s board has %d entries, want >= %d", period, len(entries), minEntries)
		}
		for _, e := range entries {
			if e.IsSelf {
				t.Errorf("%s synthetic entry flagged as self: %+v", period, e)
			}
		}
		// Ranked descending.
		for i := 1; i < len(entries); i++ {
			if entries[i].Score > entries[i-1].Score {
				t.Errorf("%s board unsorted at %d", period, i)
			}
		}
	}
}

func TestAddScorePlacesSelf(t *testing.T) {
	ctx := context.Background()
	b := boardAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	b.AddScore(ctx, "Dana", 999999, true)

	for _, period := range Periods {
		if rank := b.SelfRank(ctx, period); rank != 1 {
			t.Errorf("%s rank = %d, want 1", period, rank)
		}
		top := b.Top(ctx, period, 1)
		if len(top) != 1 || !top[0].IsSelf || top[0].Name != "Dana" {
			t.Errorf("%s top entry: %+v", period, top)
		}
	}
}

func TestPracticeScoresStayDaily(t *testing.T) {
	ctx := context.Background()
	b := boardAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	b.AddScore(ctx, "Dana", 999999, false)

	if rank := b.SelfRank(ctx, PeriodDaily); rank != 1 {
		t.Errorf("daily rank = %d, want 1", rank)
	}
	if rank := b.SelfRank(ctx, PeriodWeekly); rank != 0 {
		t.Errorf("practice score reached the weekly board, rank %d", rank)
	}
	if rank := b.SelfRank(ctx, PeriodMonthly); rank != 0 {
		t.Errorf("practice score reached the monthly board, rank %d", rank)
	}
}

func TestWeeklyAccumulatesSingleEntry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	b := boardAt(t, st, "2025-06-16 12:00:00")

	b.AddScore(ctx, "Dana", 300000, true)
	b.AddScore(ctx, "Dana", 400000, true)

	selves := 0
	var score int
	for _, e := range b.Top(ctx, PeriodWeekly, 0) {
		if e.IsSelf {
			selves++
			score = e.Score
		}
	}
	if selves != 1 {
		t.Fatalf("weekly board holds %d self entries", selves)
	}
	if score != 700000 {
		t.Errorf("weekly self score = %d, want 700000", score)
	}

	// Daily keeps distinct entries per solve.
	dailySelves := 0
	for _, e := range b.Top(ctx, PeriodDaily, 0) {
		if e.IsSelf {
			dailySelves++
		}
	}
	if dailySelves != 2 {
		t.Errorf("daily board holds %d self entries, want 2", dailySelves)
	}
}

func TestDailyRollover(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	boardAt(t, st, "2025-06-16 12:00:00").AddScore(ctx, "Dana", 999999, true)

	next := boardAt(t, st, "2025-06-17 12:00:00")
	if rank := next.SelfRank(ctx, PeriodDaily); rank != 0 {
		t.Errorf("daily entry survived rollover, rank %d", rank)
	}
	// Same ISO week: the weekly entry stays.
	if rank := next.SelfRank(ctx, PeriodWeekly); rank != 1 {
		t.Errorf("weekly entry lost inside the week, rank %d", rank)
	}
}

func TestWeeklyRolloverClearsAccumulator(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	// Sunday, then the following Monday (new ISO week).
	boardAt(t, st, "2025-06-15 12:00:00").AddScore(ctx, "Dana", 999999, true)
	next := boardAt(t, st, "2025-06-16 12:00:00")

	if rank := next.SelfRank(ctx, PeriodWeekly); rank != 0 {
		t.Errorf("weekly entry survived the week rollover, rank %d", rank)
	}
	next.AddScore(ctx, "Dana", 100, true)
	for _, e := range next.Top(ctx, PeriodWeekly, 0) {
		if e.IsSelf && e.Score != 100 {
			t.Errorf("stale accumulator leaked into new week: %+v", e)
		}
	}
}

func TestBoardCap(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	b := boardAt(t, st, "2025-06-15 12:00:00")

	for i := 0; i < maxEntries+30; i++ {
		b.AddScore(ctx, "Dana", 1000+i, false)
	}
	if got := len(b.Top(ctx, PeriodDaily, 0)); got != maxEntries {
		t.Errorf("daily board size = %d, want %d", got, maxEntries)
	}
}

func TestTopLimits(t *testing.T) {
	ctx := context.Background()
	b := boardAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")
	if got := len(b.Top(ctx, PeriodDaily, 20)); got != 20 {
		t.Errorf("Top(20) returned %d entries", got)
	}
}

func TestSyntheticEntriesUnique(t *testing.T) {
	entries := synthetic(PeriodDaily, "2025-06-15")
	if len(entries) != syntheticFill {
		t.Fatalf("generated %d entries, want %d", len(entries), syntheticFill)
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("duplicate synthetic name %s", e.Name)
		}
		seen[e.Name] = true
		lo, hi := syntheticRanges[PeriodDaily][0], syntheticRanges[PeriodDaily][1]
		if e.Score < lo || e.Score >= hi {
			t.Errorf("synthetic score %d outside [%d,%d)", e.Score, lo, hi)
		}
		if e.IsSelf {
			t.Error("synthetic entry flagged as self")
		}
	}
}
