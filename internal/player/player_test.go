package player

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
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

func serviceAt(t *testing.T, st store.Store, value string) *Service {
	t.Helper()
	return NewService(store.NewRecords(st, "p1", zerolog.Nop()), fixed(t, value))
}

func TestProfileDefaults(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	p := s.Profile(ctx)
	if p.Name != DefaultName {
		t.Errorf("default name = %q", p.Name)
	}
	if p.CreatedAt == 0 || p.LastActive == 0 {
		t.Errorf("timestamps unset: %+v", p)
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	if got := s.Rename(ctx, "  Dana  ").Name; got != "Dana" {
		t.Errorf("rename = %q", got)
	}
	if got := s.Rename(ctx, "   ").Name; got != "Dana" {
		t.Errorf("blank rename replaced name with %q", got)
	}
	long := "abcdefghijklmnopqrstuvwxyz0123"
	if got := s.Rename(ctx, long).Name; len(got) != maxNameLen {
		t.Errorf("long rename kept %d chars", len(got))
	}
}

func TestTutorialFlag(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	if s.TutorialSeen(ctx) {
		t.Error("tutorial seen by default")
	}
	s.MarkTutorialSeen(ctx)
	if !s.TutorialSeen(ctx) {
		t.Error("tutorial flag not persisted")
	}
}

func TestSolvedList(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")

	s.MarkSolved(ctx, "a")
	s.MarkSolved(ctx, "b")
	s.MarkSolved(ctx, "a") // appended once

	if got := s.Solved(ctx); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("solved = %v", got)
	}
	if got := s.RecentSolved(ctx, 1); len(got) != 1 || got[0] != "b" {
		t.Errorf("recent = %v", got)
	}
}

func TestRecordPuzzleAggregates(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")
	puz := &catalog.Puzzle{ID: "x", Category: catalog.CategoryMovies, Difficulty: catalog.DifficultyEasy}

	s.RecordPuzzle(ctx, puz, true, 250, 8, 0, 1)
	s.RecordPuzzle(ctx, puz, true, 110, 25, 1, 1)
	stats := s.RecordPuzzle(ctx, puz, false, 0, 60, 0, 1)

	if stats.PuzzlesPlayed != 3 || stats.PuzzlesSolved != 2 {
		t.Errorf("played/solved = %d/%d", stats.PuzzlesPlayed, stats.PuzzlesSolved)
	}
	if stats.TotalScore != 360 {
		t.Errorf("total score = %d", stats.TotalScore)
	}
	if stats.NoHintSolves != 1 {
		t.Errorf("no-hint solves = %d", stats.NoHintSolves)
	}
	if cs := stats.Categories[catalog.CategoryMovies]; cs.Played != 3 || cs.Solved != 2 {
		t.Errorf("category stats: %+v", cs)
	}
	if stats.TotalTime != 93 || stats.AverageTime != 31 {
		t.Errorf("time aggregates: total %d avg %d", stats.TotalTime, stats.AverageTime)
	}
}

func TestStatsMonthlyReset(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	puz := &catalog.Puzzle{ID: "x", Category: catalog.CategoryMovies, Difficulty: catalog.DifficultyEasy}

	june := serviceAt(t, st, "2025-06-15 12:00:00")
	june.RecordPuzzle(ctx, puz, true, 250, 8, 0, 3)

	// Same month: aggregates persist.
	if got := serviceAt(t, st, "2025-06-30 23:00:00").Stats(ctx); got.PuzzlesPlayed != 1 {
		t.Fatalf("same-month stats reset: %+v", got)
	}

	// New month: fresh record.
	july := serviceAt(t, st, "2025-07-01 01:00:00").Stats(ctx)
	if july.PuzzlesPlayed != 0 || july.TotalScore != 0 {
		t.Errorf("july stats carried over: %+v", july)
	}
	if july.Categories == nil {
		t.Error("fresh stats missing category map")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemoryStore()
	s := serviceAt(t, src, "2025-06-15 12:00:00")
	s.Rename(ctx, "Dana")
	s.MarkSolved(ctx, "x")
	s.MarkTutorialSeen(ctx)

	data := s.Export(ctx)
	if len(data) < 3 {
		t.Fatalf("export holds %d records", len(data))
	}

	dst := store.NewMemoryStore()
	other := NewService(store.NewRecords(dst, "p2", zerolog.Nop()), fixed(t, "2025-06-15 12:00:00"))
	if n := other.Import(ctx, data); n != len(data) {
		t.Errorf("imported %d of %d", n, len(data))
	}
	if got := other.Profile(ctx).Name; got != "Dana" {
		t.Errorf("imported profile name = %q", got)
	}
	if !other.TutorialSeen(ctx) {
		t.Error("imported tutorial flag lost")
	}
}

func TestImportRejectsNothingButCounts(t *testing.T) {
	ctx := context.Background()
	s := serviceAt(t, store.NewMemoryStore(), "2025-06-15 12:00:00")
	n := s.Import(ctx, map[string]json.RawMessage{"custom": json.RawMessage(`{"a":1}`)})
	if n != 1 {
		t.Errorf("import count = %d", n)
	}
}
