// internal/leaderboard/leaderboard.go
//
// Locally simulated leaderboard.
// Three ranked lists (daily, weekly, monthly), each capped at 100 entries.
// Lists reset when their period rolls over; a list holding fewer than 20
// entries is topped up with clearly synthetic competitors. The IsSelf flag
// is the sole marker distinguishing the player's authentic entries from
// synthetic ones; synthetic entries are never conflated with real scores
// beyond sharing a list.
//
// Period accumulation: every score lands as a fresh daily entry; only
// daily-challenge scores accumulate into the player's single weekly and
// monthly entries.

package leaderboard

import (
	"context"
	"sort"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

// Periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Periods lists the valid period names.
var Periods = []string{PeriodDaily, PeriodWeekly, PeriodMonthly}

const (
	boardKey   = "leaderboard"
	periodsKey = "leaderboard_periods"
	weeklyKey  = "weekly_score"
	monthlyKey = "monthly_score"

	maxEntries    = 100
	minEntries    = 20
	syntheticFill = 50
)

// Entry is one ranked row. The "you" JSON name matches the stored record
// shape the web client used.
type Entry struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Date   string `json:"date"`
	IsSelf bool   `json:"you"`
}

// boardRecord is the persisted three-list record.
type boardRecord struct {
	Daily   []Entry `json:"daily"`
	Weekly  []Entry `json:"weekly"`
	Monthly []Entry `json:"monthly"`
}

// periodRecord tracks the last observed period markers for reset detection.
type periodRecord struct {
	LastDay   string `json:"lastDay,omitempty"`
	LastWeek  int    `json:"lastWeek,omitempty"`
	LastMonth int    `json:"lastMonth,omitempty"`
}

// accumRecord is the player's running score within one period.
type accumRecord struct {
	Score  int `json:"score"`
	Period int `json:"period"` // week or month marker
}

// Board manages the simulated leaderboard for one player's store.
type Board struct {
	rec *store.Records
	clk *clock.Clock
}

// New binds the leaderboard to a player's records.
func New(rec *store.Records, clk *clock.Clock) *Board {
	return &Board{rec: rec, clk: clk}
}

// get returns the reconciled board: period rollovers clear their list and
// short lists are topped up with synthetics.
func (b *Board) get(ctx context.Context) boardRecord {
	var board boardRecord
	b.rec.Load(ctx, boardKey, &board)

	now := b.clk.Now()
	markers := periodRecord{}
	b.rec.Load(ctx, periodsKey, &markers)
	dirty := false

	if day := b.clk.TodayKey(); markers.LastDay != day {
		board.Daily = nil
		markers.LastDay = day
		dirty = true
	}
	if week := b.clk.WeekNumber(now); markers.LastWeek != week {
		board.Weekly = nil
		markers.LastWeek = week
		b.rec.Save(ctx, weeklyKey, accumRecord{Period: week})
		dirty = true
	}
	if month := b.clk.MonthNumber(now); markers.LastMonth != month {
		board.Monthly = nil
		markers.LastMonth = month
		b.rec.Save(ctx, monthlyKey, accumRecord{Period: month})
		dirty = true
	}

	for _, period := range Periods {
		list := board.list(period)
		if len(*list) < minEntries {
			*list = rankAndCap(append(*list, synthetic(period, b.clk.TodayKey())...))
			dirty = true
		}
	}

	if dirty {
		b.rec.Save(ctx, periodsKey, markers)
		b.rec.Save(ctx, boardKey, board)
	}
	return board
}

func (r *boardRecord) list(period string) *[]Entry {
	switch period {
	case PeriodWeekly:
		return &r.Weekly
	case PeriodMonthly:
		return &r.Monthly
	default:
		return &r.Daily
	}
}

// AddScore records a finished puzzle's score. Daily always receives a new
// entry; when fromDailyChallenge is set the score also accumulates into
// the player's weekly and monthly entries.
func (b *Board) AddScore(ctx context.Context, playerName string, score int, fromDailyChallenge bool) {
	board := b.get(ctx)
	today := b.clk.TodayKey()

	board.Daily = rankAndCap(append(board.Daily, Entry{
		Name: playerName, Score: score, Date: today, IsSelf: true,
	}))

	if fromDailyChallenge {
		now := b.clk.Now()
		weekly := b.accumulate(ctx, weeklyKey, b.clk.WeekNumber(now), score)
		board.Weekly = replaceSelf(board.Weekly, Entry{Name: playerName, Score: weekly, Date: today, IsSelf: true})

		monthly := b.accumulate(ctx, monthlyKey, b.clk.MonthNumber(now), score)
		board.Monthly = replaceSelf(board.Monthly, Entry{Name: playerName, Score: monthly, Date: today, IsSelf: true})
	}

	b.rec.Save(ctx, boardKey, board)
}

func (b *Board) accumulate(ctx context.Context, key string, period, score int) int {
	rec := accumRecord{Period: period}
	b.rec.Load(ctx, key, &rec)
	if rec.Period != period {
		rec = accumRecord{Period: period}
	}
	rec.Score += score
	b.rec.Save(ctx, key, rec)
	return rec.Score
}

// Top returns the highest n entries for the period.
func (b *Board) Top(ctx context.Context, period string, n int) []Entry {
	board := b.get(ctx)
	list := *board.list(period)
	if n > 0 && len(list) > n {
		list = list[:n]
	}
	return list
}

// SelfRank returns the player's 1-based rank in the period, or 0 when the
// player has no entry.
func (b *Board) SelfRank(ctx context.Context, period string) int {
	board := b.get(ctx)
	for i, e := range *board.list(period) {
		if e.IsSelf {
			return i + 1
		}
	}
	return 0
}

func replaceSelf(list []Entry, self Entry) []Entry {
	kept := list[:0]
	for _, e := range list {
		if !e.IsSelf {
			kept = append(kept, e)
		}
	}
	return rankAndCap(append(kept, self))
}

func rankAndCap(list []Entry) []Entry {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
	if len(list) > maxEntries {
		list = list[:maxEntries]
	}
	return list
}
