// internal/player/stats.go
//
// Monthly-resetting aggregate statistics.
// The whole record resets when the stored stats month differs from the
// current calendar month; the check runs lazily on every read.

package player

import (
	"context"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
)

const (
	statsKey      = "stats"
	statsMonthKey = "stats_month"
)

// CategoryStats counts plays and solves within one category.
type CategoryStats struct {
	Played int `json:"played"`
	Solved int `json:"solved"`
}

// Stats is the persisted aggregate record.
type Stats struct {
	PuzzlesPlayed int                      `json:"puzzlesPlayed"`
	PuzzlesSolved int                      `json:"puzzlesSolved"`
	TotalScore    int                      `json:"totalScore"`
	BestStreak    int                      `json:"bestStreak"`
	NoHintSolves  int                      `json:"noHintSolves"`
	Categories    map[string]CategoryStats `json:"categories"`
	TotalTime     int                      `json:"totalTime"`   // seconds
	AverageTime   int                      `json:"averageTime"` // seconds, rounded
}

func freshStats() Stats {
	cats := make(map[string]CategoryStats, len(catalog.Categories))
	for _, c := range catalog.Categories {
		cats[c] = CategoryStats{}
	}
	return Stats{Categories: cats}
}

// Stats returns the aggregate record, resetting it first when the calendar
// month rolled over since the last write.
func (s *Service) Stats(ctx context.Context) Stats {
	s.checkMonthlyReset(ctx)
	stats := freshStats()
	s.rec.Load(ctx, statsKey, &stats)
	if stats.Categories == nil {
		stats.Categories = freshStats().Categories
	}
	return stats
}

func (s *Service) checkMonthlyReset(ctx context.Context) {
	current := s.clk.MonthNumber(s.clk.Now())
	stored := -1
	s.rec.Load(ctx, statsMonthKey, &stored)
	if stored != current {
		s.rec.Save(ctx, statsKey, freshStats())
		s.rec.Save(ctx, statsMonthKey, current)
	}
}

// RecordPuzzle folds one finished attempt into the aggregates.
// bestStreak is a snapshot of the streak high-water mark at record time.
func (s *Service) RecordPuzzle(ctx context.Context, p *catalog.Puzzle, solved bool, score, elapsedSeconds, hintsUsed, bestStreak int) Stats {
	stats := s.Stats(ctx)

	stats.PuzzlesPlayed++
	if solved {
		stats.PuzzlesSolved++
		stats.TotalScore += score
		if hintsUsed == 0 {
			stats.NoHintSolves++
		}
	}

	cs := stats.Categories[p.Category]
	cs.Played++
	if solved {
		cs.Solved++
	}
	stats.Categories[p.Category] = cs

	stats.TotalTime += elapsedSeconds
	stats.AverageTime = (stats.TotalTime + stats.PuzzlesPlayed/2) / stats.PuzzlesPlayed
	stats.BestStreak = bestStreak

	s.rec.Save(ctx, statsKey, stats)
	return stats
}
