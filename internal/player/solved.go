// internal/player/solved.go
//
// Lifetime list of solved puzzle ids. Feeds the practice-mode exclusion
// window (the most recent 50 solves are not re-served).

package player

import "context"

const solvedKey = "solved"

// RecentExclusionWindow is how many recent solves practice mode skips.
const RecentExclusionWindow = 50

// Solved returns every solved puzzle id, oldest first.
func (s *Service) Solved(ctx context.Context) []string {
	var ids []string
	s.rec.Load(ctx, solvedKey, &ids)
	return ids
}

// MarkSolved appends the id once.
func (s *Service) MarkSolved(ctx context.Context, puzzleID string) {
	ids := s.Solved(ctx)
	for _, id := range ids {
		if id == puzzleID {
			return
		}
	}
	ids = append(ids, puzzleID)
	s.rec.Save(ctx, solvedKey, ids)
}

// RecentSolved returns the newest n solved ids.
func (s *Service) RecentSolved(ctx context.Context, n int) []string {
	ids := s.Solved(ctx)
	if len(ids) > n {
		ids = ids[len(ids)-n:]
	}
	return ids
}
