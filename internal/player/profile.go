// internal/player/profile.go
//
// Player profile, tutorial flag and full-state export/import.

package player

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

const (
	profileKey  = "profile"
	tutorialKey = "tutorial_seen"

	// DefaultName is used until the player picks one.
	DefaultName = "Player"

	maxNameLen = 24
)

// Profile is the persisted player identity record.
type Profile struct {
	Name       string `json:"name"`
	CreatedAt  int64  `json:"createdAt"`  // unix milliseconds
	LastActive int64  `json:"lastActive"` // unix milliseconds
}

// Service reads and writes per-player records.
type Service struct {
	rec *store.Records
	clk *clock.Clock
}

// NewService binds the player service to one player's records.
func NewService(rec *store.Records, clk *clock.Clock) *Service {
	return &Service{rec: rec, clk: clk}
}

// Profile returns the stored profile, creating the default on first access.
func (s *Service) Profile(ctx context.Context) Profile {
	now := s.clk.Now().UnixMilli()
	p := Profile{Name: DefaultName, CreatedAt: now, LastActive: now}
	if !s.rec.Load(ctx, profileKey, &p) {
		s.rec.Save(ctx, profileKey, p)
	}
	return p
}

// Rename updates the display name and bumps LastActive.
func (s *Service) Rename(ctx context.Context, name string) Profile {
	p := s.Profile(ctx)
	name = strings.TrimSpace(name)
	if name != "" {
		if len(name) > maxNameLen {
			name = name[:maxNameLen]
		}
		p.Name = name
	}
	p.LastActive = s.clk.Now().UnixMilli()
	s.rec.Save(ctx, profileKey, p)
	return p
}

// TutorialSeen reports whether the player dismissed the tutorial.
func (s *Service) TutorialSeen(ctx context.Context) bool {
	var seen bool
	s.rec.Load(ctx, tutorialKey, &seen)
	return seen
}

// MarkTutorialSeen records tutorial dismissal.
func (s *Service) MarkTutorialSeen(ctx context.Context) {
	s.rec.Save(ctx, tutorialKey, true)
}

// Export returns every record held for the player, keyed by record name.
func (s *Service) Export(ctx context.Context) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage)
	for _, key := range s.rec.Keys(ctx) {
		var raw json.RawMessage
		if s.rec.Load(ctx, key, &raw) {
			out[key] = raw
		}
	}
	return out
}

// Import writes the given records wholesale, overwriting existing keys.
func (s *Service) Import(ctx context.Context, data map[string]json.RawMessage) int {
	n := 0
	for key, raw := range data {
		if s.rec.Save(ctx, key, raw) {
			n++
		}
	}
	return n
}
