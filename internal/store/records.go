// internal/store/records.go
//
// Records binds a Store to one player with best-effort semantics:
// a failed read falls back to the caller's default, a failed write is
// logged and reported as false, and neither ever surfaces to the player
// as an error. The game proceeds on in-memory state for that call.

package store

import (
	"context"

	"github.com/rs/zerolog"
)

// Records is the per-player view of the store handed to game components.
type Records struct {
	store  Store
	player string
	log    zerolog.Logger
}

// NewRecords builds the per-player record accessor.
func NewRecords(s Store, playerID string, log zerolog.Logger) *Records {
	return &Records{store: s, player: playerID, log: log.With().Str("player", playerID).Logger()}
}

// PlayerID returns the bound player identifier.
func (r *Records) PlayerID() string { return r.player }

// Load reads the record at key into dest. Returns false when the key is
// absent or unreadable; dest keeps whatever default the caller primed it
// with.
func (r *Records) Load(ctx context.Context, key string, dest any) bool {
	ok, err := r.store.Get(ctx, r.player, key, dest)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("record load failed, using default")
		return false
	}
	return ok
}

// Save writes the full record at key. Failures are logged, not returned.
func (r *Records) Save(ctx context.Context, key string, value any) bool {
	if err := r.store.Set(ctx, r.player, key, value); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("record save failed")
		return false
	}
	return true
}

// Delete removes the record at key. Failures are logged, not returned.
func (r *Records) Delete(ctx context.Context, key string) bool {
	if err := r.store.Remove(ctx, r.player, key); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("record delete failed")
		return false
	}
	return true
}

// Keys lists the player's record keys, for export. Returns nil on failure.
func (r *Records) Keys(ctx context.Context) []string {
	keys, err := r.store.Keys(ctx, r.player)
	if err != nil {
		r.log.Warn().Err(err).Msg("record key listing failed")
		return nil
	}
	return keys
}
