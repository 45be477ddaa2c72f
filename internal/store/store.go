// internal/store/store.go
//
// Persistent key-value state store.
// All durable game state (energy, hints, streak, rewards, daily progress,
// stats, leaderboard) lives here as one JSON record per (player, key).
// Components never hold authoritative copies: each read re-fetches, each
// mutation writes the full record back.

package store

import "context"

// Store is the persistence interface for player records.
// Implementations may be backed by SQLite (production) or memory (tests).
type Store interface {
	// Get unmarshals the record at key into dest.
	// Returns false with a nil error when the key does not exist.
	Get(ctx context.Context, playerID, key string, dest any) (bool, error)

	// Set serializes value and persists it at key, replacing any prior record.
	Set(ctx context.Context, playerID, key string, value any) error

	// Remove deletes the record at key. Removing a missing key is not an error.
	Remove(ctx context.Context, playerID, key string) error

	// Keys lists every record key held for the player, for export.
	Keys(ctx context.Context, playerID string) ([]string, error)
}
