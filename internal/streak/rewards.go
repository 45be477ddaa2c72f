// internal/streak/rewards.go
//
// 7-day claimable reward cycle.
// One claim per calendar date. Each claim applies the fixed reward for the
// cycle's current day, then advances the day (7 wraps to 1 and clears the
// claimed set). Missing more than one calendar day restarts the cycle at
// day 1, lazily on the next read, without touching the lifetime claim
// counter. Day 5 activates a timed score multiplier; day 7 is a mystery
// grant of 5–10 energy or hints.

package streak

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/economy"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

const (
	rewardsKey    = "rewards"
	multiplierKey = "score_multiplier"

	cycleDays          = 7
	multiplierDuration = 24 * time.Hour
)

// Reward types.
const (
	RewardEnergy     = "energy"
	RewardHints      = "hints"
	RewardMultiplier = "multiplier"
	RewardMystery    = "mystery"
)

// Reward is one entry of the fixed 7-day table.
type Reward struct {
	Day    int    `json:"day"`
	Type   string `json:"type"`
	Amount int    `json:"amount"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`
}

// Table is the reward calendar, indexed by day-1.
var Table = []Reward{
	{Day: 1, Type: RewardEnergy, Amount: 2, Icon: "⚡", Label: "+2 Energy"},
	{Day: 2, Type: RewardHints, Amount: 1, Icon: "💡", Label: "+1 Hint"},
	{Day: 3, Type: RewardEnergy, Amount: 3, Icon: "⚡", Label: "+3 Energy"},
	{Day: 4, Type: RewardHints, Amount: 2, Icon: "💡", Label: "+2 Hints"},
	{Day: 5, Type: RewardMultiplier, Amount: 2, Icon: "✨", Label: "2x Score"},
	{Day: 6, Type: RewardEnergy, Amount: 5, Icon: "⚡", Label: "+5 Energy"},
	{Day: 7, Type: RewardMystery, Amount: 0, Icon: "🎁", Label: "Mystery Box"},
}

// ErrAlreadyClaimed signals a second claim attempt on the same date.
var ErrAlreadyClaimed = errors.New("rewards: already claimed today")

// CycleRecord is the persisted reward-cycle state.
type CycleRecord struct {
	LastClaimDate    string `json:"lastClaimDate,omitempty"` // YYYY-MM-DD
	CurrentDay       int    `json:"currentDay"`              // 1..7
	CycleClaimedDays []int  `json:"cycleClaimedDays"`
	TotalClaims      int    `json:"totalClaims"`
}

// multiplierRecord is the persisted timed score multiplier.
type multiplierRecord struct {
	Value   float64 `json:"value"`
	Expires int64   `json:"expires"` // unix milliseconds
}

// Claimed describes the outcome of a successful claim.
type Claimed struct {
	Reward Reward      `json:"reward"`
	Result string      `json:"result"` // human label, e.g. "+7 Energy!"
	Cycle  CycleRecord `json:"cycle"`
}

// Cycle manages the reward calendar for one player.
type Cycle struct {
	rec    *store.Records
	clk    *clock.Clock
	energy *economy.Meter
	hints  *economy.Meter
}

// NewCycle binds the reward cycle to a player's records and meters.
func NewCycle(rec *store.Records, clk *clock.Clock, energy, hints *economy.Meter) *Cycle {
	return &Cycle{rec: rec, clk: clk, energy: energy, hints: hints}
}

// Get returns the reconciled cycle. A legacy or malformed record migrates
// to the default shape; a gap of more than one calendar day since the last
// claim restarts the cycle at day 1 with the claimed set cleared.
// TotalClaims survives both.
func (c *Cycle) Get(ctx context.Context) CycleRecord {
	rec := CycleRecord{CurrentDay: 1}
	loaded := c.rec.Load(ctx, rewardsKey, &rec)
	if loaded && (rec.CurrentDay < 1 || rec.CurrentDay > cycleDays) {
		rec = CycleRecord{CurrentDay: 1, TotalClaims: rec.TotalClaims}
		c.rec.Save(ctx, rewardsKey, rec)
	}

	if rec.LastClaimDate != "" {
		last, err := c.clk.ParseDateKey(rec.LastClaimDate)
		if err != nil {
			rec = CycleRecord{CurrentDay: 1, TotalClaims: rec.TotalClaims}
			c.rec.Save(ctx, rewardsKey, rec)
		} else if c.clk.DaysBetween(last, c.clk.Today()) > 1 && (rec.CurrentDay != 1 || len(rec.CycleClaimedDays) > 0) {
			rec.CurrentDay = 1
			rec.CycleClaimedDays = nil
			c.rec.Save(ctx, rewardsKey, rec)
		}
	}
	return rec
}

// CanClaim reports whether today's reward is still unclaimed.
func (c *Cycle) CanClaim(ctx context.Context) bool {
	return c.Get(ctx).LastClaimDate != c.clk.TodayKey()
}

// Claim applies today's reward and advances the cycle.
func (c *Cycle) Claim(ctx context.Context) (*Claimed, error) {
	rec := c.Get(ctx)
	today := c.clk.TodayKey()
	if rec.LastClaimDate == today {
		return nil, ErrAlreadyClaimed
	}

	day := rec.CurrentDay
	reward := Table[day-1]
	result := c.apply(ctx, reward)

	claimed := false
	for _, d := range rec.CycleClaimedDays {
		if d == day {
			claimed = true
			break
		}
	}
	if !claimed {
		rec.CycleClaimedDays = append(rec.CycleClaimedDays, day)
	}
	rec.LastClaimDate = today
	rec.TotalClaims++
	if day >= cycleDays {
		rec.CurrentDay = 1
		rec.CycleClaimedDays = nil
	} else {
		rec.CurrentDay = day + 1
	}
	c.rec.Save(ctx, rewardsKey, rec)

	return &Claimed{Reward: reward, Result: result, Cycle: rec}, nil
}

func (c *Cycle) apply(ctx context.Context, reward Reward) string {
	switch reward.Type {
	case RewardEnergy:
		c.energy.Grant(ctx, reward.Amount)
		return fmt.Sprintf("+%d Energy", reward.Amount)
	case RewardHints:
		c.hints.Grant(ctx, reward.Amount)
		if reward.Amount == 1 {
			return "+1 Hint"
		}
		return fmt.Sprintf("+%d Hints", reward.Amount)
	case RewardMultiplier:
		c.activateMultiplier(ctx, float64(reward.Amount))
		return fmt.Sprintf("%dx Score Multiplier (24hr)", reward.Amount)
	case RewardMystery:
		return c.openMystery(ctx)
	default:
		return reward.Label
	}
}

// openMystery grants 5–10 units of energy or hints, chosen uniformly.
func (c *Cycle) openMystery(ctx context.Context) string {
	amount := rand.Intn(6) + 5
	if rand.Intn(2) == 0 {
		c.energy.Grant(ctx, amount)
		return fmt.Sprintf("+%d Energy!", amount)
	}
	c.hints.Grant(ctx, amount)
	return fmt.Sprintf("+%d Hints!", amount)
}

func (c *Cycle) activateMultiplier(ctx context.Context, value float64) {
	c.rec.Save(ctx, multiplierKey, multiplierRecord{
		Value:   value,
		Expires: c.clk.Now().Add(multiplierDuration).UnixMilli(),
	})
}

// Multiplier returns the active score multiplier, or 1. An expired record
// is removed on read.
func (c *Cycle) Multiplier(ctx context.Context) float64 {
	var rec multiplierRecord
	if !c.rec.Load(ctx, multiplierKey, &rec) {
		return 1
	}
	if c.clk.Now().UnixMilli() > rec.Expires {
		c.rec.Delete(ctx, multiplierKey)
		return 1
	}
	if rec.Value < 1 {
		return 1
	}
	return rec.Value
}
