// internal/session/session.go
//
// Game session controller.
// Orchestrates one puzzle attempt per player: load puzzle → accept input →
// evaluate → score → record → advance. Active attempts live in memory,
// keyed by player id; everything durable goes through the record store.
//
// Attempt lifecycle: Idle → Loaded → Solving → Resolved(correct|skipped) →
// Idle. Wrong submissions keep the attempt in Solving: no token loss, no
// puzzle change. A resolved attempt is dropped from the map; Start loads
// the next one.

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/daily"
	"github.com/AdplixMarketing/Frequency-Zero/internal/economy"
	"github.com/AdplixMarketing/Frequency-Zero/internal/leaderboard"
	"github.com/AdplixMarketing/Frequency-Zero/internal/match"
	"github.com/AdplixMarketing/Frequency-Zero/internal/player"
	"github.com/AdplixMarketing/Frequency-Zero/internal/reveal"
	"github.com/AdplixMarketing/Frequency-Zero/internal/scoring"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
	"github.com/AdplixMarketing/Frequency-Zero/internal/streak"
)

// Play modes.
const (
	ModeDaily    = "daily"
	ModePractice = "practice"
)

// Hint kinds.
const (
	HintLetter   = "letter"
	HintCategory = "category"
)

// Controller errors, mapped to refusals at the HTTP layer.
var (
	ErrNoSession          = errors.New("session: no active puzzle")
	ErrDailyComplete      = errors.New("session: daily challenge already completed")
	ErrInsufficientEnergy = errors.New("session: not enough energy")
	ErrNoHints            = errors.New("session: no hint tokens left")
	ErrEmptyGuess         = errors.New("session: empty guess")
	ErrBadMode            = errors.New("session: unknown mode")
)

// attempt is the in-memory state of one loaded puzzle.
type attempt struct {
	puzzle    catalog.Puzzle
	mode      string
	category  string
	slot      int // daily slot 0..2, -1 in practice
	startedAt time.Time
	hintsUsed int
	reveal    *reveal.Engine
}

// Manager owns all active attempts.
type Manager struct {
	mu       sync.Mutex
	attempts map[string]*attempt // keyed by player id

	store store.Store
	clk   *clock.Clock
	log   zerolog.Logger
}

// NewManager constructs the session controller.
func NewManager(st store.Store, clk *clock.Clock, log zerolog.Logger) *Manager {
	return &Manager{
		attempts: make(map[string]*attempt),
		store:    st,
		clk:      clk,
		log:      log,
	}
}

// services bundles the per-player record-backed components.
type services struct {
	energy   *economy.Meter
	hints    *economy.Meter
	streak   *streak.Tracker
	cycle    *streak.Cycle
	player   *player.Service
	progress *daily.Store
	board    *leaderboard.Board
}

func (m *Manager) servicesFor(playerID string) *services {
	rec := store.NewRecords(m.store, playerID, m.log)
	energy := economy.NewEnergy(rec, m.clk)
	hints := economy.NewHints(rec, m.clk)
	return &services{
		energy:   energy,
		hints:    hints,
		streak:   streak.NewTracker(rec, m.clk),
		cycle:    streak.NewCycle(rec, m.clk, energy, hints),
		player:   player.NewService(rec, m.clk),
		progress: daily.NewStore(rec, m.clk),
		board:    leaderboard.New(rec, m.clk),
	}
}

// Snapshot is the read-only view handed to the UI. The answer never leaves
// the server.
type Snapshot struct {
	Mode           string   `json:"mode"`
	Category       string   `json:"category,omitempty"`
	PuzzleID       string   `json:"puzzleId"`
	PuzzleCategory string   `json:"puzzleCategory"`
	Difficulty     string   `json:"difficulty"`
	Emojis         []string `json:"emojis"`
	Slot           int      `json:"slot"` // -1 in practice
	ElapsedSeconds int      `json:"elapsedSeconds"`
	HintsUsed      int      `json:"hintsUsed"`
	Masked         string   `json:"masked,omitempty"` // present once letters were revealed
	AnswerLength   int      `json:"answerLength"`
}

func (m *Manager) snapshot(a *attempt) *Snapshot {
	s := &Snapshot{
		Mode:           a.mode,
		Category:       a.category,
		PuzzleID:       a.puzzle.ID,
		PuzzleCategory: a.puzzle.Category,
		Difficulty:     a.puzzle.Difficulty,
		Emojis:         a.puzzle.Emojis,
		Slot:           a.slot,
		ElapsedSeconds: int(m.clk.Now().Sub(a.startedAt) / time.Second),
		HintsUsed:      a.hintsUsed,
		AnswerLength:   len(a.puzzle.Answer),
	}
	if a.reveal.Count() > 0 {
		s.Masked = a.reveal.Masked()
	}
	return s
}

// Start loads the next puzzle for the player.
//
// Daily mode serves the next unattempted slot of today's triple; once all
// three slots are filled it returns ErrDailyComplete so the caller can
// route to the completion summary. Practice mode consumes one energy and
// serves a random puzzle, skipping the most recently solved ids.
func (m *Manager) Start(ctx context.Context, playerID, mode, category string) (*Snapshot, error) {
	svc := m.servicesFor(playerID)

	var (
		puz  catalog.Puzzle
		slot int
	)
	switch mode {
	case ModeDaily:
		idx := svc.progress.CurrentIndex(ctx)
		if idx == -1 {
			return nil, ErrDailyComplete
		}
		triple, err := daily.Triple(m.clk.TodayIndex())
		if err != nil {
			return nil, err
		}
		puz, slot = triple[idx].Puzzle, idx
	case ModePractice:
		if !svc.energy.Consume(ctx, economy.PracticeCost) {
			return nil, ErrInsufficientEnergy
		}
		if category == "" {
			category = "all"
		}
		exclude := svc.player.RecentSolved(ctx, player.RecentExclusionWindow)
		p, err := catalog.RandomExcluding(category, exclude)
		if err != nil {
			return nil, err
		}
		puz, slot = *p, -1
	default:
		return nil, ErrBadMode
	}

	a := &attempt{
		puzzle:    puz,
		mode:      mode,
		category:  category,
		slot:      slot,
		startedAt: m.clk.Now(),
		reveal:    reveal.New(puz.Answer),
	}
	m.mu.Lock()
	m.attempts[playerID] = a
	m.mu.Unlock()

	m.log.Info().Str("player", playerID).Str("mode", mode).
		Str("puzzle", puz.ID).Int("slot", slot).Msg("puzzle loaded")
	return m.snapshot(a), nil
}

// Current returns the active attempt's snapshot, or ErrNoSession.
func (m *Manager) Current(ctx context.Context, playerID string) (*Snapshot, error) {
	m.mu.Lock()
	a := m.attempts[playerID]
	m.mu.Unlock()
	if a == nil {
		return nil, ErrNoSession
	}
	return m.snapshot(a), nil
}

// Outcome reports a resolved (or still-unsolved) submission.
type Outcome struct {
	Correct        bool               `json:"correct"`
	Answer         string             `json:"answer,omitempty"` // revealed on resolve only
	Breakdown      *scoring.Breakdown `json:"breakdown,omitempty"`
	ElapsedSeconds int                `json:"elapsedSeconds"`
	HintsUsed      int                `json:"hintsUsed"`
	Stars          string             `json:"stars,omitempty"`
	DailyComplete  bool               `json:"dailyComplete"`
}

// Submit evaluates a guess against the active puzzle.
// A wrong guess resolves nothing: the attempt stays open, no tokens move.
func (m *Manager) Submit(ctx context.Context, playerID, guess string) (*Outcome, error) {
	if strings.TrimSpace(guess) == "" {
		return nil, ErrEmptyGuess
	}
	m.mu.Lock()
	a := m.attempts[playerID]
	m.mu.Unlock()
	if a == nil {
		return nil, ErrNoSession
	}

	elapsed := int(m.clk.Now().Sub(a.startedAt) / time.Second)
	if !match.IsMatch(guess, a.puzzle.Answer) {
		return &Outcome{Correct: false, ElapsedSeconds: elapsed, HintsUsed: a.hintsUsed}, nil
	}

	svc := m.servicesFor(playerID)

	streakRec := svc.streak.Get(ctx)
	bd := scoring.Score(elapsed, a.hintsUsed, a.puzzle.Difficulty, streakRec.Current, svc.cycle.Multiplier(ctx))

	svc.player.MarkSolved(ctx, a.puzzle.ID)
	best := streakRec.Best
	svc.player.RecordPuzzle(ctx, &a.puzzle, true, bd.Total, elapsed, a.hintsUsed, best)
	name := svc.player.Profile(ctx).Name
	svc.board.AddScore(ctx, name, bd.Total, a.mode == ModeDaily)

	dailyComplete := false
	if a.mode == ModeDaily {
		progress := svc.progress.Record(ctx, a.slot, daily.Result{
			Solved: true, HintsUsed: a.hintsUsed, Time: elapsed, Score: bd.Total,
		})
		if a.slot == 2 {
			dailyComplete = true
			svc.streak.Complete(ctx)
			svc.board.AddScore(ctx, name, progress.TotalScore(), false)
		}
	}

	m.mu.Lock()
	delete(m.attempts, playerID)
	m.mu.Unlock()

	m.log.Info().Str("player", playerID).Str("puzzle", a.puzzle.ID).
		Int("score", bd.Total).Int("elapsed", elapsed).Msg("puzzle solved")

	return &Outcome{
		Correct:        true,
		Answer:         a.puzzle.Answer,
		Breakdown:      &bd,
		ElapsedSeconds: elapsed,
		HintsUsed:      a.hintsUsed,
		Stars:          daily.Stars(a.hintsUsed, true),
		DailyComplete:  dailyComplete,
	}, nil
}

// HintResult is the response to a hint request.
type HintResult struct {
	Kind      string `json:"kind"`
	Letter    string `json:"letter,omitempty"`
	Position  int    `json:"position,omitempty"`
	Masked    string `json:"masked,omitempty"`
	Clue      string `json:"clue,omitempty"`
	Exhausted bool   `json:"exhausted"` // nothing left to reveal
	Free      bool   `json:"free"`
	HintsUsed int    `json:"hintsUsed"`
}

// Hint serves a letter reveal or an auxiliary clue.
// Practice mode grants hints for free; daily mode consumes a hint token.
func (m *Manager) Hint(ctx context.Context, playerID, kind string) (*HintResult, error) {
	m.mu.Lock()
	a := m.attempts[playerID]
	m.mu.Unlock()
	if a == nil {
		return nil, ErrNoSession
	}
	if kind == "" {
		kind = HintLetter
	}

	svc := m.servicesFor(playerID)
	free := a.mode == ModePractice

	res := &HintResult{Kind: kind, Free: free}
	switch kind {
	case HintLetter:
		// An exhausted reveal must not cost a token.
		if !a.reveal.HasNext() {
			res.Exhausted = true
			res.Masked = a.reveal.Masked()
			res.HintsUsed = a.hintsUsed
			return res, nil
		}
		if !free && !svc.hints.Consume(ctx, 1) {
			return nil, ErrNoHints
		}
		r := a.reveal.Next()
		a.hintsUsed++
		res.Letter = r.Char
		res.Position = r.Index
		res.Masked = a.reveal.Masked()
	case HintCategory:
		if !free && !svc.hints.Consume(ctx, 1) {
			return nil, ErrNoHints
		}
		a.hintsUsed++
		res.Clue = a.reveal.Clue(a.puzzle.Hints)
	default:
		return nil, errors.New("session: unknown hint kind")
	}
	res.HintsUsed = a.hintsUsed
	return res, nil
}

// Skip abandons the active puzzle, recording a zero-score failed attempt.
func (m *Manager) Skip(ctx context.Context, playerID string) (*Outcome, error) {
	m.mu.Lock()
	a := m.attempts[playerID]
	m.mu.Unlock()
	if a == nil {
		return nil, ErrNoSession
	}

	svc := m.servicesFor(playerID)
	elapsed := int(m.clk.Now().Sub(a.startedAt) / time.Second)

	best := svc.streak.Get(ctx).Best
	svc.player.RecordPuzzle(ctx, &a.puzzle, false, 0, elapsed, a.hintsUsed, best)

	dailyComplete := false
	if a.mode == ModeDaily {
		svc.progress.Record(ctx, a.slot, daily.Result{
			Solved: false, HintsUsed: a.hintsUsed, Time: elapsed, Score: 0,
		})
		if a.slot == 2 {
			dailyComplete = true
			svc.streak.Complete(ctx)
			svc.board.AddScore(ctx, svc.player.Profile(ctx).Name, svc.progress.Progress(ctx).TotalScore(), false)
		}
	}

	m.mu.Lock()
	delete(m.attempts, playerID)
	m.mu.Unlock()

	return &Outcome{
		Correct:        false,
		Answer:         a.puzzle.Answer,
		ElapsedSeconds: elapsed,
		HintsUsed:      a.hintsUsed,
		Stars:          daily.Stars(a.hintsUsed, false),
		DailyComplete:  dailyComplete,
	}, nil
}

// Summary is the daily completion report.
type Summary struct {
	Progress   daily.Progress `json:"progress"`
	TotalScore int            `json:"totalScore"`
	Streak     int            `json:"streak"`
	ShareText  string         `json:"shareText"`
	Stars      [3]string      `json:"stars"`
}

// DailySummary builds the completion report for today's challenge.
func (m *Manager) DailySummary(ctx context.Context, playerID, origin string) *Summary {
	svc := m.servicesFor(playerID)
	progress := svc.progress.Progress(ctx)
	streakRec := svc.streak.Get(ctx)

	var stars [3]string
	for i, solved := range progress.Puzzles {
		stars[i] = daily.Stars(progress.HintsUsed[i], solved != nil && *solved)
	}
	return &Summary{
		Progress:   progress,
		TotalScore: progress.TotalScore(),
		Streak:     streakRec.Current,
		ShareText:  daily.ShareText(progress, m.clk.TodayIndex(), streakRec.Current, origin),
		Stars:      stars,
	}
}

// Abandon drops any active attempt without recording anything.
// Used when the player switches modes mid-puzzle.
func (m *Manager) Abandon(playerID string) {
	m.mu.Lock()
	delete(m.attempts, playerID)
	m.mu.Unlock()
}
