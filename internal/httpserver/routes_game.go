// internal/httpserver/routes_game.go
//
// Game routes: puzzle sessions, daily challenge, resources, rewards,
// leaderboard, stats, profile and export. Everything mounts behind the
// player-token middleware; per-player components are rebuilt from the
// record store on each request, so no handler keeps authoritative state.

package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
	"github.com/AdplixMarketing/Frequency-Zero/internal/daily"
	"github.com/AdplixMarketing/Frequency-Zero/internal/economy"
	"github.com/AdplixMarketing/Frequency-Zero/internal/leaderboard"
	"github.com/AdplixMarketing/Frequency-Zero/internal/player"
	"github.com/AdplixMarketing/Frequency-Zero/internal/session"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
	"github.com/AdplixMarketing/Frequency-Zero/internal/streak"
)

// playerServices bundles the per-player record-backed components for one request.
type playerServices struct {
	energy   *economy.Meter
	hints    *economy.Meter
	streak   *streak.Tracker
	cycle    *streak.Cycle
	player   *player.Service
	progress *daily.Store
	board    *leaderboard.Board
}

func (s *Server) svcFor(r *http.Request) *playerServices {
	rec := store.NewRecords(s.store, playerID(r), s.log)
	energy := economy.NewEnergy(rec, s.clk)
	hints := economy.NewHints(rec, s.clk)
	return &playerServices{
		energy:   energy,
		hints:    hints,
		streak:   streak.NewTracker(rec, s.clk),
		cycle:    streak.NewCycle(rec, s.clk, energy, hints),
		player:   player.NewService(rec, s.clk),
		progress: daily.NewStore(rec, s.clk),
		board:    leaderboard.New(rec, s.clk),
	}
}

// mountGame registers every player-scoped route.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/start", s.handleSessionStart)
		r.Get("/", s.handleSessionCurrent)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Post("/skip", s.handleSkip)
	})
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Get("/summary", s.handleDailySummary)
		r.Get("/share", s.handleDailyShare)
	})
	r.Get("/energy", s.handleEnergy)
	r.Post("/energy/bonus", s.handleEnergyBonus)
	r.Get("/hints", s.handleHints)
	r.Get("/streak", s.handleStreak)
	r.Route("/rewards", func(r chi.Router) {
		r.Get("/", s.handleRewards)
		r.Post("/claim", s.handleRewardClaim)
	})
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/stats", s.handleStats)
	r.Get("/profile", s.handleProfile)
	r.Post("/profile", s.handleProfileUpdate)
	r.Get("/export", s.handleExport)
	r.Post("/import", s.handleImport)
	r.Post("/tutorial/seen", s.handleTutorialSeen)

	r.Get("/debug/catalog", func(w http.ResponseWriter, r *http.Request) {
		total, perDifficulty := catalog.Stats()
		writeJSON(w, http.StatusOK, map[string]any{"total": total, "perDifficulty": perDifficulty})
	})
}

// ------------------------------ session -------------------------------------

type startReq struct {
	Mode     string `json:"mode" validate:"required,oneof=daily practice"`
	Category string `json:"category" validate:"omitempty,oneof=all movies tvshows songs phrases brands places"`
}

func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if !s.decode(w, r, &req) {
		return
	}
	snap, err := s.sessions.Start(r.Context(), playerID(r), req.Mode, req.Category)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSessionCurrent(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Current(r.Context(), playerID(r))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type guessReq struct {
	Guess string `json:"guess" validate:"required"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.sessions.Submit(r.Context(), playerID(r), req.Guess)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type hintReq struct {
	Kind string `json:"kind" validate:"omitempty,oneof=letter category"`
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.sessions.Hint(r.Context(), playerID(r), req.Kind)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	out, err := s.sessions.Skip(r.Context(), playerID(r))
	if err != nil {
		s.sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// sessionError maps controller refusals onto HTTP statuses.
func (s *Server) sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNoSession):
		writeError(w, http.StatusNotFound, "no_active_puzzle")
	case errors.Is(err, session.ErrDailyComplete):
		writeError(w, http.StatusConflict, "daily_complete")
	case errors.Is(err, session.ErrInsufficientEnergy):
		writeError(w, http.StatusConflict, "insufficient_energy")
	case errors.Is(err, session.ErrNoHints):
		writeError(w, http.StatusConflict, "no_hints")
	case errors.Is(err, session.ErrEmptyGuess):
		writeError(w, http.StatusBadRequest, "empty_guess")
	case errors.Is(err, session.ErrBadMode):
		writeError(w, http.StatusBadRequest, "bad_mode")
	case errors.Is(err, catalog.ErrEmpty), errors.Is(err, daily.ErrNoPuzzles):
		writeError(w, http.StatusServiceUnavailable, "no_puzzles")
	default:
		s.log.Error().Err(err).Msg("session operation failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// ------------------------------- daily --------------------------------------

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	progress := svc.progress.Progress(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"date":         s.clk.TodayKey(),
		"dayIndex":     s.clk.TodayIndex(),
		"progress":     progress,
		"currentIndex": svc.progress.CurrentIndex(r.Context()),
		"completed":    progress.Completed,
		"resetsIn":     int(s.clk.UntilTomorrow().Seconds()),
	})
}

func (s *Server) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sessions.DailySummary(r.Context(), playerID(r), s.origin))
}

func (s *Server) handleDailyShare(w http.ResponseWriter, r *http.Request) {
	summary := s.sessions.DailySummary(r.Context(), playerID(r), s.origin)
	writeJSON(w, http.StatusOK, map[string]string{"text": summary.ShareText})
}

// ----------------------------- resources ------------------------------------

func (s *Server) handleEnergy(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	rec := svc.energy.Get(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"current":   rec.Current,
		"max":       economy.EnergyMax,
		"refillsIn": int(svc.energy.UntilRefill().Seconds()),
	})
}

func (s *Server) handleEnergyBonus(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	current := svc.energy.Grant(r.Context(), economy.BonusEnergyAmount)
	writeJSON(w, http.StatusOK, map[string]any{"granted": economy.BonusEnergyAmount, "current": current})
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	writeJSON(w, http.StatusOK, map[string]any{"current": svc.hints.Current(r.Context())})
}

// ------------------------- streak and rewards --------------------------------

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svcFor(r).streak.Get(r.Context()))
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	cycle := svc.cycle.Get(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"cycle":      cycle,
		"table":      streak.Table,
		"canClaim":   svc.cycle.CanClaim(r.Context()),
		"multiplier": svc.cycle.Multiplier(r.Context()),
	})
}

func (s *Server) handleRewardClaim(w http.ResponseWriter, r *http.Request) {
	svc := s.svcFor(r)
	claimed, err := svc.cycle.Claim(r.Context())
	if err != nil {
		if errors.Is(err, streak.ErrAlreadyClaimed) {
			writeError(w, http.StatusConflict, "already_claimed")
			return
		}
		s.log.Error().Err(err).Msg("reward claim failed")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}
	writeJSON(w, http.StatusOK, claimed)
}

// ----------------------- leaderboard and stats -------------------------------

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = leaderboard.PeriodDaily
	}
	valid := false
	for _, p := range leaderboard.Periods {
		if p == period {
			valid = true
			break
		}
	}
	if !valid {
		writeError(w, http.StatusBadRequest, "bad_period")
		return
	}
	svc := s.svcFor(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"entries": svc.board.Top(r.Context(), period, 20),
		"rank":    svc.board.SelfRank(r.Context(), period),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svcFor(r).player.Stats(r.Context()))
}

// ------------------------------ profile --------------------------------------

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svcFor(r).player.Profile(r.Context()))
}

type profileReq struct {
	Name string `json:"name" validate:"required,min=1,max=24"`
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var req profileReq
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.svcFor(r).player.Rename(r.Context(), req.Name))
}

func (s *Server) handleTutorialSeen(w http.ResponseWriter, r *http.Request) {
	s.svcFor(r).player.MarkTutorialSeen(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// --------------------------- export / import ---------------------------------

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svcFor(r).player.Export(r.Context()))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var data map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	n := s.svcFor(r).player.Import(r.Context(), data)
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// decode parses and validates a JSON request body; on failure it writes the
// error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	if err := s.validate.Struct(dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload")
		return false
	}
	return true
}
