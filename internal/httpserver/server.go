// internal/httpserver/server.go
//
// HTTP server wiring for the Frequency Zero game service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Player token cookie: a signed JWT issued on first contact identifies
//     the player; there are no accounts or passwords.
//   - Route registration for session, daily, economy, rewards, leaderboard,
//     stats, profile and export endpoints.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the cookie works).
//   - Handlers never return raw storage errors to the player; storage is
//     best-effort and refusals map to 4xx JSON bodies.

package httpserver

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/session"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

const playerCookieName = "fz_token"

// ctxPlayerKey carries the player id through the request context.
type ctxPlayerKey struct{}

// Server bundles router, record store and the session controller.
type Server struct {
	r        *chi.Mux
	store    store.Store
	clk      *clock.Clock
	sessions *session.Manager
	validate *validator.Validate
	log      zerolog.Logger
	secret   []byte
	origin   string
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, clk *clock.Clock, sessions *session.Manager, log zerolog.Logger) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		clk:      clk,
		sessions: sessions,
		validate: validator.New(),
		log:      log,
		secret:   []byte(getEnv("TOKEN_SECRET", "dev_secret_change_me")),
		origin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "frequency-zero",
			"endpoints": []string{"/health", "POST /session/start", "POST /session/guess", "/daily", "/rewards", "/leaderboard"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.mountGame(s.r.With(s.withPlayer))

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withPlayer resolves the player id from the token cookie, issuing a fresh
// identity when the cookie is missing or invalid. Every game route runs
// behind this; the player never registers explicitly.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.playerFromCookie(r)
		if id == "" {
			id = uuid.NewString()
			if tok, err := s.signPlayerToken(id); err == nil {
				s.setPlayerCookie(w, tok)
			} else {
				s.log.Error().Err(err).Msg("sign player token")
			}
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}

func (s *Server) playerFromCookie(r *http.Request) string {
	c, err := r.Cookie(playerCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return ""
	}
	id, _ := claims["pid"].(string)
	return id
}

func (s *Server) signPlayerToken(id string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"pid": id,
		"iat": time.Now().Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *Server) setPlayerCookie(w http.ResponseWriter, token string) {
	secure := os.Getenv("ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
