package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AdplixMarketing/Frequency-Zero/internal/catalog"
	"github.com/AdplixMarketing/Frequency-Zero/internal/clock"
	"github.com/AdplixMarketing/Frequency-Zero/internal/httpserver"
	"github.com/AdplixMarketing/Frequency-Zero/internal/session"
	"github.com/AdplixMarketing/Frequency-Zero/internal/store"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle catalog")
	}

	clk, err := clock.New(getEnv("TIMEZONE", "America/Chicago"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TIMEZONE")
	}

	db, err := store.Open(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	st := store.NewSQLiteStore(db)
	sessions := session.NewManager(st, clk, log.Logger)
	srv := httpserver.New(st, clk, sessions, log.Logger)

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Str("tz", clk.Location().String()).Msg("starting frequency-zero server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
