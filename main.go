package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wordlegolf/internal/config"
	"wordlegolf/internal/daily"
	"wordlegolf/internal/golf"
	"wordlegolf/internal/httpserver"
	"wordlegolf/internal/store"
	"wordlegolf/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word catalog")
	}

	st, db, err := store.OpenSQLite(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open database")
	}
	defer db.Close()

	svc := golf.NewService(st, daily.NewClient(cfg.Daily.BaseURL))
	srv := httpserver.New(cfg, st, svc)

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Server.Env).Msg("starting wordlegolf server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
