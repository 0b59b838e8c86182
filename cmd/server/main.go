package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrylevesque/tododemo/internal/api"
	"github.com/harrylevesque/tododemo/internal/auth"
	"github.com/harrylevesque/tododemo/internal/config"
	"github.com/harrylevesque/tododemo/internal/metrics"
	"github.com/harrylevesque/tododemo/internal/store"
	"github.com/harrylevesque/tododemo/internal/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (json, yaml or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger, closer, err := utils.NewLogger(utils.LogOptions{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Pretty: cfg.Log.Pretty,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init logger")
	}
	defer closer.Close()

	creds, err := auth.NewCredentials(cfg.Auth.Username, cfg.Auth.Password)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash credentials")
	}
	sessionStore, err := auth.NewCookieStore(cfg.Auth.SessionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("session store")
	}
	if cfg.Auth.SessionKey == "" {
		logger.Warn().Msg("auth.session_key not set; sessions will not survive a restart")
	}
	guard := auth.NewGuard(sessionStore, logger)

	todos := store.NewTodoStore()
	router := api.NewRouter(api.RouterOptions{
		Todos: api.NewTodoHandler(todos, logger),
		Mock: api.NewMockHandler(api.MockOptions{
			Credentials: creds,
			Guard:       guard,
			Delays: api.Delays{
				Login: cfg.Mock.LoginDelay,
				Users: cfg.Mock.UsersDelay,
				User:  cfg.Mock.UserDelay,
			},
			BindSession: cfg.Auth.BindSession,
		}, logger),
		Guard:     guard,
		Metrics:   metrics.New(todos.Len),
		StaticDir: cfg.Server.StaticDir,
		Logger:    logger,
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Bool("bind_session", cfg.Auth.BindSession).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
