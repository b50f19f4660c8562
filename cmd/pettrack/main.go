package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/pettrack/console/client"
	"github.com/pettrack/console/console"
	"github.com/pettrack/console/internal/config"
	"github.com/pettrack/console/server"
	"github.com/pettrack/console/session"
)

func main() {
	if err := run(); err != nil {
		zl := zerolog.New(os.Stderr)
		zl.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg := config.EnvVars{}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if cfg.IsDebug() {
		zl = zl.Level(zerolog.DebugLevel)
	} else {
		zl = zl.Level(zerolog.InfoLevel)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDBPath())
	if err != nil {
		return err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()

	var api *server.Server
	if cfg.IsStandalone() {
		api = server.New(db, cfg, server.WithLogger(logAdapter{zl.With().Str("component", "api").Logger()}))
		if err := api.Bootstrap(ctx); err != nil {
			return err
		}

		go func() {
			zl.Info().Str("addr", cfg.GetAPIPort()).Msg("platform api listening")
			if err := api.Listen(cfg.GetAPIPort()); err != nil {
				zl.Error().Err(err).Msg("platform api stopped")
			}
		}()
	}

	store, err := session.NewStore(ctx, db)
	if err != nil {
		return err
	}
	store.Load(ctx)

	base := client.NewBaseClient(cfg.GetAPIBaseURL(), client.TokenSourceFunc(func() string {
		return store.Current().AccessToken
	}))

	services := console.NewServices(base)
	manager := session.NewManager(store, services.Auth).
		WithLogger(logAdapter{zl.With().Str("component", "session").Logger()})

	manager.OnChange(func(s session.Session) {
		if s.Empty() {
			zl.Info().Msg("session cleared")
			return
		}
		zl.Info().Str("user", s.User.Email).Msg("session updated")
	})

	ui := console.New(cfg, manager, services,
		console.WithConsoleLogger(logAdapter{zl.With().Str("component", "console").Logger()}))

	go func() {
		zl.Info().Str("addr", cfg.GetPort()).Msg("console listening")
		if err := ui.Listen(cfg.GetPort()); err != nil {
			zl.Error().Err(err).Msg("console stopped")
		}
	}()

	waitForStopSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ui.Shutdown(shutdownCtx); err != nil {
		zl.Error().Err(err).Msg("console shutdown")
	}
	if api != nil {
		if err := api.Shutdown(shutdownCtx); err != nil {
			zl.Error().Err(err).Msg("platform api shutdown")
		}
	}

	zl.Info().Msg("stopped")
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

// logAdapter bridges the package logger interfaces onto zerolog
type logAdapter struct {
	log zerolog.Logger
}

func (a logAdapter) Debug(format string, args ...any) { a.log.Debug().Msgf(format, args...) }
func (a logAdapter) Info(format string, args ...any)  { a.log.Info().Msgf(format, args...) }
func (a logAdapter) Warn(format string, args ...any)  { a.log.Warn().Msgf(format, args...) }
func (a logAdapter) Error(format string, args ...any) { a.log.Error().Msgf(format, args...) }
