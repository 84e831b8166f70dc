package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pictlock/go-mfa-server/accounts"
	accountspgx "github.com/pictlock/go-mfa-server/accounts/pgxrepo"
	"github.com/pictlock/go-mfa-server/accounts/repofake"
	"github.com/pictlock/go-mfa-server/attempts"
	"github.com/pictlock/go-mfa-server/auth"
	"github.com/pictlock/go-mfa-server/feedback"
	feedbackpgx "github.com/pictlock/go-mfa-server/feedback/pgxrepo"
	"github.com/pictlock/go-mfa-server/internal/config"
	"github.com/pictlock/go-mfa-server/internal/database"
	"github.com/pictlock/go-mfa-server/server"
	"github.com/pictlock/go-mfa-server/sessions"
	sessionspgx "github.com/pictlock/go-mfa-server/sessions/pgxrepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c)
	displayAppname(c.GetAppName())

	handler, err := buildServer(c)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	var (
		accountRepo  accounts.Repo
		sessionRepo  sessions.Repo
		feedbackRepo feedback.Repo
	)

	if dsn := c.GetDatabaseURL(); dsn != "" {
		db, err := database.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("database.Open: %w", err)
		}
		accountRepo = accountspgx.New(db)
		sessionRepo = sessionspgx.New(db)
		feedbackRepo = feedbackpgx.New(db)
		log.Info().Msg("using postgres stores")
	} else {
		accountRepo = repofake.NewFakeAccountRepo()
		sessionRepo = sessions.NewInMemoryRepo()
		feedbackRepo = feedback.NewInMemoryRepo()
		log.Warn().Msg("DATABASE_URL not set, using in-memory stores")
	}

	issuer, err := sessions.NewIssuer(sessionRepo, sessions.WithTTL(c.GetSessionTTL()))
	if err != nil {
		return nil, fmt.Errorf("sessions.NewIssuer: %w", err)
	}

	repos := auth.Repos{
		Accounts: accountRepo,
		Attempts: attempts.NewInMemoryRepo(),
	}
	return server.New(c, repos, issuer, feedbackRepo)
}

func configureLogging(c config.Config) {
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
