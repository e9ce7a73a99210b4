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
	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/contacts"
	mongocontactrepo "github.com/jrsteele09/go-contacts-server/contacts/mongorepo"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/jrsteele09/go-contacts-server/internal/database"
	"github.com/jrsteele09/go-contacts-server/server"
	"github.com/jrsteele09/go-contacts-server/token"
	mongouserrepo "github.com/jrsteele09/go-contacts-server/users/mongorepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stack", string(debug.Stack())).Msgf("Recovered from panic: %v", r)
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	configureLogging(c)
	displayAppname(c.GetAppName())

	ctx := context.Background()
	store, err := database.Connect(ctx, c)
	if err != nil {
		return err
	}
	defer closeStore(store)

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	handler, err := newHandler(c, store)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// newHandler wires the repositories, services and routes onto the open store
func newHandler(c config.Config, store *database.Store) (*server.Server, error) {
	signer, err := token.NewHMACSigner(c.GetJWTSecret())
	if err != nil {
		return nil, err
	}
	tokens, err := token.New(signer, token.WithTokenExpiry(c.GetAccessTokenExpiry()))
	if err != nil {
		return nil, err
	}
	credentials, err := auth.NewCredentials(tokens, c.GetBcryptCost())
	if err != nil {
		return nil, err
	}

	authService, err := auth.NewAuthService(mongouserrepo.NewMongoUserRepo(store.Users()), credentials)
	if err != nil {
		return nil, err
	}
	contactService, err := contacts.NewService(mongocontactrepo.NewMongoContactRepo(store.Contacts()))
	if err != nil {
		return nil, err
	}
	return server.New(c, authService, contactService)
}

func configureLogging(c config.EnvConfig) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

// closeStore runs after the HTTP server has drained
func closeStore(store *database.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
