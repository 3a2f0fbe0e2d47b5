// main is the entry point of the users & blogs API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (.env, then a YAML file plus env overrides)
//  2. Initialise the logger
//  3. Open the storage backend and seed missing collections
//  4. Build the stores and register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/blog-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/blog-api
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/config"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/http/router"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/password"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage/jsonfile"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage/memory"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/storage/sqlite"
	"github.com/Xurramov-Ogabek/42-lesson-Homework/internal/store"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Handlers log through the package-level slog functions, so the
	// configured logger also becomes the default.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting blog-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeBackend()

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	if cfg.Users.PasswordHashing == "plain" {
		log.Warn("passwords are stored in plain text; set users.password_hashing to bcrypt for production")
	}
	hasher, err := password.New(cfg.Users.PasswordHashing)
	if err != nil {
		log.Error("invalid password hashing mode", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 4. Stores and Routes ──────────────────────────────────────────────
	users := store.NewUsers(backend, store.UserPolicy{
		MinUsernameLength: cfg.Users.MinUsernameLength,
		MinPasswordLength: cfg.Users.MinPasswordLength,
		MinAge:            cfg.Users.MinAge,
	}, hasher)
	blogs := store.NewBlogs(backend)

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router.New(users, blogs, log),

		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	// ── 5. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// openBackend builds the storage backend named by cfg.Storage.Driver and
// makes sure the users and blogs collections exist. The returned func
// releases the backend.
func openBackend(cfg *config.Config) (storage.Backend, func(), error) {
	collections := []string{store.UsersCollection, store.BlogsCollection}

	switch cfg.Storage.Driver {
	case "file":
		dir, err := jsonfile.New(cfg.Storage.Path, collections...)
		if err != nil {
			return nil, nil, err
		}
		return dir, func() {}, nil
	case "sqlite":
		db, err := sqlite.New(cfg, collections...)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case "memory":
		return memory.New(collections...), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger picks the slog handler for env: text at debug for dev (and
// anything unrecognised), JSON at debug for staging, JSON at info for prod.
func setupLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	switch env {
	case "prod":
		opts.Level = slog.LevelInfo
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
}
