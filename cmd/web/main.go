package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mhdreza10/quizauth/internal/auth"
	"github.com/mhdreza10/quizauth/internal/config"
	"github.com/mhdreza10/quizauth/internal/db"
	"github.com/mhdreza10/quizauth/internal/handlers"
	"github.com/mhdreza10/quizauth/internal/ratelimit"
	"github.com/mhdreza10/quizauth/internal/repo"
	"github.com/mhdreza10/quizauth/internal/scheduler"
	"github.com/mhdreza10/quizauth/internal/session"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogger(cfg.LogFormat)

	// Credential store: Postgres in production, in-memory for dev runs.
	var store repo.CredentialStore
	switch cfg.StoreBackend {
	case "memory":
		slog.Warn("using in-memory credential store; users are lost on restart")
		store = repo.NewMemoryStore()
	default:
		database, err := db.Connect(
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
			cfg.DBUser,
			cfg.DBPass,
			cfg.DBMaxOpenConns,
			cfg.DBMaxIdleConns,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

		if err := db.Run(cfg.DatabaseURL()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		store = repo.NewUserRepo(database)
	}

	sessions := session.NewManager([]byte(cfg.SessionSecret))
	limiter := ratelimit.New(
		rate.Every(time.Duration(cfg.LoginAttemptWindowMinutes)*time.Minute),
		cfg.LoginMaxAttempts,
	)
	authService := auth.NewService(store, sessions, limiter)

	sweep := scheduler.Run(limiter)
	defer sweep.Stop()

	authH := &handlers.AuthHandler{Auth: authService, Sessions: sessions}
	quizH := &handlers.QuizHandler{}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	r := handlers.Router(authH, quizH, sessions, useTLS)

	addr := ":" + cfg.Port
	if useTLS {
		slog.Info("starting server with TLS", "addr", addr)
		log.Fatal(http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r))
	}
	slog.Info("starting server", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
