package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"story-generator/completion"
	"story-generator/config"
	"story-generator/core"
	"story-generator/generation"
	"story-generator/handlers/api/stories"
	"story-generator/stores"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type HomeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func newRouter(storyStore core.StoryStore, generator stories.StoryGenerator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Origin", "X-Requested-With"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusOK)
		render.JSON(w, r, HomeResponse{
			Message: "Welcome to the Story Generator API!",
			Status:  "running",
		})
	})

	r.Post("/generate_story", stories.HandleGenerate(generator))
	r.Post("/save_story", stories.HandleSave(storyStore))

	r.Route("/api", func(r chi.Router) {
		r.Get("/stories", stories.HandleList(storyStore))
		// The web client prefixes every call with /api.
		r.Post("/generate_story", stories.HandleGenerate(generator))
		r.Post("/save_story", stories.HandleSave(storyStore))
	})

	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	ctx := context.Background()
	storyStore := stores.GetStore(ctx, cfg.Storage)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := storyStore.Ping(pingCtx); err != nil {
		logrus.WithField("error", err).Error("Failed to connect to story store")
	} else {
		logrus.Info("Successfully connected to story store")
	}
	cancel()

	completer, err := completion.New(cfg.Completion)
	if err != nil {
		logrus.WithField("error", err).Fatal("Failed to create completion provider")
	}
	generator := generation.NewGenerator(completer, cfg.Completion.Model)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(storyStore, generator),
	}
	go func() {
		logrus.WithField("addr", server.Addr).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithField("error", err).Fatal("Server stopped")
		}
	}()

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithField("error", err).Error("Graceful shutdown failed")
	}
	logrus.Info("Server stopped")
}
