package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/linkboard/linkboard/internal/api"
	"github.com/linkboard/linkboard/internal/auth"
	"github.com/linkboard/linkboard/internal/cache"
	"github.com/linkboard/linkboard/internal/config"
	"github.com/linkboard/linkboard/internal/db"
	"github.com/linkboard/linkboard/internal/store"
)

const feedCacheTTL = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel)

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			codec, err := auth.NewTokenCodec(cfg.Token.Secret)
			if err != nil {
				return err
			}

			users := store.NewUserStore(database)
			links := store.NewLinkStore(database)
			votes := store.NewVoteStore(database)

			var feedCache *cache.FeedCache
			if cfg.Redis.Addr != "" {
				client := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
				feedCache = cache.NewFeedCache(client, feedCacheTTL, logger)
				logger.WithField("addr", cfg.Redis.Addr).Info("feed cache enabled")
			}

			router := chi.NewRouter()
			router.Mount("/api", api.NewRouter(api.Deps{
				Credentials: auth.NewCredentialManager(users, codec),
				Identity:    auth.NewMiddleware(codec),
				Users:       users,
				Links:       links,
				Votes:       votes,
				FeedCache:   feedCache,
				Log:         logger,
			}))
			router.Handle("/metrics", promhttp.Handler())
			router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			logger.WithField("addr", cfg.HTTP.Addr).Info("listening")
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
