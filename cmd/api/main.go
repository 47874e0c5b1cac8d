package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/traincamp/bootcamp-directory/internal/api"
	mongodb "github.com/traincamp/bootcamp-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/traincamp/bootcamp-directory/internal/infrastructure/db/redis"
	"github.com/traincamp/bootcamp-directory/internal/infrastructure/geocode"
	"github.com/traincamp/bootcamp-directory/internal/infrastructure/mail"
	"github.com/traincamp/bootcamp-directory/internal/infrastructure/queue"
	"github.com/traincamp/bootcamp-directory/internal/infrastructure/storage"
	"github.com/traincamp/bootcamp-directory/internal/pkg/config"
	"github.com/traincamp/bootcamp-directory/pkg/logger"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Indexes ---
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewBootcampRepository(db),
		mongodb.NewReviewRepository(db),
		mongodb.NewUserRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Outbound collaborators ---
	geocoder := geocode.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.APIKey)

	photoStore, err := storage.NewPhotoStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("photo store init failed")
	}
	if err := photoStore.EnsureBucket(ctx); err != nil {
		log.Fatal().Err(err).Msg("photo bucket init failed")
	}

	mailer := mail.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.Sender)
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, mailer, logger.Named("mailqueue"))
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		Geocoder:   geocoder,
		MailQueue:  dispatcher,
		PhotoStore: photoStore,
		Config:     cfg,
		Logger:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server exited properly")
}
