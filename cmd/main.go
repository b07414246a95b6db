package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samandr77/microservices/compliance/internal/api"
	"github.com/samandr77/microservices/compliance/internal/api/events"
	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/clients/fetcher"
	"github.com/samandr77/microservices/compliance/internal/clients/gemini"
	"github.com/samandr77/microservices/compliance/internal/clients/gomail"
	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/internal/repository"
	"github.com/samandr77/microservices/compliance/internal/seed"
	"github.com/samandr77/microservices/compliance/internal/service"
	"github.com/samandr77/microservices/compliance/pkg/broker"
	"github.com/samandr77/microservices/compliance/pkg/config"
	"github.com/samandr77/microservices/compliance/pkg/job"
	"github.com/samandr77/microservices/compliance/pkg/logger"
	"github.com/samandr77/microservices/compliance/pkg/metrics"
	"github.com/samandr77/microservices/compliance/pkg/postgres"
)

const (
	ReadTimeout = 20 * time.Second
	// WriteTimeout covers an assistant round trip.
	WriteTimeout = 90 * time.Second
	JobTimeout   = 2 * time.Minute
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.LogLevel)
	panicOnErr("init logger", err)

	dataset := seed.Default()
	if cfg.SeedFile != "" {
		dataset, err = seed.Load(cfg.SeedFile)
		panicOnErr("load seed file", err)
	}

	var repo service.Repository

	if cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
		panicOnErr("connect to postgres", err)
		defer pool.Close()

		err = postgres.UpMigrations(ctx, cfg.PostgresDSN)
		panicOnErr("up migrations", err)

		pgRepo := repository.New(pool)

		err = pgRepo.Seed(ctx, dataset)
		panicOnErr("seed postgres", err)

		repo = pgRepo
	} else {
		slog.Info("POSTGRES_DSN not set, keeping state in memory")

		repo = repository.NewMemory(dataset)
	}

	var store service.Blob = blob.NewMemory()

	if cfg.Blob.Driver == blob.DriverS3 {
		store, err = blob.NewS3(ctx, blob.S3Config{
			Bucket:    cfg.Blob.Bucket,
			Region:    cfg.Blob.Region,
			Endpoint:  cfg.Blob.Endpoint,
			PathStyle: cfg.Blob.PathStyle,
		})
		panicOnErr("new s3 store", err)
	}

	m := metrics.New()

	var (
		notifier  service.Notifier = service.LogNotifier{}
		publisher service.Publisher
	)

	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(slog.Default(), cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, cfg.Kafka.NotificationTopic)
		defer producer.Close()

		notifier = producer
		publisher = producer
	}

	if cfg.Mailer.Enabled() {
		notifier = gomail.New(cfg.Mailer)
	}

	provider, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	panicOnErr("new gemini client", err)

	s := service.New(
		repo,
		store,
		fetcher.NewClient(fetcher.Config{
			RetryMax:             cfg.Fetch.RetryMax,
			AllowedHosts:         cfg.Fetch.AllowedHosts,
			AllowPrivateNetworks: cfg.Fetch.AllowPrivate,
			MaxBytes:             cfg.Fetch.MaxBytes,
		}),
		provider,
		notifier,
		publisher,
		m,
		service.SystemClock{},
		service.Config{
			ReferenceDate:   cfg.ReferenceDate,
			AnalysisDelay:   cfg.AnalysisDelay,
			AITimeout:       cfg.AI.Timeout,
			ContextMaxBytes: cfg.AI.ContextMaxBytes,
			MaxSessions:     cfg.AI.MaxSessions,
			SessionTTL:      cfg.AI.SessionTTL,
			DocumentHosts:   cfg.Fetch.AllowedHosts,
		},
	)

	slog.InfoContext(ctx, "reference date", "today", entity.FormatDate(s.Today()))

	// Kafka consumers
	if cfg.Kafka.Enabled() {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerID, cfg.Kafka.EvidenceTopic)
		defer consumer.Close()

		eventHandler := events.NewEventHandler(s)

		consumer.Handle(cfg.Kafka.EvidenceTopic, eventHandler.OnEvidenceSubmitted)
		consumer.Consume(ctx)
	}

	jobs := job.NewRunner().
		Register(service.JobWeeklyDigest, cfg.Jobs.WeeklyDigestInterval, s.SendWeeklyDigest,
			job.SkipFirstRun(), job.Timeout(JobTimeout)).
		Register(service.JobReminders, cfg.Jobs.RemindersInterval, s.SendReminders,
			job.Timeout(JobTimeout)).
		Register(service.JobStatusRefresh, cfg.Jobs.StatusRefreshInterval, s.RefreshStatuses,
			job.Enabled(cfg.Jobs.StatusRefreshEnabled), job.Timeout(JobTimeout))
	jobs.Start(ctx)

	slog.InfoContext(ctx, "background jobs started", "jobs", jobs.Names())

	handler := api.NewHandler(s, cfg.UploadMaxBytes)
	mw := api.NewMiddleware(cfg.JWTSecret, m)

	router := api.NewRouter(handler, mw, m.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		slog.InfoContext(ctx, "http server started", "port", cfg.HTTPPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		slog.DebugContext(ctx, "http server stopped")
	}()

	waitSignal(cancel, server)

	jobs.Stop()
	wg.Wait()
}

func waitSignal(cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	slog.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		slog.ErrorContext(shutdownCtx, "server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
