package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"resortdesk/internal/app/services/desk"
	"resortdesk/internal/domain/expense"
	"resortdesk/internal/domain/reservation"
	"resortdesk/internal/domain/room"
	"resortdesk/internal/infra/broker/kafka"
	"resortdesk/internal/infra/config"
	mongodb "resortdesk/internal/infra/db/mongo"
	ginserver "resortdesk/internal/infra/http/gin"
	"resortdesk/internal/infra/messaging/whatsapp"
	"resortdesk/internal/infra/obs"
	"resortdesk/internal/infra/outbox"
	"resortdesk/internal/infra/security"
	"resortdesk/internal/infra/sessions"
	"resortdesk/internal/infra/storage/memory"
	"resortdesk/internal/infra/storage/s3"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	fixturesPath := cfg.RoomFixturesPath
	if fixturesPath == "" {
		fixturesPath = defaultRoomFixturesPath()
	}
	if err := loadRoomFixtures(ctx, app.rooms, fixturesPath, logger); err != nil {
		logger.Warn("room fixtures load failed", "error", err, "path", fixturesPath)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	rooms    room.Repository
	worker   *outbox.Worker
	producer *kafka.Producer
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		reservations reservation.Repository
		rooms        room.Repository
		expenses     expense.Repository
		events       outbox.Store
		sessionStore sessions.Store
		ready        func() error
	)

	switch cfg.StorageMode {
	case "memory":
		reservations = memory.NewReservationRepository()
		rooms = memory.NewRoomRepository()
		expenses = memory.NewExpenseRepository()
		events = outbox.NewMemoryStore()
		sessionStore = sessions.NewMemoryStore()
		logger.Info("storage mode: in-memory, state is not persisted")
	default:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			return application{}, fmt.Errorf("mongo ping: %w", err)
		}
		reservations = mongodb.NewReservationRepository(client.DB)
		rooms = mongodb.NewRoomRepository(client.DB)
		expenses = mongodb.NewExpenseRepository(client.DB)
		events = outbox.NewMongoStore(client.DB)
		redisStore := sessions.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		if err := redisStore.Ping(pingCtx); err != nil {
			return application{}, fmt.Errorf("redis ping: %w", err)
		}
		sessionStore = redisStore
		ready = func() error {
			checkCtx, cancelCheck := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancelCheck()
			return client.Ping(checkCtx)
		}
	}

	service := &desk.Service{
		Reservations: reservations,
		Rooms:        rooms,
		Events:       events,
		Logger:       logger,
	}

	var (
		worker   *outbox.Worker
		producer *kafka.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, fmt.Errorf("kafka connect: %w", err)
		}
		producer = p
		worker = &outbox.Worker{
			Store:       events,
			Producer:    p,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
	} else {
		logger.Warn("KAFKA_BROKERS unset, lifecycle events stay queued in the outbox")
	}

	var archive s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, logger)
		if err != nil {
			logger.Warn("object storage unavailable, export archival disabled", "error", err)
		} else {
			archive = client
		}
	}

	messages := whatsapp.Builder{ResortName: cfg.ResortName, ResortPhone: cfg.ResortPhone}

	handlers := ginserver.Handlers{
		Reservation: ginserver.ReservationHandler{
			Desk:     service,
			Rooms:    rooms,
			Messages: messages,
		},
		Availability: ginserver.AvailabilityHandler{Desk: service},
		Room:         ginserver.RoomHandler{Rooms: rooms},
		Expense:      ginserver.ExpenseHandler{Expenses: expenses},
		Export: ginserver.ExportHandler{
			Reservations: reservations,
			Archive:      archive,
			ResortName:   cfg.ResortName,
		},
		Auth: ginserver.AuthHandler{
			AdminEmail:        cfg.AdminEmail,
			AdminPasswordHash: cfg.AdminPasswordHash,
			Hasher:            security.BcryptHasher{},
			Tokens:            security.RandomTokenGenerator{},
			Sessions:          sessionStore,
		},
		AuthMiddleware: ginserver.Authentication(sessionStore),
	}

	return application{
		handlers: handlers,
		rooms:    rooms,
		worker:   worker,
		producer: producer,
		ready:    ready,
	}, nil
}

func (a application) close(logger *slog.Logger) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("kafka producer close failed", "error", err)
		}
	}
}

type roomFixture struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Category string `json:"category"`
}

// loadRoomFixtures seeds the room inventory. Existing rooms are overwritten so
// edits to the fixtures file take effect on restart.
func loadRoomFixtures(ctx context.Context, rooms room.Repository, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("room fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []roomFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		if fx.ID == "" || fx.Name == "" {
			logger.Error("fixture invalid, id and name are required", "room_id", fx.ID)
			continue
		}
		rm := &room.Room{
			ID:       room.RoomID(fx.ID),
			Name:     fx.Name,
			Capacity: fx.Capacity,
			Category: fx.Category,
		}
		if err := rooms.Save(ctx, rm); err != nil {
			logger.Error("cannot store fixture room", "room_id", fx.ID, "error", err)
			continue
		}
	}
	logger.Info("room fixtures imported", "count", len(fixtures), "path", path)
	return nil
}

func defaultRoomFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "rooms.json"),
		filepath.Join("backend", "data", "rooms.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
