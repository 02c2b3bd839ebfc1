package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/cache"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/export"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/planner"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/repository/postgresql"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/milkrun/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	database, err := db.NewDb(ctx, cfg.DB.DSN())
	if err != nil {
		lg.Fatal("database init error", zap.Error(err))
	}
	defer database.Close()

	snapshots, closeSnapshots := snapshotStore(ctx, cfg)
	defer closeSnapshots()

	repos := storage.Repositories{
		Subscriptions: postgresql.NewSubscriptionRepo(),
		Slots:         postgresql.NewSlotRepo(),
		Deliveries:    postgresql.NewDeliveryRepo(),
		Pricing:       postgresql.NewPricingRepo(),
		Inventory:     postgresql.NewInventoryRepo(),
		Outbox:        postgresql.NewOutboxTaskRepo(cfg.OutboxMaxAttempts),
	}
	stg := storage.NewStorage(database, repos, snapshots, cfg.Location, cfg.Fees, cfg.DeliveryTopic)

	userRepo := postgresql.NewUserRepo(database)
	if err := db.InitAdmin(ctx, userRepo, stg, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		lg.Fatal("seed error", zap.Error(err))
	}

	if mem, ok := snapshots.(*cache.SubscriptionCache); ok {
		if err := mem.LoadInitialData(ctx, stg); err != nil {
			lg.Fatal("failed to warm subscription cache", zap.Error(err))
		}
	}

	var producer kafka.Producer
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) > 0 {
		producer = kafka.NewKafkaProducer(cfg.KafkaBrokers)
	} else {
		lg.Warn("kafka disabled, events are only logged")
		producer = kafka.NewLogProducer()
	}

	publisher := kafka.NewPublisher(database, repos.Outbox, producer, kafka.PublisherConfig{
		PollInterval: cfg.OutboxPoll,
		BatchSize:    cfg.OutboxBatchSize,
		MaxAttempts:  cfg.OutboxMaxAttempts,
	})

	deliveryPlanner := planner.New(stg, planner.Config{
		Interval: cfg.PlannerInterval,
		Days:     cfg.PlannerDays,
	})

	exporter := export.NewExporter(stg, nil)
	if cfg.ExportBucket != "" {
		uploader, err := export.NewS3Uploader(ctx, export.S3Config{
			Bucket:    cfg.ExportBucket,
			Endpoint:  cfg.ExportEndpoint,
			Region:    cfg.ExportRegion,
			AccessKey: cfg.ExportKey,
			SecretKey: cfg.ExportSecret,
		})
		if err != nil {
			lg.Fatal("object storage init error", zap.Error(err))
		}
		exporter = export.NewExporter(stg, uploader)
	}

	audit := server.NewAuditManager(2, 5, 500*time.Millisecond, producer, cfg.AuditTopic)
	srv := server.New(stg, userRepo, exporter, audit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx, cfg.HTTPPort)
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		deliveryPlanner.Run(gctx)
		return nil
	})

	lg.Info("service started", zap.String("port", cfg.HTTPPort), zap.String("timezone", cfg.Location.String()))

	if err := g.Wait(); err != nil {
		lg.Error("service stopped with error", zap.Error(err))
	}

	// the publisher closes the producer shared with the audit sink, so it stops last
	deliveryPlanner.Shutdown()
	publisher.Shutdown()
	lg.Info("service gracefully stopped")
}

// snapshotStore picks Redis when configured and the in-process cache otherwise.
func snapshotStore(ctx context.Context, cfg *config.Config) (storage.SnapshotStore, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewSubscriptionCache(), func() {}
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		zap.L().Fatal("redis init error", zap.Error(err))
	}
	return cache.NewRedisSubscriptionStore(client, cfg.SnapshotTTL), func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("failed to close redis client", zap.Error(err))
		}
	}
}
