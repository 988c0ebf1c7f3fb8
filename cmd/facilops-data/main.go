package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"facilops-data/internal/config"
	httpapi "facilops-data/internal/http"
	"facilops-data/internal/logger"
	"facilops-data/internal/mqtt"
	"facilops-data/internal/repository"
	"facilops-data/internal/service"
	"facilops-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "facilops-data")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	// Realtime store when configured, memory repos for plain `go run`.
	var (
		devicesRepo   repository.DevicesRepo
		presenceRepo  repository.PresenceRepo
		documentsRepo repository.DocumentsRepo
		tasksRepo     repository.TasksRepo
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RTDB.BaseURL != "" {
		rt := repository.NewRealtimeClient(cfg.RTDB.BaseURL, cfg.RTDB.Token, log)
		devicesRepo = repository.NewRealtimeDevicesRepo(rt)
		presenceRepo = repository.NewRealtimePresenceRepo(rt)
		documentsRepo = repository.NewRealtimeDocumentsRepo(rt)
		tasksRepo = repository.NewRealtimeTasksRepo(rt)
		log.Info("realtime store enabled", zap.String("base_url", cfg.RTDB.BaseURL))

		// Audit trail: device edits can come from any dashboard instance.
		go watchCollection(ctx, devicesRepo.(repository.Subscriber), "devices/camera", log)
		go watchCollection(ctx, devicesRepo.(repository.Subscriber), "devices/access", log)
	} else {
		devicesRepo = repository.NewMemoryDevicesRepo()
		presenceRepo = repository.NewMemoryPresenceRepo()
		documentsRepo = repository.NewMemoryDocumentsRepo()
		tasksRepo = repository.NewMemoryTasksRepo()
		log.Warn("no realtime store configured, using in-memory repositories")
	}

	// Optional Postgres archive for presence history.
	var archive repository.PresenceRepo
	if cfg.DBEnabled {
		db, err := repository.NewPostgresDB(
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
			cfg.Database.Password, cfg.Database.Database, cfg.Database.SSLMode)
		if err != nil {
			log.Warn("DB enabled but connection failed, archive disabled", zap.Error(err))
		} else {
			archive = repository.NewPostgresPresenceRepo(db)
			defer db.Close()
			log.Info("presence archive enabled")
		}
	}

	// Optional MQTT status notifier for monitor walls.
	var notifier service.StatusNotifier
	if cfg.MQTT.Enabled {
		n, err := mqtt.NewStatusNotifier(cfg.MQTT, log)
		if err != nil {
			log.Warn("MQTT enabled but connect failed, notifier disabled", zap.Error(err))
		} else {
			notifier = n
			defer n.Close()
		}
	}

	var ocr httpapi.OCRRecognizer
	if cfg.OCR.BaseURL != "" {
		ocr = service.NewOCRClient(cfg.OCR.BaseURL, cfg.OCR.APIKey, kv, log)
	}

	imports := service.NewImportService(devicesRepo, presenceRepo, archive, kv, notifier, log)

	router := httpapi.NewRouter(log)
	router.RegisterImportRoutes(httpapi.NewImportHandler(imports, ocr, kv, log))
	router.RegisterDeviceRoutes(httpapi.NewDevicesHandler(devicesRepo, notifier, imports, log))
	router.RegisterReportRoutes(httpapi.NewReportsHandler(presenceRepo, imports, log))
	router.RegisterDocumentRoutes(httpapi.NewDocumentsHandler(documentsRepo, log))
	router.RegisterTaskRoutes(httpapi.NewTasksHandler(tasksRepo, devicesRepo, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case <-errCh:
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}

// watchCollection follows the store's change stream and logs every write,
// reconnecting with backoff until ctx is cancelled.
func watchCollection(ctx context.Context, sub repository.Subscriber, collection string, log *zap.Logger) {
	for {
		ch, err := sub.Subscribe(ctx, collection)
		if err != nil {
			log.Warn("change stream subscribe failed",
				zap.String("collection", collection), zap.Error(err))
		} else {
			for change := range ch {
				log.Info("collection changed",
					zap.String("collection", change.Collection),
					zap.String("path", change.Path))
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5*time.Second):
		}
	}
}
