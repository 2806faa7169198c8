package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatbooking/internal/api"
	"seatbooking/internal/clock"
	"seatbooking/internal/config"
	"seatbooking/internal/database"
	"seatbooking/internal/database/postgres"
	"seatbooking/internal/domain"
	"seatbooking/internal/events"
	"seatbooking/internal/export"
	"seatbooking/internal/google"
	"seatbooking/internal/logging"
	"seatbooking/internal/metrics"
	"seatbooking/internal/models"
	"seatbooking/internal/notify"
	"seatbooking/internal/repository"
	"seatbooking/internal/service"
	"seatbooking/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	seats, err := loadSeats(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, sqliteDB, err := initStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SyncSeats(ctx, seats); err != nil {
		logger.Error().Err(err).Msg("sync seats")
		return err
	}

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	clk := clock.NewSystem(cfg.Booking.Location())

	redisClient := initRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer func() { _ = repository.Close(redisClient) }()
	}
	states := initStateRepository(redisClient, logger)

	bus := events.NewEventBus(logger)
	initTelegram(cfg, bus, logger)
	if bridge := initAMQP(cfg, bus, logger); bridge != nil {
		defer bridge.Close()
	}
	syncWorker := initSheetsWorker(ctx, cfg, store, redisClient, bus, logger)

	mailer := notify.NewMailer(cfg.Mail, logger)
	users := service.NewUserService(store, clk, logger)
	svc := api.Services{
		Booking:     service.NewBookingService(store, store, clk, bus, syncWorker, logger),
		Seats:       service.NewSeatService(store, store, clk, cfg.Booking, logger),
		Reports:     service.NewReportService(store, store, store, store, mailer, clk, bus, logger),
		Users:       users,
		Reset:       service.NewResetService(users, mailer, states, clk, cfg.Reset, logger),
		Exporter:    export.NewExporter(store, clk, cfg.Exports.Path, logger),
		ResetStates: states,
		Clock:       clk,
		Store:       store,
	}

	if sqliteDB != nil {
		go database.NewBackupService(sqliteDB, cfg.Backup, logger).Start(ctx)
	}
	startMetrics(ctx, cfg, logger)

	var grpcServer *api.GRPCServer
	if cfg.API.GRPC.Enabled {
		grpcServer, err = api.NewGRPCServer(&cfg.API, store, svc.Seats, logger)
		if err != nil {
			logger.Error().Err(err).Msg("create grpc server")
			return err
		}
		go grpcServer.WatchStore(ctx, 15*time.Second)
	}

	httpServer := api.NewHTTPServer(cfg.API, svc, logger)

	return startServers(ctx, grpcServer, httpServer, cfg, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, &logger, closer, nil
}

// loadSeats merges the seats from the main config with an optional
// SEATS_PATH layout file.
func loadSeats(cfg *config.Config, logger *zerolog.Logger) ([]*models.Seat, error) {
	all := append([]models.Seat(nil), cfg.Seats...)

	if seatsPath := os.Getenv("SEATS_PATH"); seatsPath != "" {
		data, err := os.ReadFile(seatsPath)
		if err != nil {
			logger.Error().Err(err).Str("seats_path", seatsPath).Msg("read seats")
			return nil, err
		}

		var layout struct {
			Seats []models.Seat `yaml:"seats"`
		}
		if err := yaml.Unmarshal(data, &layout); err != nil {
			logger.Error().Err(err).Str("seats_path", seatsPath).Msg("parse seats")
			return nil, err
		}
		all = append(all, layout.Seats...)
	}

	if err := config.ValidateSeats(all); err != nil {
		return nil, fmt.Errorf("seat layout: %w", err)
	}

	out := make([]*models.Seat, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

// initStore opens the configured backend. The SQLite handle is returned
// separately because only it supports online backups.
func initStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (domain.Store, *database.DB, error) {
	if cfg.Database.Driver == "postgres" {
		pg, err := postgres.NewDB(ctx, cfg.Database.Postgres.DSN(), postgres.Options{
			MaxOpenConns: cfg.Database.Postgres.MaxConnections,
		}, logger)
		if err != nil {
			logger.Error().Err(err).Str("host", cfg.Database.Postgres.Host).Msg("init postgres")
			return nil, nil, err
		}
		return pg, nil, nil
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, nil, err
	}
	return db, db, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

func initStateRepository(client *redis.Client, logger *zerolog.Logger) domain.ResetStateRepository {
	memory := repository.NewMemoryStateRepository()
	if client == nil {
		return memory
	}
	return repository.NewFailoverStateRepository(repository.NewRedisStateRepository(client), memory, logger)
}

func initTelegram(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if !cfg.Telegram.Enabled {
		return
	}
	notifier, err := notify.NewTelegramNotifier(cfg.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram init failed, continuing without admin alerts")
		return
	}
	notifier.Subscribe(bus)
}

func initAMQP(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) *notify.AMQPBridge {
	if !cfg.AMQP.Enabled {
		return nil
	}
	bridge, err := notify.NewAMQPBridge(cfg.AMQP, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("amqp init failed, continuing without event bridge")
		return nil
	}
	bridge.Subscribe(bus)
	return bridge
}

// initSheetsWorker returns nil when sheet sync is off so the booking
// service sees no worker at all.
func initSheetsWorker(
	ctx context.Context,
	cfg *config.Config,
	store domain.Store,
	redisClient *redis.Client,
	bus *events.EventBus,
	logger *zerolog.Logger,
) domain.SyncWorker {
	if !cfg.Google.Enabled {
		return nil
	}

	sheets, err := google.NewSheetsService(ctx, cfg.Google.CredentialsFile, cfg.Google.SpreadsheetID, cfg.Booking.Location())
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}
	if err := sheets.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets connection test failed, continuing without sheets")
		return nil
	}
	if err := sheets.WarmUpCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets cache warm-up failed")
	}
	logger.Info().Msg("google sheets connected")

	w := worker.NewSheetsWorker(store, sheets, redisClient, worker.RetryPolicy{}, logger)
	w.Subscribe(bus)
	go w.Start(ctx)
	return w
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServers(
	ctx context.Context,
	grpcServer *api.GRPCServer,
	httpServer *api.HTTPServer,
	cfg *config.Config,
	logger *zerolog.Logger,
) error {
	if grpcServer != nil {
		go func() {
			if err := grpcServer.Serve(); err != nil {
				logger.Error().Err(err).Msg("grpc server stopped")
			}
		}()
	}

	go func() {
		if !cfg.API.HTTP.Enabled {
			return
		}
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Bool("grpc", grpcServer != nil).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Shutdown(shutdownCtx)
	}
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
