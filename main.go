package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kaireichart/flight-delay-predictor/airports"
	"github.com/kaireichart/flight-delay-predictor/config"
	"github.com/kaireichart/flight-delay-predictor/dashboard"
	"github.com/kaireichart/flight-delay-predictor/events"
	"github.com/kaireichart/flight-delay-predictor/flight_data"
	"github.com/kaireichart/flight-delay-predictor/mock_schedule"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer log.Sync()

	events.Init(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := airports.Open(cfg.Airports.DBPath, log)
	if err != nil {
		log.Fatal("failed to open airports database", zap.String("path", cfg.Airports.DBPath), zap.Error(err))
	}
	defer store.Close()

	if err := store.SeedIfEmpty(ctx, cfg.Airports.SeedCSV); err != nil {
		log.Warn("failed to seed airports", zap.Error(err))
	}
	directory, err := store.Load(ctx)
	if err != nil {
		log.Fatal("failed to load airports", zap.Error(err))
	}
	log.Info("airport directory loaded", zap.Int("airports", directory.Len()))

	resolver, loadErr := loadResolver(cfg, directory)
	if loadErr != nil {
		log.Error("flight data unavailable", zap.Error(loadErr))
	} else {
		log.Info("flight data loaded",
			zap.String("path", cfg.Data.Path),
			zap.Int("rows", resolver.Dataset.Len()),
		)
	}

	policy := flight_data.DefaultSamplingPolicy()
	policy.Target = cfg.Sampling.Target
	policy.PerBucket = cfg.Sampling.PerBucket

	dash := dashboard.New(log, dashboard.Deps{
		Resolver:     resolver,
		LoadErr:      loadErr,
		Airports:     directory,
		Mock:         mock_schedule.NewGenerator(time.Now().UnixNano(), time.Now),
		Sampling:     policy,
		LiveInterval: cfg.Live.Interval,
		SessionIdle:  cfg.Sessions.IdleTimeout,
		MaxSessions:  cfg.Sessions.Max,
	})

	mux := http.NewServeMux()
	dash.SetupHandlers(mux)
	events.SetupHandlers(mux)

	srv := &http.Server{
		Addr:         cfg.HTTP.Address(),
		Handler:      mux,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Info("server started", zap.String("addr", "http://"+srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func loadResolver(cfg *config.Config, directory *airports.Directory) (*flight_data.Resolver, error) {
	loader := flight_data.NewLoader(flight_data.LoadOptions{
		MaxRows:             cfg.Data.MaxRows,
		ScoreColumn:         cfg.Data.ScoreColumn,
		FilterPositiveScore: cfg.Data.FilterPositiveScore,
	})

	ds, err := loader.Load(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	enc, err := flight_data.LoadEncoders(cfg.Data.EncodersPath)
	if err != nil {
		return nil, err
	}

	return flight_data.NewResolver(ds, enc, directory, cfg.Data.FlightPrefix), nil
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
