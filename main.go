package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"nodeguard/config"
	qhttp "nodeguard/http"
	"nodeguard/logging"
	"nodeguard/ml"
	"nodeguard/monitoring"
)

func main() {
	configArg := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	// 1. Load config
	cfg := config.Default()
	if path := config.FindConfigFile(*configArg); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		config.LoadEnv(cfg)
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Load every model; a partial registry never serves
	specs := cfg.Models.Specs()
	registry, err := ml.LoadRegistry(cfg.Models.Dir, specs, logger)
	if err != nil {
		logger.Fatal("failed to load model registry", zap.String("dir", cfg.Models.Dir), zap.Error(err))
	}

	metrics := monitoring.NewMetrics()
	metrics.SetModels(registry.Len())

	predictor, err := ml.NewPredictor(cfg.Models.CacheSize,
		ml.WithLogger(logger.Named("predictor")),
		ml.WithObserver(metrics))
	if err != nil {
		logger.Fatal("failed to create predictor", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Models.Watch {
		files := make([]string, 0, len(specs))
		for _, spec := range specs {
			files = append(files, spec.File)
		}
		watcher, err := monitoring.NewModelWatcher(cfg.Models.Dir, files, logger.Named("watcher"), func(string) {
			metrics.ModelFileChanged()
		})
		if err != nil {
			logger.Warn("model watcher disabled", zap.Error(err))
		} else {
			go watcher.Run(ctx)
		}
	}

	// 3. Start HTTP server
	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:         cfg.Http.Port,
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
		MaxBodyBytes: cfg.Http.MaxBodyBytes,
	}, qhttp.NewHandlers(registry, predictor, logger.Named("http")), metrics.Handler(), logger.Named("server"))
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 4. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	cancel()

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
