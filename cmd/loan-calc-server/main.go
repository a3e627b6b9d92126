package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/loan-calc/internal/config"
	"github.com/iwvelando/loan-calc/internal/logging"
	"github.com/iwvelando/loan-calc/internal/server"
	"github.com/iwvelando/loan-calc/internal/storage"
	"github.com/iwvelando/loan-calc/pkg/constants"
	"github.com/iwvelando/loan-calc/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// version override via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting loan-calc server",
			zap.String("op", "main.serve"),
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server",
			zap.String("op", "main.serve"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// applyMaxBodySize overrides the configured body limit with a humanized size
// such as "1 MiB". An empty override keeps the configured value.
func applyMaxBodySize(serverConf *server.Config, override string) error {
	if override == "" {
		return nil
	}
	size, err := server.ParseSize(override)
	if err != nil {
		return fmt.Errorf("invalid max body size %q: %w", override, err)
	}
	serverConf.SetBodySizeBytes(size)
	return nil
}

func main() {
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	maxBodySize := flag.String("max-body-size", "", "request body limit override, e.g. 128KiB")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logging.FatalBeforeLogger(fmt.Sprintf("failed to load configuration at %s", *configLocation), err)
	}

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		logging.FatalBeforeLogger(fmt.Sprintf("failed to load server configuration at %s", *serverConfigLocation), err)
	}

	// Server logging settings take precedence over the shared ones.
	loggingConf := conf.Logging
	if serverConf.Logging.Level != "" {
		loggingConf.Level = serverConf.Logging.Level
	}
	if serverConf.Logging.Format != "" {
		loggingConf.Format = serverConf.Logging.Format
	}
	if serverConf.Logging.OutputFile != "" {
		loggingConf.OutputFile = serverConf.Logging.OutputFile
	}

	logger, err := logging.New(loggingConf, *logLevel)
	if err != nil {
		logging.FatalBeforeLogger("failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := applyMaxBodySize(serverConf, *maxBodySize); err != nil {
		logger.Fatal("invalid server options",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := validation.ValidateStorageBackend(conf.Storage.Backend,
		constants.StorageBackendMemory,
		constants.StorageBackendFile,
		constants.StorageBackendSQLite,
		constants.StorageBackendRedis,
	); err != nil {
		logger.Fatal("unsupported storage backend for the server",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	formatter, err := conf.Formatter()
	if err != nil {
		logger.Fatal("failed to build number formatter",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, conf.Storage, logger)
	if err != nil {
		logger.Fatal("failed to open storage",
			zap.String("op", "main"),
			zap.String("backend", conf.Storage.Backend),
			zap.Error(err),
		)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           server.NewHandler(logger, store, formatter, serverConf.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := serve(ctx, srv, logger); err != nil {
		logger.Error("server stopped with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	}
	logger.Info("server stopped gracefully",
		zap.String("op", "main"),
	)
}
