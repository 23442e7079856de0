package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpHandler "github.com/anthanhphan/go-file-uploader/internal/adapter/inbound/http"
	"github.com/anthanhphan/go-file-uploader/internal/adapter/outbound/fsstore"
	"github.com/anthanhphan/go-file-uploader/internal/config"
	"github.com/anthanhphan/go-file-uploader/internal/service"
	"github.com/anthanhphan/gosdk/logger"
)

type App struct {
	cfg    *config.Config
	server *httpHandler.Server
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Storage adapter
	store, err := fsstore.New(cfg.Storage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init file store: %w", err)
	}

	// 4. Services
	svc := service.NewFileService(cfg, store)

	// 5. HTTP Server
	httpServer := httpHandler.NewServer(cfg, svc)

	return &App{
		cfg:    cfg,
		server: httpServer,
	}, nil
}

func (a *App) Run() error {
	logger.Infow("Upload service starting", "addr", a.cfg.Server.Addr, "root_dir", a.cfg.Storage.RootDir)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down upload service")
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("Shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}
