package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes-service/internal/config"
	"notes-service/internal/http"
	"notes-service/internal/service"
	"notes-service/internal/storage"
	"notes-service/web"
)

const shutdownTimeout = 5 * time.Second

// run serves the API until ctx is cancelled or SIGINT/SIGTERM arrives.
func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewFileStore(cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	slog.Info("Storage directory ready", "path", store.Root())

	var opts []service.Option
	if cfg.LockWrites {
		opts = append(opts, service.WithNameLocks())
		slog.Info("Per-note write locks enabled")
	}
	noteService := service.NewNoteService(store, opts...)

	var assets fs.FS = web.Assets
	if cfg.FormDir != "" {
		assets = os.DirFS(cfg.FormDir)
	}

	router := http.NewRouter(&http.Deps{
		NoteService:    noteService,
		Storage:        store,
		Assets:         assets,
		UploadFormFile: web.UploadFormFile,
	})

	if cfg.Watch {
		watcher := storage.NewWatcher(store.Root(), func(c storage.Change) {
			slog.Info("Note changed on disk", "name", c.Name, "change", string(c.Kind))
		}, slog.Default())
		go func() {
			if err := watcher.Run(ctx, nil); err != nil {
				slog.Error("Storage watcher stopped", "error", err)
			}
		}()
	}

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	srv := &nethttp.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server started", "url", "http://"+listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("Shutdown complete")
		return nil
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("API server failed: %w", err)
	}
}
