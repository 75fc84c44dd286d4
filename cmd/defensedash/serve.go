package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"defense-dash/internal/credentials"
	"defense-dash/internal/dashboard"
	"defense-dash/internal/database"
	"defense-dash/internal/handlers"
	"defense-dash/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateServer(); err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	var db *gorm.DB
	if cfg.AuditDBDSN != "" {
		var err error
		if db, err = database.Open(cfg.AuditDBDSN, log); err != nil {
			return err
		}
	} else {
		log.Info("audit log disabled")
	}

	h := handlers.New(
		credentials.NewStore(cfg.UsersFile),
		dashboard.New(cfg.DatasetFile, cfg.CleanedFile, log),
		database.NewAuditor(db, log),
		log,
		cfg.DatasetFile,
	)
	r, err := server.NewRouter(h, cfg.SessionSecret, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("dataset", cfg.DatasetFile),
			zap.String("users", cfg.UsersFile),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
