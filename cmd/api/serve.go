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

	"pageturn/internal/client"
	"pageturn/internal/repository"
	"pageturn/internal/server"
	"pageturn/internal/service"
	"pageturn/internal/token"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autoMigrate bool

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "run schema migration before serving")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return err
	}
	if autoMigrate {
		if err := client.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	mediaStore, err := client.NewMediaStore(&cfg.Media)
	if err != nil {
		return err
	}
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	mailClient := client.NewMailClient(&cfg.SMTP)

	bookRepo := repository.NewBookRepository(db)
	userRepo := repository.NewUserRepository(db)
	paymentOrderRepo := repository.NewPaymentOrderRepository(db)

	tokens := token.NewManager(&cfg.Auth)

	srv := server.NewServer(cfg, log, tokens, server.Services{
		Auth:     service.NewAuthService(tokens, userRepo),
		Book:     service.NewBookService(log, mediaStore, bookRepo),
		Payment:  service.NewPaymentService(db, log, razorpayClient, &cfg.Razorpay, bookRepo, paymentOrderRepo),
		Password: service.NewPasswordService(log, mailClient, userRepo),
	})

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", zap.String("addr", serverAddr), zap.String("env", cfg.Environment.Name))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
