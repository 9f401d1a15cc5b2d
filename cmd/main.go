package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/dtroode/paperdesk/internal/api/http/context"
	"github.com/dtroode/paperdesk/internal/api/http/handler"
	"github.com/dtroode/paperdesk/internal/api/http/router"
	httpServer "github.com/dtroode/paperdesk/internal/api/http/server"
	"github.com/dtroode/paperdesk/internal/config"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
	"github.com/dtroode/paperdesk/internal/notify"
	"github.com/dtroode/paperdesk/internal/repository/postgres"
	"github.com/dtroode/paperdesk/internal/server"
	"github.com/dtroode/paperdesk/internal/service"
	"github.com/dtroode/paperdesk/internal/storage/minio"
	"github.com/dtroode/paperdesk/internal/storage/s3"
	"github.com/dtroode/paperdesk/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	pendingRepo := postgres.NewPendingAccountRepository(db)
	paperRepo := postgres.NewPaperRepository(db)

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize blob store", "error", err, "backend", cfg.Storage.Backend)
	}

	dispatcher := notify.NewDispatcher(newDeliverer(cfg, logger), cfg.Mail.From, logger)

	tokenManager := token.NewJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	policy := service.NewPolicy(cfg.AdminEmail, cfg.Papers.OpenAuthorListing)

	tokenService := service.NewTokenService(tokenManager, accountRepo, accountRepo, logger)
	registrationService := service.NewRegistration(accountRepo, pendingRepo, policy, tokenService, dispatcher, logger)
	authService := service.NewAuth(accountRepo, policy, tokenService, logger)
	paperService := service.NewPaper(paperRepo, blobs, policy, dispatcher, logger)

	r := router.New(router.Services{
		Registration: registrationService,
		Auth:         authService,
		Sessions:     tokenService,
		Papers:       paperService,
		Tokens:       tokenService,
		Database:     db,
	}, httpctx.NewManager(), router.Options{
		CORSOrigin:     cfg.HTTP.CORSOrigin,
		MaxUploadBytes: cfg.HTTP.MaxUploadMB << 20,
		Cookies: handler.CookieOptions{
			Secure:     cfg.IsProduction(),
			AccessTTL:  cfg.JWT.AccessTTL,
			RefreshTTL: cfg.JWT.RefreshTTL,
		},
	}, logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("pending notifications were not delivered", "error", err)
	}

	logger.Info("shutdown complete")
}

func newBlobStore(ctx context.Context, cfg *config.Config) (model.BlobStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return s3.New(ctx, s3.Options{
			Region:    cfg.Storage.S3.Region,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			Bucket:    cfg.Storage.S3.Bucket,
			PublicURL: cfg.Storage.S3.PublicURL,
		})
	default:
		return minio.New(ctx, minio.Options{
			Endpoint:  cfg.Storage.MinIO.Endpoint,
			AccessKey: cfg.Storage.MinIO.AccessKey,
			SecretKey: cfg.Storage.MinIO.SecretKey,
			Bucket:    cfg.Storage.MinIO.Bucket,
			UseSSL:    cfg.Storage.MinIO.UseSSL,
			PublicURL: cfg.Storage.MinIO.PublicURL,
		})
	}
}

func newDeliverer(cfg *config.Config, logger *logger.Logger) notify.Deliverer {
	if cfg.Mail.SMTPHost == "" {
		logger.Warn("SMTP_HOST is not set, notifications are written to the log")
		return notify.NewLogDeliverer(logger)
	}
	return notify.NewSMTPDeliverer(notify.SMTPOptions{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUsername,
		Password: cfg.Mail.SMTPPassword,
		Sender:   cfg.Mail.From,
	})
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
