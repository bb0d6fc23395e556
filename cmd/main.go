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

	httpcontext "github.com/dtroode/careerguide-server/internal/api/http/context"
	"github.com/dtroode/careerguide-server/internal/api/http/router"
	httpServer "github.com/dtroode/careerguide-server/internal/api/http/server"
	"github.com/dtroode/careerguide-server/internal/config"
	"github.com/dtroode/careerguide-server/internal/identity"
	"github.com/dtroode/careerguide-server/internal/logger"
	"github.com/dtroode/careerguide-server/internal/mail"
	"github.com/dtroode/careerguide-server/internal/model"
	"github.com/dtroode/careerguide-server/internal/repository/postgres"
	"github.com/dtroode/careerguide-server/internal/server"
	"github.com/dtroode/careerguide-server/internal/service"
	storage "github.com/dtroode/careerguide-server/internal/storage/minio"
	"github.com/dtroode/careerguide-server/internal/telemetry"
	"github.com/dtroode/careerguide-server/internal/token"
)

const serviceName = "careerguide-server"

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.IsProduction())

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, serviceName)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	credentialRepo := postgres.NewCredentialRepository(db)
	codeRepo := postgres.NewVerificationCodeRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	provider := identity.NewProvider(credentialRepo, codeRepo, tokenManager, logger, identity.Options{
		VerificationTTL: cfg.Identity.VerificationTTL,
		DefaultRegion:   cfg.Identity.DefaultRegion,
	})

	storageClient, err := storage.NewClient(ctx, storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
		URLExpiry: cfg.Storage.URLExpiry,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	mailer := mail.NewDispatcher(newMailSender(cfg, logger), cfg.AppName, cfg.Identity.VerificationTTL, logger)

	links := service.NewLinkSigner(storageClient, logger)
	authService := service.NewAuth(provider, profileRepo, mailer, service.NewVerificationSync(profileRepo, logger), logger,
		service.AuthOptions{
			FrontendURL:            cfg.FrontendURL,
			ExposeVerificationLink: !cfg.IsProduction(),
			Links:                  links,
		})
	profileService := service.NewProfile(profileRepo, links, cfg.Identity.DefaultRegion, logger)
	filesService := service.NewFiles(storageClient, profileRepo, logger)

	r := router.New(authService, profileService, filesService, provider, httpcontext.NewManager(), logger, router.Options{
		AppName:        cfg.AppName,
		MailSender:     cfg.SMTP.From,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		Details:        !cfg.IsProduction(),
	})
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
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	wg.Wait()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("error during telemetry shutdown", "error", err)
	}
	logger.Info("shutdown complete")
}

func newMailSender(cfg *config.Config, logger *logger.Logger) model.MailSender {
	if cfg.SMTP.Host == "" {
		logger.Warn("SMTP host not set, verification emails are disabled")
		return mail.Disabled{}
	}

	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.AppName,
	})
	if err != nil {
		logger.Fatal("failed to initialize mail sender", "error", err)
	}
	return sender
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
