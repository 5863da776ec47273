package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propertywala/internal/auth"
	"propertywala/internal/cache"
	"propertywala/internal/config"
	apphttp "propertywala/internal/http"
	"propertywala/internal/mail"
	"propertywala/internal/repository/sqlite"
	"propertywala/internal/service"
	"propertywala/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		logger.Fatalf("auth secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	propertyRepo := sqlite.NewPropertyRepository(db)
	blogRepo := sqlite.NewBlogRepository(db)
	subscriberRepo := sqlite.NewSubscriberRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := propertyRepo.Init(ctx); err != nil {
		logger.Fatalf("init property repository: %v", err)
	}
	if err := blogRepo.Init(ctx); err != nil {
		logger.Fatalf("init blog repository: %v", err)
	}
	if err := subscriberRepo.Init(ctx); err != nil {
		logger.Fatalf("init subscriber repository: %v", err)
	}

	tokenTTL := time.Duration(cfg.Auth.TokenTTLDays) * 24 * time.Hour
	cacheTTL := time.Duration(cfg.Auth.CacheTTLSeconds) * time.Second

	issuer := auth.NewIssuer([]byte(cfg.Auth.Secret), tokenTTL)

	sessions := cache.NewMemory()
	sessions.StartSweeper(time.Minute, ctx.Done())

	sessionService := service.NewSessionService(userRepo, issuer, sessions, cacheTTL)
	userService := service.NewUserService(userRepo, sessions, cacheTTL)
	propertyService := service.NewPropertyService(propertyRepo, userRepo)
	blogService := service.NewBlogService(blogRepo)

	sender := mail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
	dispatcher := mail.NewDispatcher(sender, cfg.SMTP.MaxConcurrent, logger)
	mailService := service.NewMailService(subscriberRepo, userRepo, dispatcher, logger)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		sessionService,
		userService,
		propertyService,
		blogService,
		mailService,
		storageSvc,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Infof("using local storage dir %s", cfg.Storage.LocalDir)
		return storage.NewLocalService(cfg.Storage.LocalDir)
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.KeyPrefix), nil
}
