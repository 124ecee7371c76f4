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

	"github.com/gin-gonic/gin"

	"github.com/quillworks/blog-service/internal/cache"
	"github.com/quillworks/blog-service/internal/config"
	"github.com/quillworks/blog-service/internal/domain"
	"github.com/quillworks/blog-service/internal/handler"
	"github.com/quillworks/blog-service/internal/repository"
	"github.com/quillworks/blog-service/internal/service"
	"github.com/quillworks/blog-service/pkg/database"
	"github.com/quillworks/blog-service/pkg/jwt"
	pkglog "github.com/quillworks/blog-service/pkg/log"
	"github.com/quillworks/blog-service/pkg/middleware"
	"github.com/quillworks/blog-service/pkg/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLogger := pkglog.L()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	// 2. Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "blog-service",
	})
	logger := pkglog.L()

	if cfg.Auth.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be configured")
	}

	// 3. Init DB and migrate the entity store
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to get underlying sql.DB")
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db,
		&domain.AuthorModel{},
		&domain.GroupModel{},
		&domain.PostModel{},
		&domain.CommentModel{},
		&domain.FollowModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// 4. Init the feed result cache (redis when configured, memory otherwise)
	var feedCache cache.FeedCache
	if cfg.Redis.Address != "" {
		redisCache, err := cache.NewRedisFeedCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		feedCache = redisCache
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis feed cache connected")
	} else {
		feedCache = cache.NewMemoryFeedCache()
		logger.Warn().Msg("REDIS_ADDRESS not configured; feed cache is in-process only")
	}
	defer feedCache.Close()

	// 5. Init image storage
	var store storage.Storage
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Storage(context.Background(), cfg.Storage.S3)
	default:
		store, err = storage.NewLocalStorage(cfg.Storage.Local)
	}
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to init storage")
	}

	// 6. Create repos and services
	authorRepo := repository.NewGormAuthorRepository(db)
	groupRepo := repository.NewGormGroupRepository(db)
	postRepo := repository.NewGormPostRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	followRepo := repository.NewGormFollowRepository(db)

	feedSvc := service.NewFeedService(postRepo, groupRepo, authorRepo, followRepo,
		feedCache, cfg.Feed.PageSize, cfg.Feed.CacheTTL)
	postSvc := service.NewPostService(postRepo, commentRepo, authorRepo, store)
	followSvc := service.NewFollowService(authorRepo, followRepo)

	// 7. Auth middleware validating tokens from the identity provider
	tokens := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	authMiddleware := middleware.NewAuthMiddleware(tokens, cfg.Auth.SignInURL)

	// 8. Setup Gin router + HTTP server
	httpHandler := handler.NewHandler(feedSvc, postSvc, followSvc, store, authMiddleware)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("blog-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// 9. Wait for shutdown signal, then drain
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}

	logger.Info().Msg("blog-service stopped")
}
