package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/cache"
	"socialhub_backend/internal/config"
	"socialhub_backend/internal/database"
	"socialhub_backend/internal/handler"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/model"
	"socialhub_backend/internal/redis"
	"socialhub_backend/internal/repository"
	"socialhub_backend/internal/service"
	"socialhub_backend/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitLogger(cfg.Env, cfg.LogLevel)
	log := logger.For("Server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing is optional
	if cfg.OtelEndpoint != "" {
		tp, err := telemetry.InitTracer(ctx, cfg.OtelEndpoint, cfg.Env, cfg.Version)
		if err != nil {
			log.WithError(err).Error("Failed to init tracer, continuing without traces")
		} else {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}
	}

	// 3. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 4. Session provider
	provider, closeProvider, err := newSessionProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeProvider()

	var authProxy stdhttp.Handler
	if cfg.AuthServiceURL != "" {
		authProxy, err = auth.NewProxy(cfg.AuthServiceURL)
		if err != nil {
			return fmt.Errorf("failed to create auth proxy: %w", err)
		}
	}

	// 5. Media storage is optional
	mediaService, err := service.NewMediaService(ctx, cfg)
	if errors.Is(err, model.ErrMediaDisabled) {
		log.Warn("R2 settings missing, media routes will answer 503")
	} else if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}

	// 6. Wire everything together
	docsUser, docsHash := cfg.DocsUsername, cfg.DocsPasswordHash
	docsPath := cfg.DocsPath
	if (docsUser == "" || docsHash == "") && !cfg.IsLocal() {
		log.Warn("DOCS_USERNAME or DOCS_PASSWORD_HASH missing, API docs UI disabled")
		docsPath = ""
	}

	routerCfg := newRouterConfig(db, mediaService, cfg)
	routerCfg.SessionProvider = provider
	routerCfg.AuthProxy = authProxy
	routerCfg.DocsPath = docsPath
	routerCfg.DocsUsername = docsUser
	routerCfg.DocsPasswordHash = docsHash

	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(NewRouter(routerCfg), telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.ServerPort).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("Server exited")
	return nil
}

// newSessionProvider picks the session provider for cfg.AuthMode. The remote
// provider uses Redis for caching when REDIS_URL is set.
func newSessionProvider(ctx context.Context, cfg *config.Config) (auth.Provider, func(), error) {
	log := logger.For("Server")
	noop := func() {}

	if cfg.AuthMode == config.AuthModeJWT {
		if cfg.AuthJWTSecret == "" {
			return nil, noop, errors.New("AUTH_JWT_SECRET is required when AUTH_MODE=jwt")
		}
		log.Info("Sessions verified locally with the shared JWT secret")
		return auth.NewJWTProvider(cfg.AuthJWTSecret), noop, nil
	}

	if cfg.AuthServiceURL == "" {
		return nil, noop, errors.New("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
	}

	var sessionCache cache.SessionCache
	closeFn := noop
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, session lookups will not be cached")
		} else {
			sessionCache = cache.NewSessionCache(client.Client)
			closeFn = func() { client.Close() }
		}
	}

	return auth.NewRemoteProvider(cfg.AuthServiceURL, sessionCache, cfg.SessionCacheTTL), closeFn, nil
}

func newRouterConfig(db *sqlx.DB, mediaService *service.MediaService, cfg *config.Config) RouterConfig {
	tx := repository.NewTransactor(db)
	profileRepo := repository.NewProfileRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	profileService := service.NewProfileService(profileRepo, followRepo)
	followService := service.NewFollowService(followRepo, profileRepo, tx)
	likeService := service.NewLikeService(likeRepo, postRepo, commentRepo, tx)
	postService := service.NewPostService(postRepo, profileRepo, tx)
	commentService := service.NewCommentService(commentRepo, postRepo)
	feedService := service.NewFeedService(postRepo, commentRepo, followRepo, profileRepo)

	return RouterConfig{
		ProfileHandler: handler.NewProfileHandler(profileService, mediaService),
		FollowHandler:  handler.NewFollowHandler(followService, feedService),
		PostHandler:    handler.NewPostHandler(postService, likeService, feedService),
		CommentHandler: handler.NewCommentHandler(commentService, likeService, feedService),
		MediaHandler:   handler.NewMediaHandler(mediaService),
		HealthHandler: handler.NewHealthHandler(cfg.Version, cfg.Env, func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
}
