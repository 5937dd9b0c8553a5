package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"quill/internal/config"
	"quill/internal/handler"
	authHandler "quill/internal/handler/auth"
	blogHandler "quill/internal/handler/blog"
	"quill/internal/model/auth"
	"quill/internal/pkg/cache"
	"quill/internal/pkg/mongodb"
	"quill/internal/pkg/storage"
	"quill/internal/pkg/storage/local"
	"quill/internal/pkg/storagefactory"
	authRepo "quill/internal/repository/auth"
	blogRepo "quill/internal/repository/blog"
	"quill/internal/server/middleware"
	"quill/internal/service"
)

// Server is the HTTP server and its process-wide dependencies
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New wires the server: store connections, repositories, services,
// routes
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// MongoDB is the system of record and required
	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// Redis backs the query cache; the API degrades to pass-through
	// without it
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without query cache")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// Avatar storage is optional; uploads fail with 503 without it
	var avatarStorage storage.Storage
	if cfg.Storage.Type != "" {
		st, err := storagefactory.NewStorage(&cfg.Storage)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize storage, avatar uploads disabled")
		} else {
			avatarStorage = st
			log.Info().Str("type", st.Type()).Msg("initialized avatar storage")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	srv.setupRoutes(avatarStorage)

	return srv, nil
}

// setupRoutes registers middleware and the API routes
func (s *Server) setupRoutes(avatarStorage storage.Storage) {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored avatars are served as static files
	if ls, ok := avatarStorage.(*local.LocalStorage); ok {
		s.engine.Static("/uploads", ls.BasePath())
	}

	db := s.mongo.Database()
	userRepo := authRepo.NewUserRepo(db)
	blogsRepo := blogRepo.NewBlogRepo(db)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	tokenExpiry := s.cfg.Auth.TokenExpiry
	if tokenExpiry == 0 {
		tokenExpiry = 7 * 24 * time.Hour
	}

	authSvc := service.NewAuthService(userRepo, jwtSecret, tokenExpiry, avatarStorage)
	blogSvc := service.NewBlogService(blogsRepo, userRepo, s.redis)

	authHdl := authHandler.NewHandler(authSvc)
	blogHdl := blogHandler.NewHandler(blogSvc)

	requireAuth := middleware.Auth(authSvc.TokenUtil())

	api := s.engine.Group("/api")
	{
		// Auth endpoints
		api.POST("/auth/register", authHdl.Register)
		api.POST("/auth/login", authHdl.Login)
		api.GET("/auth/me", requireAuth, authHdl.GetMe)
		api.PUT("/auth/profile", requireAuth, authHdl.UpdateProfile)
		api.POST("/auth/change-password", requireAuth, authHdl.ChangePassword)
		api.POST("/auth/avatar", requireAuth, authHdl.UploadAvatar)

		// Blog endpoints. The list and detail reads are public.
		api.GET("/blogs", blogHdl.List)
		api.GET("/blogs/user/:userId", blogHdl.ListByUser)
		api.GET("/blogs/my/posts", requireAuth, blogHdl.ListMine)
		api.GET("/blogs/:id", blogHdl.Get)
		api.POST("/blogs", requireAuth,
			middleware.RequireRoles(string(auth.RoleAuthor), string(auth.RoleAdmin)),
			blogHdl.Create)
		api.PUT("/blogs/:id", requireAuth, blogHdl.Update)
		api.DELETE("/blogs/:id", requireAuth, blogHdl.Delete)
		// Readers are barred from liking
		api.POST("/blogs/:id/like", requireAuth,
			middleware.RejectRoles(string(auth.RoleReader)),
			blogHdl.ToggleLike)
	}
}

// Run starts the server and blocks until ctx is cancelled or the
// listener fails
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the gin engine for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
