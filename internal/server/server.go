package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shoe-storefront/internal/checkout"
	"shoe-storefront/internal/config"
	"shoe-storefront/internal/database"
	"shoe-storefront/internal/domain"
	custommiddleware "shoe-storefront/internal/middleware"
	"shoe-storefront/internal/repository"
	"shoe-storefront/internal/service"
	"shoe-storefront/internal/storage"
	"shoe-storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EventPublisher publishes order events and releases its broker connection on Close
type EventPublisher interface {
	checkout.Publisher
	Close() error
}

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	db        database.Service
	redis     *redis.Client
	publisher EventPublisher
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client, publisher EventPublisher) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		publisher: publisher,
	}

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      s.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	cfg := s.config
	logger := s.logger

	router := chi.NewRouter()
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, !cfg.IsProduction()))

	router.Get("/health", s.health)

	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.SessionMiddleware(cfg.Storefront.SessionTTL(), cfg.IsProduction(), logger))
		r.Use(custommiddleware.RateLimitMiddleware(s.redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "storefront:ratelimit",
		}, logger))

		// Repositories
		userRepo := repository.NewUserRepository(s.db.DB())
		refreshTokenRepo := repository.NewRefreshTokenRepository(s.db.DB())
		productRepo := repository.NewProductRepository(s.db.DB())
		orderRepo := repository.NewOrderRepository(s.db.DB())

		records := storage.NewRedisStore(s.redis, cfg.Storefront.SessionTTL())

		// Services
		identity := service.NewIdentityService(userRepo, refreshTokenRepo, service.TokenConfig{
			Secret:        cfg.JWT.Secret,
			AccessExpiry:  time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
			RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiry) * 24 * time.Hour,
		})
		catalogSvc := service.NewCatalogService(productRepo, service.CatalogSettings{
			PageSize:     cfg.Storefront.PageSize,
			SearchLimit:  cfg.Storefront.SearchLimit,
			DefaultPrice: domain.PriceRange{Min: cfg.Storefront.PriceMin, Max: cfg.Storefront.PriceMax},
		}, logger)
		adminSvc := service.NewAdminService(productRepo, orderRepo, logger)
		checkoutSvc := checkout.NewService(orderRepo, s.publisher, logger)

		authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
		adminMiddleware := custommiddleware.RequireAdmin(logger)

		transport.NewUserHandler(identity, adminSvc, logger).RegisterRoutes(r, authMiddleware)
		transport.NewProductHandler(catalogSvc, records, cfg.Storefront.RecentMax, logger).RegisterRoutes(r)
		transport.NewCartHandler(catalogSvc, records, logger).RegisterRoutes(r)
		transport.NewShelfHandler(catalogSvc, records, cfg.Storefront.RecentMax, logger).RegisterRoutes(r)
		transport.NewCheckoutHandler(checkoutSvc, records, logger).RegisterRoutes(r)
		transport.NewAdminHandler(catalogSvc, adminSvc, logger).RegisterRoutes(r, authMiddleware, adminMiddleware)
	})

	return router
}

// health reports the database and Redis. Either being down answers 503.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbHealth := s.db.Health(ctx)
	redisStatus := "up"
	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.logger.Error("Redis health check failed", zap.Error(err))
		redisStatus = "down"
	}

	status, code := "ok", http.StatusOK
	if dbHealth["status"] != "up" || redisStatus != "up" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	custommiddleware.RespondWithJSON(w, code, map[string]interface{}{
		"status":   status,
		"database": dbHealth,
		"redis":    redisStatus,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
