package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelops/demand-forecaster/api/handlers"
	"github.com/hotelops/demand-forecaster/api/middleware"
	"github.com/hotelops/demand-forecaster/api/websocket"
	"github.com/hotelops/demand-forecaster/internal/auth"
	"github.com/hotelops/demand-forecaster/internal/events"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/pkg/config"
	"github.com/hotelops/demand-forecaster/pkg/database"
	"github.com/hotelops/demand-forecaster/pkg/database/queries"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.Config
	db          *database.DB
	service     *forecaster.Service
	authService *auth.Service
	wsHub       *websocket.Hub
	wsBridge    *websocket.EventBridge
}

func NewServer(cfg config.Config, db *database.DB, service *forecaster.Service, bus *events.EventBus) *Server {
	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	authService := auth.NewService(cfg.API.JWTSecret, cfg.API.JWTDuration)
	wsHub := websocket.NewHub(cfg.WebSocket.BroadcastBuffer)

	s := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		service:     service,
		authService: authService,
		wsHub:       wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	if bus != nil {
		s.wsBridge = websocket.NewEventBridge(wsHub, bus.SubscribeAll())
		s.wsBridge.Start()
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.CORS(s.corsConfig()))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.TraceID())

	rateLimiter := middleware.NewRateLimiter(s.config.API.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

func (s *Server) corsConfig() middleware.CORSConfig {
	cors := s.config.API.CORS
	if len(cors.AllowedOrigins) == 0 {
		return middleware.DefaultCORSConfig()
	}
	cfg := middleware.CORSConfig{
		AllowOrigins:     cors.AllowedOrigins,
		AllowMethods:     cors.AllowedMethods,
		AllowHeaders:     cors.AllowedHeaders,
		ExposeHeaders:    cors.ExposedHeaders,
		AllowCredentials: cors.AllowCredentials,
	}
	defaults := middleware.DefaultCORSConfig()
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = defaults.AllowMethods
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = defaults.AllowHeaders
	}
	if len(cfg.ExposeHeaders) == 0 {
		cfg.ExposeHeaders = defaults.ExposeHeaders
	}
	return cfg
}

func (s *Server) setupRoutes() {
	var userRepo *queries.UserRepository
	var predictionRepo *queries.PredictionRepository
	if s.db != nil {
		userRepo = queries.NewUserRepository(s.db.DB)
		predictionRepo = queries.NewPredictionRepository(s.db.DB)
	}

	healthHandler := handlers.NewHealthHandler(s.db, s.service)
	authHandler := handlers.NewAuthHandler(userRepo, s.authService)
	predictHandler := handlers.NewPredictHandler(s.service, predictionRepo)
	modelHandler := handlers.NewModelHandler(s.service, predictionRepo)

	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	s.router.POST("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/predict/checkins", predictHandler.Checkins)
		v1.GET("/predict/demand", predictHandler.Demand)
	}

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(s.authService))
	{
		protected.GET("/models", modelHandler.List)
		protected.POST("/models/:name/reload", modelHandler.Reload)
		protected.GET("/predictions", modelHandler.Predictions)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.API.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  s.config.API.IdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
