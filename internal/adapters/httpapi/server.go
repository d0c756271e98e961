package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"troffee-marketplace-service/internal/adapters/ws"
	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server is the HTTP server exposing the marketplace API
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config          *config.Config
	ProductService  inbound.ProductService
	ReviewService   inbound.ReviewService
	BookmarkService inbound.BookmarkService
	OfferService    inbound.OfferService
	Verifier        outbound.TokenVerifier
	FileStore       outbound.FileStore
	Broadcaster     outbound.Broadcaster
	Logger          zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	cfg := params.Config
	logger := params.Logger.With().Str("component", "http_server").Logger()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	products := NewProductHandler(params.ProductService, params.Logger)
	reviews := NewReviewHandler(params.ReviewService, params.Logger)
	bookmarks := NewBookmarkHandler(params.BookmarkService, params.Logger)
	offers := NewOfferHandler(params.OfferService, params.Logger)
	uploads := NewUploadHandler(UploadHandlerParams{
		Store:       params.FileStore,
		MaxFiles:    cfg.Upload.MaxFiles,
		MaxFileSize: cfg.Upload.MaxFileSize,
		Logger:      params.Logger,
	})

	wsHandler := ws.NewHandler(ws.WsHandlerParams{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == cfg.Server.AllowedOrigin
			},
		},
		Verifier:    params.Verifier,
		Broadcaster: params.Broadcaster,
		Logger:      params.Logger,
	})

	requireAuth := RequireAuth(params.Verifier, params.Logger)
	optionalAuth := OptionalAuth(params.Verifier, params.Logger)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.Static("/uploads", cfg.Upload.Dir)

	engine.POST("/products", requireAuth, products.Create)
	engine.GET("/products", optionalAuth, products.List)
	engine.GET("/products/:id", optionalAuth, products.Get)
	engine.PUT("/products/:id", requireAuth, products.Update)
	engine.DELETE("/products/:id", requireAuth, products.Delete)
	engine.GET("/me/products", requireAuth, products.MyProducts)

	engine.POST("/reviews", requireAuth, reviews.Create)
	engine.GET("/reviews", reviews.List)

	engine.POST("/bookmarks", requireAuth, bookmarks.Create)
	engine.GET("/bookmarks", requireAuth, bookmarks.List)
	engine.GET("/bookmarks/status", requireAuth, bookmarks.Status)
	engine.DELETE("/bookmarks/:id", requireAuth, bookmarks.Delete)

	engine.POST("/offers", requireAuth, offers.Create)
	engine.GET("/offers", requireAuth, offers.List)
	engine.PATCH("/offers/:id", requireAuth, offers.Decide)

	engine.POST("/upload", requireAuth, uploads.Create)

	engine.GET("/ws", func(c *gin.Context) {
		wsHandler.HandleWebSocket(c.Writer, c.Request)
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Minute,
	}

	return &Server{
		engine:     engine,
		httpServer: httpServer,
		config:     cfg,
		logger:     logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Engine exposes the router for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
