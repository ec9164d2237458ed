package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	log    *log.Logger
}

// Init connects to the store, applies migrations and wires the HTTP routes.
func Init(cfg *config.Config, logger *log.Logger) (*Server, error) {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.WithField("driver", cfg.DBDriver).Info("Connected to database")

	if err := database.Migrate(db, cfg); err != nil {
		return nil, err
	}
	logger.Info("Database schema is up to date")

	gin.SetMode(cfg.GinMode)
	engine, err := NewEngine(db, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: engine,
		DB:     db,
		Config: cfg,
		log:    logger,
	}, nil
}

// NewEngine builds the gin engine with middleware and every route on top of db.
func NewEngine(db *gorm.DB, cfg *config.Config, logger log.FieldLogger) (*gin.Engine, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	handler.RegisterValidation()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}))
	}

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Initialize services
	boardService := service.NewBoardService(boardRepo, logger)
	columnService := service.NewColumnService(columnRepo, logger)
	cardService := service.NewCardService(cardRepo, logger)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(sqlDB)
	boardHandler := handler.NewBoardHandler(boardService, columnService)
	columnHandler := handler.NewColumnHandler(columnService, cardService)
	cardHandler := handler.NewCardHandler(cardService)

	r.GET("/health", healthHandler.Check)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// Board routes
		api.GET("/boards", boardHandler.GetAll)
		api.POST("/boards", boardHandler.Create)
		api.GET("/boards/:id", boardHandler.GetByID)
		api.PUT("/boards/:id", boardHandler.Update)
		api.DELETE("/boards/:id", boardHandler.Delete)
		api.GET("/boards/:id/columns", boardHandler.GetColumns)

		// Column routes
		api.GET("/columns", columnHandler.GetAll)
		api.POST("/columns", columnHandler.Create)
		api.GET("/columns/:id", columnHandler.GetByID)
		api.PUT("/columns/:id", columnHandler.Update)
		api.DELETE("/columns/:id", columnHandler.Delete)
		api.GET("/columns/:id/cards", columnHandler.GetCards)

		// Card routes
		api.GET("/cards", cardHandler.GetAll)
		api.POST("/cards", cardHandler.Create)
		api.GET("/cards/:id", cardHandler.GetByID)
		api.PUT("/cards/:id", cardHandler.Update)
		api.PUT("/cards/:id/move", cardHandler.Move)
		api.DELETE("/cards/:id", cardHandler.Delete)
	}

	return r, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.log.WithField("port", s.Config.ServerPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Fatal("Failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.log.WithError(err).Fatal("Server forced to shutdown")
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.log.Info("Server exited properly")
}
