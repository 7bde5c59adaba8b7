package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/homework-helper-api/internal/config"
	"github.com/nulzo/homework-helper-api/internal/gateway"
	"github.com/nulzo/homework-helper-api/internal/server/middleware"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	service gateway.Service
}

func New(cfg *config.Config, logger *zap.Logger, service gateway.Service) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.Logger(logger))

	s := &Server{
		router:  engine,
		service: service,
		logger:  logger,
		config:  cfg,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
