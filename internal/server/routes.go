package server

import (
	"github.com/nulzo/homework-helper-api/internal/server/middleware"
	v1 "github.com/nulzo/homework-helper-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	// 1. Global Middleware
	s.router.Use(middleware.CORS(s.config.CORS.AllowedOrigins))
	s.router.Use(middleware.Tracing("homework-helper"))
	s.router.Use(middleware.ErrorHandler())

	// 2. Public surface
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/", healthHandler.Root)
	s.router.GET("/health", healthHandler.Health)

	loginHandler := v1.NewLoginHandler(s.config.Auth)
	s.router.POST("/login", loginHandler.Login)

	// 3. Dispatch + operator surface, optionally behind the fixed-credential gate
	homeworkHandler := v1.NewHomeworkHandler(s.service)
	historyHandler := v1.NewHistoryHandler(s.service)

	protected := s.router.Group("/")
	if s.config.Auth.Required {
		protected.Use(middleware.BasicAuth(s.config.Auth.Username, s.config.Auth.Password))
	}
	{
		protected.POST("/process_homework", homeworkHandler.Process)
		// legacy alias kept for older frontend builds
		protected.POST("/api/helper", homeworkHandler.Process)

		protected.GET("/v1/requests/recent", historyHandler.Recent)
		protected.GET("/v1/requests/stats", historyHandler.Stats)
	}
}
