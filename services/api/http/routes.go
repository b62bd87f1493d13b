package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/observations", s.handleObservations)
		api.GET("/stats", s.handleStats)
		api.GET("/outliers", s.handleOutliers)
		api.GET("/report", s.handleReport)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})
}
