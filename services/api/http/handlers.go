package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/Shizuku-water-quality/services/api/query"
)

// handleHealth reports liveness regardless of dataset state.
// GET /api/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/observations
func (s *Server) handleObservations(c *gin.Context) {
	page, err := s.queries.Observations(query.ParamsFromValues(c.Request.URL.Query()))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/stats
func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.queries.Stats()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/outliers
func (s *Server) handleOutliers(c *gin.Context) {
	res, err := s.queries.Outliers(query.ParamsFromValues(c.Request.URL.Query()))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleReport returns the cleaning report of the loaded dataset.
// GET /api/report
func (s *Server) handleReport(c *gin.Context) {
	report, err := s.queries.Report()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) writeError(c *gin.Context, err *query.Error) {
	status := http.StatusInternalServerError
	switch err.Kind {
	case query.KindValidation:
		status = http.StatusBadRequest
	case query.KindUnavailable:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("request_id", c.GetString(requestIDHeader)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}
	c.JSON(status, gin.H{"error": err.Message})
}
