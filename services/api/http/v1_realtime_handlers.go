package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleV1RealtimeNow returns the latest measurement of every node
// GET /api/v1/realtime/now
func (s *Server) handleV1RealtimeNow(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	latest, err := s.store.LatestPerNode(ctx)
	if err != nil {
		s.logger.Error("latest measurements failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(latest) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no measurements available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": latest,
		"meta": gin.H{
			"nodes_count":  len(latest),
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
