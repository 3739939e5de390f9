package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/station-backfill/services/api/db"
)

// handleV1StationBuckets returns one bucket per slot of the requested range
// GET /api/v1/stations/:node_id/buckets?dateFrom=&dateTo=&type=
func (s *Server) handleV1StationBuckets(c *gin.Context) {
	nodeID := c.Param("node_id")

	from, ok := parseTimeQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "dateTo")
	if !ok {
		return
	}
	if from == nil || to == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateFrom and dateTo are required"})
		return
	}
	if to.Before(*from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo is before dateFrom"})
		return
	}

	granularity := c.DefaultQuery("type", "hour")
	starts, err := bucketStarts(granularity, *from, *to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	measurements, err := s.store.FetchMeasurements(ctx, db.MeasurementQuery{
		NodeID: nodeID,
		Type:   granularity,
		Since:  from,
		Until:  to,
	})
	if err != nil {
		s.logger.Error("fetch buckets failed", "node_id", nodeID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	buckets := fillBuckets(starts, measurements)
	c.JSON(http.StatusOK, gin.H{
		"data": buckets,
		"meta": gin.H{
			"node_id":   nodeID,
			"type":      granularity,
			"count":     len(buckets),
			"date_from": from.Format(time.RFC3339),
			"date_to":   to.Format(time.RFC3339),
		},
	})
}
