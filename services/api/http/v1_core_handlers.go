package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/station-backfill/services/api/db"
)

// handleV1ListMeasurements returns measurements filtered by node, type and
// time range
// GET /api/v1/measurements?node_id=&type=&start=&end=&last_n=
func (s *Server) handleV1ListMeasurements(c *gin.Context) {
	limit := s.cfg.DefaultLimit
	if limitStr := c.Query("last_n"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_n"})
			return
		}
		limit = parsed
	}

	since, ok := parseTimeQuery(c, "start")
	if !ok {
		return
	}
	until, ok := parseTimeQuery(c, "end")
	if !ok {
		return
	}
	if since != nil && until != nil && until.Before(*since) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end is before start"})
		return
	}

	q := db.MeasurementQuery{
		NodeID: c.Query("node_id"),
		Type:   c.Query("type"),
		Limit:  limit,
		Since:  since,
		Until:  until,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	measurements, err := s.store.FetchMeasurements(ctx, q)
	if err != nil {
		s.logger.Error("fetch measurements failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": measurements,
		"meta": gin.H{
			"count":   len(measurements),
			"node_id": q.NodeID,
			"type":    q.Type,
			"limit":   limit,
		},
	})
}

// handleV1GetMeasurement returns a single measurement
// GET /api/v1/measurements/:id
func (s *Server) handleV1GetMeasurement(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measurement id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	measurement, err := s.store.GetMeasurement(ctx, id)
	if err != nil {
		s.logger.Error("get measurement failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if measurement == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": measurement,
	})
}

// parseTimeQuery reads an optional RFC 3339 query parameter. On a bad value
// it writes the 400 response and returns ok=false.
func parseTimeQuery(c *gin.Context, key string) (*time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + " timestamp"})
		return nil, false
	}
	t = t.UTC()
	return &t, true
}
