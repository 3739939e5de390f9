package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the /api/v1 groups.
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware())

	measurements := v1.Group("/measurements")
	{
		measurements.GET("", s.handleV1ListMeasurements)
		measurements.GET("/:id", s.handleV1GetMeasurement)
	}

	stations := v1.Group("/stations")
	{
		stations.GET("/:node_id/buckets", s.handleV1StationBuckets)
	}

	realtime := v1.Group("/realtime")
	{
		realtime.GET("/now", s.handleV1RealtimeNow)
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
