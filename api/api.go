// Package api exposes the consumer's aggregate snapshots over HTTP, the
// headless replacement for the original live chart.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wkarto/buzzline-04-karto/internal/sink"
)

const (
	defaultRecentLimit = 50
	// maxRecentLimit caps client-supplied page sizes; larger requests
	// are clamped rather than rejected.
	maxRecentLimit = 500
)

// CreateRestAPI registers the snapshot routes. The store may be nil when
// snapshot persistence is disabled.
func CreateRestAPI(router *gin.Engine, latest *sink.LatestSink, store *sink.StoreSink) {

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/snapshots/latest", func(c *gin.Context) {
		snapshot, ok := latest.Latest()
		if !ok {
			c.String(http.StatusNotFound, "no snapshot yet")
			return
		}
		c.JSON(http.StatusOK, snapshot)
	})

	router.GET("/snapshots", func(c *gin.Context) {
		if store == nil {
			c.String(http.StatusNotFound, "snapshot store disabled")
			return
		}

		limit := defaultRecentLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.String(http.StatusBadRequest, "invalid limit")
				return
			}
			if parsed > maxRecentLimit {
				parsed = maxRecentLimit
			}
			limit = parsed
		}

		snapshots, err := store.Recent(limit)
		if err != nil {
			zap.S().Errorw("could not read snapshots", "module", "api", "error", err)
			c.String(http.StatusInternalServerError, "snapshot store unavailable")
			return
		}
		c.JSON(http.StatusOK, snapshots)
	})
}
