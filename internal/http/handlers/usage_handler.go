package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/modules/aiusage"
)

type UsageReporter interface {
	Summary(ctx context.Context, window time.Duration) (aiusage.Summary, error)
}

type UsageHandler struct {
	usage UsageReporter
}

func NewUsageHandler(usage UsageReporter) *UsageHandler {
	return &UsageHandler{usage: usage}
}

// Summary handles GET /api/ai/usage?window=24h. Without a window all entries are counted.
func (h *UsageHandler) Summary(c *gin.Context) {
	var window time.Duration
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			writeError(c, http.StatusBadRequest, "window must be a positive duration like 24h")
			return
		}
		window = d
	}
	sum, err := h.usage.Summary(c.Request.Context(), window)
	if err != nil {
		internalError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sum)
}
