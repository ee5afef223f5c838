// README: Image analysis forwarding handler.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/modules/vision"
)

type ImageAnalyzer interface {
	Analyze(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, error)
}

type ImageHandler struct {
	analyzer ImageAnalyzer
	maxBytes int64
}

func NewImageHandler(analyzer ImageAnalyzer, maxBytes int64) *ImageHandler {
	return &ImageHandler{analyzer: analyzer, maxBytes: maxBytes}
}

// Analyze handles POST /api/analyze-image. The upstream error body is logged, never returned.
func (h *ImageHandler) Analyze(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	out, err := h.analyzer.Analyze(c.Request.Context(), c.GetHeader("Content-Type"), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		var upErr *vision.UpstreamError
		if errors.As(err, &upErr) {
			slog.ErrorContext(c.Request.Context(), "image analysis failed",
				"status", upErr.StatusCode, "upstream_body", upErr.Body, "error", err)
		}
		writeError(c, http.StatusInternalServerError, "image analysis failed")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
