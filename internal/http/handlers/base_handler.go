// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/modules/hotels"
	"tripcraft/internal/modules/planning"
	"tripcraft/internal/modules/trips"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func internalError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writePlanningError(c *gin.Context, err error, providerMsg string) {
	var verr *planning.ValidationError
	var perr *planning.ProviderError
	switch {
	case errors.As(err, &verr):
		writeError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &perr):
		writeError(c, http.StatusInternalServerError, providerMsg)
	default:
		internalError(c, err)
	}
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trips.ErrNotFound):
		writeError(c, http.StatusNotFound, "trip not found")
	case errors.Is(err, trips.ErrForbidden):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, trips.ErrMissingOwner), errors.Is(err, trips.ErrEmptyPlan):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		internalError(c, err)
	}
}

func writeHotelError(c *gin.Context, err error) {
	var invalid *hotels.InvalidRequestError
	switch {
	case errors.As(err, &invalid):
		writeError(c, http.StatusBadRequest, invalid.Error())
	case errors.Is(err, hotels.ErrUnknownHotel), errors.Is(err, hotels.ErrUnknownRoomType), errors.Is(err, hotels.ErrBookingNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, hotels.ErrSoldOut), errors.Is(err, hotels.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, hotels.ErrPaymentDeclined):
		writeError(c, http.StatusPaymentRequired, err.Error())
	default:
		internalError(c, err)
	}
}
