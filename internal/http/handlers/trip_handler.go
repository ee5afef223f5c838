// README: Saved trip handlers; require an authenticated caller.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/http/middleware"
	"tripcraft/internal/modules/trips"
)

type TripService interface {
	Save(ctx context.Context, email string, selection, plan map[string]any) (trips.Trip, error)
	Get(ctx context.Context, id string) (trips.Trip, error)
	ListByUser(ctx context.Context, email string) ([]trips.Trip, error)
}

type TripHandler struct {
	trips TripService
}

func NewTripHandler(svc TripService) *TripHandler {
	return &TripHandler{trips: svc}
}

type saveTripReq struct {
	UserSelection map[string]any `json:"userSelection"`
	TripData      map[string]any `json:"tripData"`
}

// Save handles POST /api/trips.
func (h *TripHandler) Save(c *gin.Context) {
	var req saveTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	trip, err := h.trips.Save(c.Request.Context(), middleware.CallerEmail(c), req.UserSelection, req.TripData)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, trip)
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trip)
}

// List handles GET /api/trips and returns the caller's trips.
func (h *TripHandler) List(c *gin.Context) {
	list, err := h.trips.ListByUser(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": list})
}
