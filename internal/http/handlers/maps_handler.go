// README: Place photo lookup and route estimate handlers (Google Maps).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/maps"
)

type PlaceSearcher interface {
	SearchPhotos(ctx context.Context, query string) ([]maps.Place, error)
}

type RouteEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination, mode string) (maps.TravelEstimate, error)
}

type MapsHandler struct {
	places PlaceSearcher
	routes RouteEstimator
}

func NewMapsHandler(places PlaceSearcher, routes RouteEstimator) *MapsHandler {
	return &MapsHandler{places: places, routes: routes}
}

// Photos handles GET /api/places/photos?query=.
func (h *MapsHandler) Photos(c *gin.Context) {
	places, err := h.places.SearchPhotos(c.Request.Context(), c.Query("query"))
	if errors.Is(err, maps.ErrEmptyQuery) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}

// Estimate handles GET /api/routes/estimate?origin=&destination=&mode=.
func (h *MapsHandler) Estimate(c *gin.Context) {
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))
	if origin == "" || destination == "" {
		writeError(c, http.StatusBadRequest, "origin and destination are required")
		return
	}
	est, err := h.routes.GetTravelEstimate(c.Request.Context(), origin, destination, c.Query("mode"))
	switch {
	case errors.Is(err, maps.ErrInvalidMode):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, maps.ErrNoRoute):
		writeError(c, http.StatusNotFound, err.Error())
	case err != nil:
		internalError(c, err)
	default:
		writeJSON(c, http.StatusOK, est)
	}
}
