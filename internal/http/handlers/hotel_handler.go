// README: Mocked hotel listing, booking and payment handlers.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/modules/hotels"
)

type HotelService interface {
	List(location string) []hotels.Hotel
	Availability(ctx context.Context, hotelID string) ([]hotels.RoomAvailability, error)
	Book(ctx context.Context, cmd hotels.BookCommand) (hotels.Booking, error)
	Pay(ctx context.Context, cmd hotels.PayCommand) (hotels.Booking, error)
}

type HotelHandler struct {
	hotels HotelService
}

func NewHotelHandler(svc HotelService) *HotelHandler {
	return &HotelHandler{hotels: svc}
}

// List handles GET /api/hotels?location=.
func (h *HotelHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"hotels": h.hotels.List(c.Query("location"))})
}

// Availability handles GET /api/hotels/:id/availability.
func (h *HotelHandler) Availability(c *gin.Context) {
	rooms, err := h.hotels.Availability(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeHotelError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"hotelId": c.Param("id"), "rooms": rooms})
}

// Book handles POST /api/hotels/:id/book.
func (h *HotelHandler) Book(c *gin.Context) {
	var cmd hotels.BookCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd.HotelID = c.Param("id")
	booking, err := h.hotels.Book(c.Request.Context(), cmd)
	if err != nil {
		writeHotelError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, booking)
}

// Pay handles POST /api/bookings/:id/pay.
func (h *HotelHandler) Pay(c *gin.Context) {
	var cmd hotels.PayCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd.BookingID = c.Param("id")
	booking, err := h.hotels.Pay(c.Request.Context(), cmd)
	if err != nil {
		writeHotelError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, booking)
}
