// README: Hotel catalog, room inventory and booking aggregate with status definitions.
package hotels

import (
	"errors"
	"time"

	"tripcraft/internal/types"
)

var (
	ErrUnknownHotel      = errors.New("unknown hotel")
	ErrUnknownRoomType   = errors.New("unknown room type")
	ErrSoldOut           = errors.New("no rooms available")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrPaymentDeclined   = errors.New("payment declined")
)

// InvalidRequestError reports a malformed booking or payment command.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

type RoomType struct {
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	Nightly types.Money `json:"nightly"`
	Total   int         `json:"total"`
}

type Hotel struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
	Address  string     `json:"address"`
	Rating   float64    `json:"rating"`
	Rooms    []RoomType `json:"rooms"`
}

// Room returns the room type with the given code.
func (h Hotel) Room(code string) (RoomType, bool) {
	for _, r := range h.Rooms {
		if r.Code == code {
			return r, true
		}
	}
	return RoomType{}, false
}

type RoomAvailability struct {
	RoomType  RoomType `json:"roomType"`
	Available int      `json:"available"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// AllowedTransitions represents the booking state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            string      `json:"id"`
	HotelID       string      `json:"hotelId"`
	RoomType      string      `json:"roomType"`
	GuestName     string      `json:"guestName"`
	GuestEmail    string      `json:"guestEmail"`
	CheckIn       string      `json:"checkIn"`
	Nights        int         `json:"nights"`
	Total         types.Money `json:"total"`
	Status        Status      `json:"status"`
	TransactionID string      `json:"transactionId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	PaidAt        *time.Time  `json:"paidAt,omitempty"`
}

// BookCommand carries the booking form.
type BookCommand struct {
	HotelID    string
	RoomType   string `json:"roomType"`
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	CheckIn    string `json:"checkIn"`
	Nights     int    `json:"nights"`
}

// PayCommand carries the mocked card payment.
type PayCommand struct {
	BookingID  string
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
}
