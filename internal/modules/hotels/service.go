// README: Mocked hotel booking and payment flow.
package hotels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"tripcraft/internal/modules/docstore"
)

// BookingCollection is the document store collection holding bookings.
const BookingCollection = "bookings"

const checkInLayout = "2006-01-02"

// MaxNights bounds a single booking.
const MaxNights = 365

type Service struct {
	catalog   *Catalog
	inventory Inventory
	store     docstore.Store
	newID     func() string
	now       func() time.Time
}

func NewService(catalog *Catalog, inventory Inventory, store docstore.Store) *Service {
	return &Service{
		catalog:   catalog,
		inventory: inventory,
		store:     store,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// List returns catalog hotels matching location.
func (s *Service) List(location string) []Hotel {
	return s.catalog.List(location)
}

// Availability reports remaining rooms for every room type of a hotel.
func (s *Service) Availability(ctx context.Context, hotelID string) ([]RoomAvailability, error) {
	h, ok := s.catalog.Hotel(hotelID)
	if !ok {
		return nil, ErrUnknownHotel
	}
	out := make([]RoomAvailability, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		n, err := s.inventory.Available(ctx, hotelID, r.Code)
		if err != nil {
			return nil, fmt.Errorf("availability %s/%s: %w", hotelID, r.Code, err)
		}
		out = append(out, RoomAvailability{RoomType: r, Available: n})
	}
	return out, nil
}

// Book reserves one room and records a pending booking.
func (s *Service) Book(ctx context.Context, cmd BookCommand) (Booking, error) {
	if err := validateBook(cmd); err != nil {
		return Booking{}, err
	}
	h, ok := s.catalog.Hotel(cmd.HotelID)
	if !ok {
		return Booking{}, ErrUnknownHotel
	}
	room, ok := h.Room(cmd.RoomType)
	if !ok {
		return Booking{}, ErrUnknownRoomType
	}

	res, err := s.inventory.Reserve(ctx, h.ID, room.Code)
	if err != nil {
		return Booking{}, err
	}

	b := Booking{
		ID:         s.newID(),
		HotelID:    h.ID,
		RoomType:   room.Code,
		GuestName:  strings.TrimSpace(cmd.GuestName),
		GuestEmail: strings.TrimSpace(cmd.GuestEmail),
		CheckIn:    cmd.CheckIn,
		Nights:     cmd.Nights,
		Total:      room.Nightly.Times(cmd.Nights),
		Status:     StatusPending,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.save(ctx, b); err != nil {
		if relErr := s.inventory.Release(ctx, h.ID, room.Code); relErr != nil {
			slog.ErrorContext(ctx, "release room after failed booking", "hotel_id", h.ID, "room_type", room.Code, "error", relErr)
		}
		return Booking{}, err
	}
	slog.InfoContext(ctx, "booking created", "booking_id", b.ID, "hotel_id", h.ID, "room_type", room.Code, "remaining", res.Remaining)
	return b, nil
}

// Pay runs the mock card check and marks a pending booking paid.
func (s *Service) Pay(ctx context.Context, cmd PayCommand) (Booking, error) {
	card := strings.ReplaceAll(strings.TrimSpace(cmd.CardNumber), " ", "")
	if strings.TrimSpace(cmd.CardHolder) == "" {
		return Booking{}, &InvalidRequestError{Reason: "cardHolder is required"}
	}
	if !validCardNumber(card) {
		return Booking{}, &InvalidRequestError{Reason: "cardNumber is invalid"}
	}

	b, err := s.Booking(ctx, cmd.BookingID)
	if err != nil {
		return Booking{}, err
	}
	if !CanTransition(b.Status, StatusPaid) {
		return Booking{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, StatusPaid)
	}
	if declinedCard(card) {
		return Booking{}, ErrPaymentDeclined
	}

	paidAt := s.now().UTC()
	from := b.Status
	b.Status = StatusPaid
	b.PaidAt = &paidAt
	b.TransactionID = "txn_" + s.newID()
	doc, err := bookingDocument(b)
	if err != nil {
		return Booking{}, err
	}
	// The write only lands while the stored status is still the one checked above.
	err = s.store.SaveIf(ctx, BookingCollection, b.ID, "status", string(from), doc)
	switch {
	case errors.Is(err, docstore.ErrConflict):
		return Booking{}, fmt.Errorf("%w: booking %s changed concurrently", ErrInvalidTransition, b.ID)
	case errors.Is(err, docstore.ErrNotFound):
		return Booking{}, ErrBookingNotFound
	case err != nil:
		return Booking{}, fmt.Errorf("save booking %s: %w", b.ID, err)
	}
	slog.InfoContext(ctx, "booking paid", "booking_id", b.ID, "transaction_id", b.TransactionID)
	return b, nil
}

// Booking loads a booking by id.
func (s *Service) Booking(ctx context.Context, id string) (Booking, error) {
	doc, err := s.store.Get(ctx, BookingCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return Booking{}, err
	}
	var b Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return Booking{}, fmt.Errorf("decode booking %s: %w", id, err)
	}
	return b, nil
}

func bookingDocument(b Booking) (docstore.Document, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	var doc docstore.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) save(ctx context.Context, b Booking) error {
	doc, err := bookingDocument(b)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, BookingCollection, b.ID, doc); err != nil {
		return fmt.Errorf("save booking %s: %w", b.ID, err)
	}
	return nil
}

func validateBook(cmd BookCommand) error {
	if strings.TrimSpace(cmd.GuestName) == "" {
		return &InvalidRequestError{Reason: "guestName is required"}
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(cmd.GuestEmail)); err != nil {
		return &InvalidRequestError{Reason: "guestEmail is invalid"}
	}
	if _, err := time.Parse(checkInLayout, cmd.CheckIn); err != nil {
		return &InvalidRequestError{Reason: "checkIn must be YYYY-MM-DD"}
	}
	if cmd.Nights <= 0 {
		return &InvalidRequestError{Reason: "nights must be positive"}
	}
	if cmd.Nights > MaxNights {
		return &InvalidRequestError{Reason: fmt.Sprintf("nights must be at most %d", MaxNights)}
	}
	return nil
}

// validCardNumber checks length and the Luhn checksum.
func validCardNumber(card string) bool {
	if len(card) < 12 || len(card) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(card) - 1; i >= 0; i-- {
		c := card[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// declinedCard mirrors the test-card convention: numbers ending in 0002 are declined.
func declinedCard(card string) bool {
	return strings.HasSuffix(card, "0002")
}
