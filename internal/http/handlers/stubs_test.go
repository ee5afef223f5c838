package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"tripcraft/internal/maps"
	"tripcraft/internal/modules/aiusage"
	"tripcraft/internal/modules/hotels"
	"tripcraft/internal/modules/planning"
	"tripcraft/internal/modules/trips"
)

type stubPlans struct {
	result    planning.Result
	items     []any
	err       error
	gotReq    planning.TripRequest
	gotPrompt string
}

func (s *stubPlans) GeneratePlan(_ context.Context, req planning.TripRequest) (planning.Result, error) {
	s.gotReq = req
	return s.result, s.err
}

func (s *stubPlans) Recommend(_ context.Context, prompt string) ([]any, error) {
	s.gotPrompt = prompt
	return s.items, s.err
}

type stubTrips struct {
	saved    trips.Trip
	err      error
	gotEmail string
}

func (s *stubTrips) Save(_ context.Context, email string, selection, plan map[string]any) (trips.Trip, error) {
	s.gotEmail = email
	if s.err != nil {
		return trips.Trip{}, s.err
	}
	s.saved = trips.Trip{ID: "t1", UserEmail: email, UserSelection: selection, TripData: plan}
	return s.saved, nil
}

func (s *stubTrips) Get(_ context.Context, id string) (trips.Trip, error) {
	if s.err != nil {
		return trips.Trip{}, s.err
	}
	return trips.Trip{ID: id}, nil
}

func (s *stubTrips) ListByUser(_ context.Context, email string) ([]trips.Trip, error) {
	s.gotEmail = email
	return []trips.Trip{{ID: "t1", UserEmail: email}}, s.err
}

type stubHotels struct {
	err    error
	gotCmd hotels.BookCommand
	gotPay hotels.PayCommand
}

func (s *stubHotels) List(location string) []hotels.Hotel {
	return []hotels.Hotel{{ID: "h1", Location: location}}
}

func (s *stubHotels) Availability(context.Context, string) ([]hotels.RoomAvailability, error) {
	return []hotels.RoomAvailability{{Available: 2}}, s.err
}

func (s *stubHotels) Book(_ context.Context, cmd hotels.BookCommand) (hotels.Booking, error) {
	s.gotCmd = cmd
	return hotels.Booking{ID: "b1", HotelID: cmd.HotelID, Status: hotels.StatusPending}, s.err
}

func (s *stubHotels) Pay(_ context.Context, cmd hotels.PayCommand) (hotels.Booking, error) {
	s.gotPay = cmd
	return hotels.Booking{ID: cmd.BookingID, Status: hotels.StatusPaid}, s.err
}

type stubMaps struct {
	places []maps.Place
	est    maps.TravelEstimate
	err    error
}

func (s *stubMaps) SearchPhotos(context.Context, string) ([]maps.Place, error) {
	return s.places, s.err
}

func (s *stubMaps) GetTravelEstimate(context.Context, string, string, string) (maps.TravelEstimate, error) {
	return s.est, s.err
}

type stubAnalyzer struct {
	reply json.RawMessage
	err   error
	read  bool
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string, body io.Reader) (json.RawMessage, error) {
	if s.read {
		if _, err := io.ReadAll(body); err != nil {
			return nil, err
		}
	}
	return s.reply, s.err
}

type stubUsage struct {
	window time.Duration
}

func (s *stubUsage) Summary(_ context.Context, window time.Duration) (aiusage.Summary, error) {
	s.window = window
	return aiusage.Summary{Total: 2, ByOutcome: map[string]int{"parsed": 2}, ByEndpoint: map[string]int{"plans": 2}}, nil
}
