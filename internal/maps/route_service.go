package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

var (
	// ErrInvalidMode is returned for travel modes the Directions API does not know.
	ErrInvalidMode = errors.New("mode must be driving, walking, bicycling or transit")
	// ErrNoRoute is returned when the API finds no route between the points.
	ErrNoRoute = errors.New("no route found")
)

// TravelEstimate is the first leg of the best route.
type TravelEstimate struct {
	Mode            string        `json:"mode"`
	Duration        time.Duration `json:"-"`
	DurationSeconds int64         `json:"durationSeconds"`
	DurationText    string        `json:"durationText"`
	DistanceMeters  int           `json:"distanceMeters"`
	DistanceText    string        `json:"distanceText"`
}

// RouteService handles interactions with Google Maps API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a new RouteService with the given API Key.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client}, nil
}

// GetTravelEstimate returns duration and distance from origin to destination.
// An empty mode means driving.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination, mode string) (TravelEstimate, error) {
	travelMode, err := parseMode(mode)
	if err != nil {
		return TravelEstimate{}, err
	}

	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        travelMode,
	}
	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return TravelEstimate{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return TravelEstimate{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return TravelEstimate{
		Mode:            string(travelMode),
		Duration:        leg.Duration,
		DurationSeconds: int64(leg.Duration / time.Second),
		DurationText:    leg.Duration.Round(time.Minute).String(),
		DistanceMeters:  leg.Distance.Meters,
		DistanceText:    leg.Distance.HumanReadable,
	}, nil
}

func parseMode(mode string) (maps.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "driving":
		return maps.TravelModeDriving, nil
	case "walking":
		return maps.TravelModeWalking, nil
	case "bicycling":
		return maps.TravelModeBicycling, nil
	case "transit":
		return maps.TravelModeTransit, nil
	default:
		return "", ErrInvalidMode
	}
}
