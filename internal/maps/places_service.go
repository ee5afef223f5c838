// README: Google Places text search used to look up place photos for plans.
package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// maxPlaces caps the results returned per query.
const maxPlaces = 5

// ErrEmptyQuery is returned when a search is issued without a query.
var ErrEmptyQuery = errors.New("query is required")

// Place represents a simplified place result with its first photo reference.
type Place struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	Rating         float32 `json:"rating"`
	PlaceID        string  `json:"placeId"`
	PhotoReference string  `json:"photoReference,omitempty"`
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra options (e.g. maps.WithBaseURL) are passed to the maps client.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

// SearchPhotos runs a text search and returns the places that carry a photo first.
func (s *PlacesService) SearchPhotos(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	withPhoto := make([]Place, 0, maxPlaces)
	var withoutPhoto []Place
	for _, r := range resp.Results {
		p := Place{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			PlaceID: r.PlaceID,
		}
		if len(r.Photos) > 0 {
			p.PhotoReference = r.Photos[0].PhotoReference
			withPhoto = append(withPhoto, p)
		} else {
			withoutPhoto = append(withoutPhoto, p)
		}
	}

	results := append(withPhoto, withoutPhoto...)
	if len(results) > maxPlaces {
		results = results[:maxPlaces]
	}
	return results, nil
}

func newClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	all := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
