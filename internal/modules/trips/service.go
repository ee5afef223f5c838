// README: Saved trips: persists generated plans keyed by tripId and lists them per user.
package trips

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tripcraft/internal/modules/docstore"
)

const planIDKey = "tripId"

// Service stores trips in a docstore.Store.
type Service struct {
	store docstore.Store
	newID func() string
}

func NewService(store docstore.Store) *Service {
	return &Service{store: store, newID: uuid.NewString}
}

// Save persists plan for email. The trip id is the plan's tripId, or a fresh
// UUID written back into the plan when it has none. An id already saved by
// another user is refused with ErrForbidden.
func (s *Service) Save(ctx context.Context, email string, selection, plan map[string]any) (Trip, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Trip{}, ErrMissingOwner
	}
	if len(plan) == 0 {
		return Trip{}, ErrEmptyPlan
	}

	id, _ := plan[planIDKey].(string)
	if strings.TrimSpace(id) == "" {
		id = s.newID()
	}
	data := make(map[string]any, len(plan))
	for k, v := range plan {
		data[k] = v
	}
	data[planIDKey] = id
	if selection == nil {
		selection = map[string]any{}
	}

	trip := Trip{ID: id, UserEmail: email, UserSelection: selection, TripData: data}
	err := s.store.Create(ctx, Collection, id, trip.document())
	if errors.Is(err, docstore.ErrConflict) {
		err = s.store.SaveIf(ctx, Collection, id, "userEmail", email, trip.document())
		if errors.Is(err, docstore.ErrConflict) {
			return Trip{}, ErrForbidden
		}
	}
	if err != nil {
		return Trip{}, fmt.Errorf("save trip %s: %w", id, err)
	}
	return trip, nil
}

// Get loads one trip. Any caller holding the id may read it.
func (s *Service) Get(ctx context.Context, id string) (Trip, error) {
	doc, err := s.store.Get(ctx, Collection, id)
	if err != nil {
		return Trip{}, err
	}
	return tripFromDocument(doc), nil
}

// ListByUser returns the trips saved by email.
func (s *Service) ListByUser(ctx context.Context, email string) ([]Trip, error) {
	docs, err := s.store.Query(ctx, Collection, "userEmail", email)
	if err != nil {
		return nil, fmt.Errorf("list trips for %s: %w", email, err)
	}
	out := make([]Trip, 0, len(docs))
	for _, doc := range docs {
		out = append(out, tripFromDocument(doc))
	}
	return out, nil
}
