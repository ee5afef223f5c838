package trips

import (
	"errors"

	"tripcraft/internal/modules/docstore"
)

// Collection is the document store collection holding saved trips.
const Collection = "AITrips"

var (
	// ErrNotFound is returned when no trip exists under the id.
	ErrNotFound = docstore.ErrNotFound
	// ErrMissingOwner is returned when a trip is saved without a caller email.
	ErrMissingOwner = errors.New("trip owner email is required")
	// ErrEmptyPlan is returned when a trip is saved without plan data.
	ErrEmptyPlan = errors.New("tripData is required")
	// ErrForbidden is returned when the id already belongs to another user.
	ErrForbidden = errors.New("trip belongs to another user")
)

// Trip is a generated plan saved together with the form that produced it.
type Trip struct {
	ID            string         `json:"id"`
	UserEmail     string         `json:"userEmail"`
	UserSelection map[string]any `json:"userSelection"`
	TripData      map[string]any `json:"tripData"`
}

func (t Trip) document() docstore.Document {
	return docstore.Document{
		"id":            t.ID,
		"userEmail":     t.UserEmail,
		"userSelection": t.UserSelection,
		"tripData":      t.TripData,
	}
}

func tripFromDocument(doc docstore.Document) Trip {
	t := Trip{}
	t.ID, _ = doc["id"].(string)
	t.UserEmail, _ = doc["userEmail"].(string)
	t.UserSelection, _ = doc["userSelection"].(map[string]any)
	t.TripData, _ = doc["tripData"].(map[string]any)
	if t.UserSelection == nil {
		t.UserSelection = map[string]any{}
	}
	if t.TripData == nil {
		t.TripData = map[string]any{}
	}
	return t
}
