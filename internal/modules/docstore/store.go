// README: Collection/id keyed JSON document store with memory, Postgres and Firestore backends.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no document exists under the id.
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned by conditional writes whose precondition does not hold.
	ErrConflict = errors.New("document precondition failed")
)

// Document is an open JSON object.
type Document map[string]any

// Store saves and loads documents grouped in named collections.
type Store interface {
	// Save creates or replaces the document stored under collection/id.
	Save(ctx context.Context, collection, id string, doc Document) error
	// Create stores doc only when nothing exists under collection/id, else ErrConflict.
	Create(ctx context.Context, collection, id string, doc Document) error
	// SaveIf replaces the stored document only while its top-level field equals
	// expect. It returns ErrNotFound or ErrConflict otherwise.
	SaveIf(ctx context.Context, collection, id, field string, expect any, doc Document) error
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Query returns every document whose top-level field equals value, ordered by id.
	Query(ctx context.Context, collection, field string, value any) ([]Document, error)
}
