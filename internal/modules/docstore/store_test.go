// README: Contract tests run against every document store backend that is available.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tripcraft/internal/infra"
)

func runContract(t *testing.T, store Store) {
	ctx := context.Background()
	coll := "trips_" + uuid.NewString()[:8]

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, coll, "nope")
		require.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("save then get", func(t *testing.T) {
		doc := Document{
			"id":        "t1",
			"userEmail": "ana@example.com",
			"tripData":  map[string]any{"location": "Lisbon", "tips": []any{"walk"}},
		}
		require.NoError(t, store.Save(ctx, coll, "t1", doc))

		got, err := store.Get(ctx, coll, "t1")
		require.NoError(t, err)
		require.Equal(t, "ana@example.com", got["userEmail"])
		trip := got["tripData"].(map[string]any)
		require.Equal(t, "Lisbon", trip["location"])
		require.Equal(t, []any{"walk"}, trip["tips"])
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, coll, "t1", Document{"id": "t1", "userEmail": "bo@example.com"}))
		got, err := store.Get(ctx, coll, "t1")
		require.NoError(t, err)
		require.Equal(t, "bo@example.com", got["userEmail"])
		require.NotContains(t, got, "tripData")
	})

	t.Run("create refuses existing id", func(t *testing.T) {
		require.NoError(t, store.Create(ctx, coll, "c1", Document{"id": "c1", "userEmail": "ana@example.com"}))
		err := store.Create(ctx, coll, "c1", Document{"id": "c1", "userEmail": "eve@example.com"})
		require.ErrorIs(t, err, ErrConflict)

		got, err := store.Get(ctx, coll, "c1")
		require.NoError(t, err)
		require.Equal(t, "ana@example.com", got["userEmail"])
	})

	t.Run("save if field matches", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, coll, "b1", Document{"id": "b1", "status": "pending"}))

		require.NoError(t, store.SaveIf(ctx, coll, "b1", "status", "pending", Document{"id": "b1", "status": "paid"}))
		err := store.SaveIf(ctx, coll, "b1", "status", "pending", Document{"id": "b1", "status": "paid", "txn": "second"})
		require.ErrorIs(t, err, ErrConflict)

		got, err := store.Get(ctx, coll, "b1")
		require.NoError(t, err)
		require.Equal(t, "paid", got["status"])
		require.NotContains(t, got, "txn")

		err = store.SaveIf(ctx, coll, "missing", "status", "pending", Document{"id": "missing"})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("query by field", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, coll, "t3", Document{"id": "t3", "userEmail": "cy@example.com"}))
		require.NoError(t, store.Save(ctx, coll, "t2", Document{"id": "t2", "userEmail": "cy@example.com"}))

		docs, err := store.Query(ctx, coll, "userEmail", "cy@example.com")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		require.Equal(t, "t2", docs[0]["id"])
		require.Equal(t, "t3", docs[1]["id"])

		none, err := store.Query(ctx, coll, "userEmail", "nobody@example.com")
		require.NoError(t, err)
		require.Empty(t, none)
	})
}

func TestMemoryStore(t *testing.T) {
	runContract(t, NewMemoryStore())
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	doc := Document{"nested": map[string]any{"k": "v"}}
	require.NoError(t, store.Save(ctx, "c", "1", doc))

	doc["nested"].(map[string]any)["k"] = "changed"
	got, err := store.Get(ctx, "c", "1")
	require.NoError(t, err)
	require.Equal(t, "v", got["nested"].(map[string]any)["k"])

	got["nested"].(map[string]any)["k"] = "mutated"
	again, err := store.Get(ctx, "c", "1")
	require.NoError(t, err)
	require.Equal(t, "v", again["nested"].(map[string]any)["k"])
}

func TestPGStore(t *testing.T) {
	dsn := os.Getenv("TRIPCRAFT_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPCRAFT_TEST_DSN not set; skipping DB-backed tests")
	}
	ctx := context.Background()
	_, err := infra.Migrate(ctx, dsn)
	require.NoError(t, err)
	db, err := infra.NewDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	runContract(t, NewPGStore(db))
}

func TestFirestoreStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set; skipping Firestore emulator tests")
	}
	client, err := firestore.NewClient(context.Background(), "tripcraft-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	runContract(t, NewFirestoreStore(client))
}

func TestFirestoreValueConvertsNumbers(t *testing.T) {
	in := map[string]any{
		"nights": json.Number("3"),
		"budget": map[string]any{"total": json.Number("812.5")},
		"days":   []any{json.Number("1"), "free day"},
	}

	out := firestoreValue(in).(map[string]any)
	require.Equal(t, int64(3), out["nights"])
	require.Equal(t, 812.5, out["budget"].(map[string]any)["total"])
	require.Equal(t, []any{int64(1), "free day"}, out["days"])
}
