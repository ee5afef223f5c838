package aiusage

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists usage entries.
type Store interface {
	Insert(ctx context.Context, e Entry) error
	Summarize(ctx context.Context, since time.Time) (Summary, error)
}

// PGStore handles ai_usage persistence in Postgres.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore returns a PGStore backed by the given connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (id, endpoint, outcome, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.Endpoint, e.Outcome, e.LatencyMS, e.CreatedAt)
	return err
}

// Summarize counts entries per endpoint and outcome in one grouped query.
func (s *PGStore) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT endpoint, outcome, COUNT(*)
		FROM ai_usage
		WHERE created_at >= $1
		GROUP BY endpoint, outcome
	`, since)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	sum := newSummary(since)
	for rows.Next() {
		var endpoint, outcome string
		var n int
		if err := rows.Scan(&endpoint, &outcome, &n); err != nil {
			return Summary{}, err
		}
		sum.add(endpoint, outcome, n)
	}
	return sum, rows.Err()
}

// DefaultMemoryRetention is how long the memory store keeps per-minute counts.
const DefaultMemoryRetention = 7 * 24 * time.Hour

type usageKey struct {
	endpoint string
	outcome  string
}

type bucketKey struct {
	minute int64
	usageKey
}

// MemoryStore keeps per-minute counters in process memory, so its size is
// bounded by the retention window rather than by traffic. Buckets older than
// the retention are folded into lifetime totals, which only an all-time
// summary (zero since) reports.
type MemoryStore struct {
	mu        sync.Mutex
	retention time.Duration
	buckets   map[bucketKey]int
	expired   map[usageKey]int
	newest    int64
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithRetention(DefaultMemoryRetention)
}

func NewMemoryStoreWithRetention(retention time.Duration) *MemoryStore {
	if retention < time.Minute {
		retention = time.Minute
	}
	return &MemoryStore{
		retention: retention,
		buckets:   make(map[bucketKey]int),
		expired:   make(map[usageKey]int),
	}
}

func (s *MemoryStore) Insert(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	minute := e.CreatedAt.Truncate(time.Minute).Unix()
	s.buckets[bucketKey{minute: minute, usageKey: usageKey{e.Endpoint, e.Outcome}}]++
	if minute > s.newest {
		s.newest = minute
		s.prune()
	}
	return nil
}

func (s *MemoryStore) prune() {
	cutoff := s.newest - int64(s.retention/time.Second)
	for k, n := range s.buckets {
		if k.minute < cutoff {
			s.expired[k.usageKey] += n
			delete(s.buckets, k)
		}
	}
}

// Summarize counts at minute resolution: an entry is included when its minute
// starts at or after since truncated to the minute.
func (s *MemoryStore) Summarize(_ context.Context, since time.Time) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := newSummary(since)
	from := since.Truncate(time.Minute).Unix()
	for k, n := range s.buckets {
		if !since.IsZero() && k.minute < from {
			continue
		}
		sum.add(k.endpoint, k.outcome, n)
	}
	if since.IsZero() {
		for k, n := range s.expired {
			sum.add(k.endpoint, k.outcome, n)
		}
	}
	return sum, nil
}
