// README: Benchmark cases: environment, plan contract, booking oversell and load checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tripcraft/internal/infra"
	"tripcraft/internal/modules/planning"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	validTrip := map[string]any{
		"location": "Lisbon", "date": "2025-06-01", "tripType": []string{"Culinary"},
		"duration": 2, "budget": "Moderate", "travelCompanion": "Couple",
	}
	return []TestCase{
		{Name: "Env: Postgres connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil {
				return Result{Status: StatusSkip, Note: "dsn not set"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.db.Ping(ctx); err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.redis == nil {
				return Result{Status: StatusSkip, Note: "redis not set"}
			}
			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := r.redis.Ping(ctx).Err(); err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass}
		}},
		{Name: "Migration: apply (optional)", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.ApplyMigration || r.cfg.DSN == "" {
				return Result{Status: StatusSkip, Note: "apply-migration=false or dsn not set"}
			}
			applied, err := infra.Migrate(ctx, r.cfg.DSN)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			return Result{Status: StatusPass, Note: fmt.Sprintf("applied=%d", len(applied))}
		}},
		httpCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		httpCase("API: plan schema", http.MethodGet, base+"/plans/schema", nil, http.StatusOK),
		httpCase("Plans: missing fields -> 400", http.MethodPost, base+"/plans", map[string]any{"location": "Lisbon"}, http.StatusBadRequest),
		httpCase("Recommendations: missing prompt -> 400", http.MethodPost, base+"/api/ai-recommendations", map[string]any{}, http.StatusBadRequest),
		{Name: "Plans: contract shape (LLM)", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.LLMCases {
				return Result{Status: StatusSkip, Note: "llm=false"}
			}
			return planContract(ctx, r, base+"/plans", validTrip)
		}},
		{Name: "Hotels: concurrent booking never oversells", Run: func(ctx context.Context, r *Runner) Result {
			return concurrentBooking(ctx, r, base)
		}},
		{Name: "Load: GET /api/hotels", Run: func(ctx context.Context, r *Runner) Result {
			return load(ctx, r, http.MethodGet, base+"/api/hotels?location=lisbon", nil)
		}},
		{Name: "Load: POST /plans (LLM)", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.LLMCases {
				return Result{Status: StatusSkip, Note: "llm=false"}
			}
			return load(ctx, r, http.MethodPost, base+"/plans", validTrip)
		}},
		{Name: "Load: POST /api/ai-recommendations (LLM)", Run: func(ctx context.Context, r *Runner) Result {
			if !r.cfg.LLMCases {
				return Result{Status: StatusSkip, Note: "llm=false"}
			}
			return load(ctx, r, http.MethodPost, base+"/api/ai-recommendations", map[string]any{"prompt": "Three rainy-day activities in Lisbon"})
		}},
	}
}

func (r *Runner) do(ctx context.Context, method, url string, body any) (int, []byte, time.Duration, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, 0, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, time.Since(start), err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	return resp.StatusCode, out, time.Since(start), err
}

func httpCase(name, method, url string, body any, want int) TestCase {
	return TestCase{Name: name, Run: func(ctx context.Context, r *Runner) Result {
		status, _, latency, err := r.do(ctx, method, url, body)
		if err != nil {
			return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
		}
		if status != want {
			return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d want=%d", status, want)}
		}
		return Result{Status: StatusPass, Latency: latency}
	}}
}

// planContract checks every schema key is present, whichever recovery path ran.
func planContract(ctx context.Context, r *Runner, url string, trip map[string]any) Result {
	status, body, latency, err := r.do(ctx, http.MethodPost, url, trip)
	if err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
	}
	var plan planning.TripPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return Result{Status: StatusFail, Latency: latency, Note: "response is not a JSON object"}
	}
	if missing := plan.MissingKeys(); len(missing) > 0 {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("missing keys %v", missing)}
	}
	note := "parsed"
	if _, ok := plan.RawResponse(); ok {
		note = "fallback"
	}
	return Result{Status: StatusPass, Latency: latency, Note: note}
}

// concurrentBooking fires Concurrency bookings at one room type and checks
// successes never exceed the availability reported beforehand.
func concurrentBooking(ctx context.Context, r *Runner, base string) Result {
	const hotelID, roomType = "kyo-gion", "tatami"
	status, body, _, err := r.do(ctx, http.MethodGet, base+"/api/hotels/"+hotelID+"/availability", nil)
	if err != nil || status != http.StatusOK {
		return Result{Status: StatusFail, Note: fmt.Sprintf("availability status=%d err=%v", status, err)}
	}
	var avail struct {
		Rooms []struct {
			RoomType  struct{ Code string } `json:"roomType"`
			Available int                   `json:"available"`
		} `json:"rooms"`
	}
	if err := json.Unmarshal(body, &avail); err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	before := -1
	for _, room := range avail.Rooms {
		if room.RoomType.Code == roomType {
			before = room.Available
		}
	}
	if before < 0 {
		return Result{Status: StatusFail, Note: "room type not listed"}
	}

	var ok, soldOut int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, _, _, err := r.do(ctx, http.MethodPost, base+"/api/hotels/"+hotelID+"/book", map[string]any{
				"roomType": roomType, "guestName": fmt.Sprintf("Bench %d", i),
				"guestEmail": fmt.Sprintf("bench%d@example.com", i), "checkIn": "2025-04-02", "nights": 1,
			})
			if err != nil {
				return
			}
			switch status {
			case http.StatusCreated:
				atomic.AddInt64(&ok, 1)
			case http.StatusConflict:
				atomic.AddInt64(&soldOut, 1)
			}
		}(i)
	}
	wg.Wait()

	note := fmt.Sprintf("available=%d booked=%d sold_out=%d", before, ok, soldOut)
	if int(ok) > before {
		return Result{Status: StatusFail, Note: note}
	}
	return Result{Status: StatusPass, Note: note}
}

func load(ctx context.Context, r *Runner, method, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var mu sync.Mutex
	var latencies []time.Duration
	var errCount int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				status, _, latency, err := r.do(ctx, method, url, payload)
				if err != nil || status >= 500 {
					atomic.AddInt64(&errCount, 1)
					continue
				}
				mu.Lock()
				latencies = append(latencies, latency)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(latencies) == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p95 := latencies[len(latencies)*95/100]
	rps := float64(len(latencies)) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Latency: p95, Note: fmt.Sprintf("p95 rps=%.1f errors=%d", rps, errCount)}
}
