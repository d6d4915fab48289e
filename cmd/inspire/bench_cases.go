// README: Benchmark cases; HTTP contract checks, optional Postgres/Redis checks and load against /where.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   BenchCmd
	out   io.Writer
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg BenchCmd, out io.Writer) *Runner {
	return &Runner{
		cfg:   cfg,
		out:   out,
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.Redis != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.Redis})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Fprintf(r.out, "%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
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
	where := base + "/api/v1/inspiration/where"
	milan := map[string]any{"latitude": 45.4642, "longitude": 9.19}

	tests := []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: search_events table present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx, "SELECT to_regclass('public.search_events') IS NOT NULL").Scan(&exists)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if !exists {
					return Result{Status: StatusPending, Note: "start the API once to create it"}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCaseMethod("API: root", http.MethodGet, base+"/", nil, []int{200}, nil),
		httpCaseMethod("API: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCaseMethod("API: inspiration health", http.MethodGet, base+"/api/v1/inspiration/health", nil, []int{200}, nil),

		// Validation never reaches the provider.
		httpCase("Where: empty what -> 400", where, map[string]any{"what": " "}, []int{400}, nil),
		httpCase("Where: latitude out of range -> 400", where, map[string]any{
			"what":     "pizza",
			"location": map[string]any{"latitude": 123.0, "longitude": 9.0},
		}, []int{400}, nil),
		httpCase("Where: max_results 0 -> 400", where, map[string]any{
			"what":        "pizza",
			"preferences": map[string]any{"max_results": 0},
		}, []int{400}, nil),
		httpCase("Where: unknown price level -> 400", where, map[string]any{
			"what":        "pizza",
			"preferences": map[string]any{"price_level": []string{"cheap-ish"}},
		}, []int{400}, nil),
		httpCase("Where: radius above 50km -> 400", where, map[string]any{
			"what":            "pizza",
			"location":        milan,
			"location_radius": 60000,
		}, []int{400}, nil),

		httpCaseMethod("Searches: recent", http.MethodGet, base+"/api/v1/inspiration/searches?limit=5", nil, []int{200}, []int{503}),
		httpCase("Wishlist: empty event -> 400", base+"/api/v1/inspiration/wishlist", map[string]any{"event_name": ""}, []int{400}, []int{503}),
	}

	if !r.cfg.Live {
		return append(tests, TestCase{
			Name: "Live: provider and load cases",
			Run: func(ctx context.Context, r *Runner) Result {
				return Result{Status: StatusSkip, Note: "pass --live to call the places provider"}
			},
		})
	}

	return append(tests,
		httpCase("Where: biased search", where, map[string]any{"what": "Pizza night", "location": milan}, []int{200}, []int{429}),
		httpCase("Where: marker in text", where, map[string]any{"what": "Pizza in Paris", "location": milan}, []int{200}, []int{429}),
		httpCase("Where: min rating filter", where, map[string]any{
			"what":        "Coffee",
			"location":    milan,
			"preferences": map[string]any{"max_results": 5, "min_rating": 4.5},
		}, []int{200}, []int{429}),
		httpCase("Wishlist: generate", base+"/api/v1/inspiration/wishlist", map[string]any{"event_name": "camping weekend", "max_items": 5}, []int{200}, []int{429, 503}),
		TestCase{
			Name: "Perf: where throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, where, map[string]any{"what": "Pizza night", "location": milan})
			},
		},
	)
}

func httpCase(name, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return httpCaseMethod(name, http.MethodPost, url, body, okStatuses, pendingStatuses)
}

func httpCaseMethod(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			var reader io.Reader
			if body != nil {
				b, _ := json.Marshal(body)
				reader = strings.NewReader(string(b))
			}
			req, err := http.NewRequestWithContext(ctx, method, url, reader)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			req.Header.Set("Content-Type", "application/json")
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)

			note := fmt.Sprintf("status=%d", resp.StatusCode)
			if slices.Contains(okStatuses, resp.StatusCode) {
				return Result{Status: StatusPass, Latency: latency, Note: note}
			}
			if slices.Contains(pendingStatuses, resp.StatusCode) {
				return Result{Status: StatusPending, Latency: latency, Note: note}
			}
			return Result{Status: StatusFail, Latency: latency, Note: note}
		},
	}
}

// perfLoad posts payload from cfg.Concurrency workers for cfg.Duration and
// reports throughput plus p50/p95 latency of successful calls.
func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	b, _ := json.Marshal(payload)
	end := time.Now().Add(r.cfg.Duration)
	var errCount int64
	var latencies []time.Duration
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(b)))
				req.Header.Set("Content-Type", "application/json")
				start := time.Now()
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				elapsed := time.Since(start)
				mu.Lock()
				if resp.StatusCode == http.StatusOK {
					latencies = append(latencies, elapsed)
				} else {
					errCount++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(latencies) == 0 {
		return Result{Status: StatusFail, Note: fmt.Sprintf("no successful requests (errors=%d)", errCount)}
	}
	slices.Sort(latencies)
	rps := float64(len(latencies)) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f p50=%s p95=%s errors=%d",
		rps, percentile(latencies, 50), percentile(latencies, 95), errCount)}
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, p int) time.Duration {
	idx := (len(sorted) - 1) * p / 100
	return sorted[idx]
}
