package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type BenchCmd struct {
	BaseURL     string        `help:"API base URL." env:"VAMU_BENCH_BASE_URL" default:"http://localhost:8001"`
	DSN         string        `help:"Postgres DSN for analytics checks (optional)." env:"VAMU_DB_DSN"`
	Redis       string        `help:"Redis address for quota checks (optional)." env:"VAMU_REDIS_ADDR"`
	Strict      bool          `help:"Fail on pending cases." env:"VAMU_BENCH_STRICT"`
	Live        bool          `help:"Include cases that call the places provider and Gemini."`
	Timeout     time.Duration `help:"Total timeout." env:"VAMU_BENCH_TIMEOUT" default:"60s"`
	Concurrency int           `help:"Concurrency for load cases." env:"VAMU_BENCH_CONCURRENCY" default:"20"`
	Duration    time.Duration `help:"Duration of each load case." env:"VAMU_BENCH_DURATION" default:"10s"`
}

func (b *BenchCmd) Run(ctx *Context) error {
	b.BaseURL = strings.TrimRight(b.BaseURL, "/")

	runCtx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	bench := NewRunner(*b, ctx.Out)
	results := bench.RunAll(runCtx)

	fmt.Fprintln(ctx.Out, "\n== Summary ==")
	pass, fail, pending, skipped := 0, 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		case StatusPending:
			pending++
		case StatusSkip:
			skipped++
		}
	}
	fmt.Fprintf(ctx.Out, "PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if fail > 0 || (b.Strict && pending > 0) {
		return errors.New("benchmark failed")
	}
	return nil
}
