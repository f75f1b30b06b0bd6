package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/alnah/go-makechap/internal/config"
)

func TestResolvePoolSize(t *testing.T) {
	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit count takes priority", workers: 4, want: 4},
		{name: "one for sequential", workers: 1, want: 1},
		{name: "zero uses auto calculation", workers: 0, want: min(max(gomaxprocs, 1), maxAutoWorkers)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("resolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// newBatchOptions returns dry-run options so batches never write files.
func newBatchOptions(t *testing.T, env *Environment) *rewriteOptions {
	t.Helper()
	opts, err := newRewriteOptions(&rewriteFlags{dryRun: true}, config.DefaultConfig(), newLogger(env.Stderr, true, false))
	if err != nil {
		t.Fatalf("newRewriteOptions() error = %v", err)
	}
	return opts
}

func TestRenumberBatch_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env, _, _ := newTestEnv()
	opts := newBatchOptions(t, env)

	jobs := make([]chapterJob, 20)
	for i := range jobs {
		name := fmt.Sprintf("C%02d.html", i)
		path := writeFile(t, dir, name, fmt.Sprintf("<H1>Chapter %d</H1>\n<H2>Part</H2>\n", i))
		jobs[i] = chapterJob{Path: path, Name: name, Number: i + 1}
	}

	results := renumberBatch(context.Background(), jobs, 4, opts, newLogger(env.Stderr, true, false), env)

	if len(results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("result %d error: %v", i, r.Err)
		}
		if r.Job != jobs[i] {
			t.Errorf("result %d job = %+v, want %+v", i, r.Job, jobs[i])
		}
		if want := fmt.Sprintf("Chapter %d", i); r.Result.Title != want {
			t.Errorf("result %d title = %q, want %q", i, r.Result.Title, want)
		}
	}
}

func TestRenumberBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env, _, _ := newTestEnv()
	opts := newBatchOptions(t, env)

	path := writeFile(t, dir, "A.html", "<H1>A</H1>\n")
	jobs := []chapterJob{{Path: path, Name: "A.html", Number: 1}, {Path: path, Name: "A.html", Number: 2}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := renumberBatch(ctx, jobs, 2, opts, newLogger(env.Stderr, true, false), env)
	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d error = %v, want context.Canceled", i, r.Err)
		}
	}
}

func TestRenumberBatch_Empty(t *testing.T) {
	t.Parallel()

	env, _, _ := newTestEnv()
	if got := renumberBatch(context.Background(), nil, 4, newBatchOptions(t, env), newLogger(env.Stderr, true, false), env); got != nil {
		t.Errorf("renumberBatch(nil) = %v, want nil", got)
	}
}
