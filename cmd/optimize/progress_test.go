package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestProgressTracksBestAndLogs(t *testing.T) {
	params := NewParamVector()
	path := filepath.Join(t.TempDir(), "optimize_log.csv")
	p, err := newProgress(path, params, 4)
	if err != nil {
		t.Fatal(err)
	}
	p.quiet = true

	values := func(v float64) []float64 {
		out := make([]float64, params.Dim())
		for i := range out {
			out[i] = v
		}
		return out
	}
	for _, tc := range []struct {
		fitness float64
		value   float64
	}{
		{-100, 1},
		{-300, 2},
		{-200, 3},
	} {
		if err := p.Record(tc.fitness, values(tc.value), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	if p.Count() != 3 {
		t.Errorf("Count() = %d, want 3", p.Count())
	}
	if p.BestFitness() != -300 {
		t.Errorf("BestFitness() = %v, want -300", p.BestFitness())
	}
	if best := p.Best(); len(best) != params.Dim() || best[0] != 2 {
		t.Errorf("Best() = %v, want all 2", best)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), data)
	}
	wantHeader := "eval,fitness," + params.Specs[0].Name
	if !strings.HasPrefix(lines[0], wantHeader) {
		t.Errorf("header = %q, want prefix %q", lines[0], wantHeader)
	}
	if !strings.HasPrefix(lines[2], "2,-300.000000,2.000000") {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestProgressRemaining(t *testing.T) {
	p := &progress{budget: 10}
	if got := p.remaining(time.Minute); got != 0 {
		t.Errorf("remaining with no evals = %v, want 0", got)
	}
	p.count = 4
	if got := p.remaining(4 * time.Minute); got != 6*time.Minute {
		t.Errorf("remaining = %v, want 6m", got)
	}
	p.count = 10
	if got := p.remaining(10 * time.Minute); got != 0 {
		t.Errorf("remaining at budget = %v, want 0", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
		{1500 * time.Millisecond, "0m02s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPopulationSize(t *testing.T) {
	if got := populationSize(12, 5); got != 12 {
		t.Errorf("explicit population = %d, want 12", got)
	}
	// 4 + floor(3 ln 8) = 4 + 6
	if got := populationSize(0, 8); got != 10 {
		t.Errorf("auto population = %d, want 10", got)
	}
}
