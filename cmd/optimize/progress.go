package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// progress logs every evaluation to a CSV file, keeps the best candidate and
// prints a one-line status with an ETA.
type progress struct {
	file   *os.File
	w      *csv.Writer
	budget int
	start  time.Time
	now    func() time.Time
	quiet  bool

	count       int
	bestFitness float64
	best        []float64
}

// newProgress creates the log at path. The header is eval, fitness, then one
// column per tunable parameter, so the column set is only known at runtime.
func newProgress(path string, params *ParamVector, budget int) (*progress, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	p := &progress{
		file:        f,
		w:           csv.NewWriter(f),
		budget:      budget,
		now:         time.Now,
		bestFitness: math.Inf(1),
	}
	p.start = p.now()

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := p.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	return p, nil
}

// Record logs one evaluation. values are the clamped parameters that were
// actually simulated.
func (p *progress) Record(fitness float64, values []float64, quality float64) error {
	p.count++
	if fitness < p.bestFitness {
		p.bestFitness = fitness
		p.best = append(p.best[:0], values...)
	}

	row := make([]string, 0, len(values)+2)
	row = append(row, strconv.Itoa(p.count), strconv.FormatFloat(fitness, 'f', 6, 64))
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := p.w.Write(row); err != nil {
		return err
	}
	p.w.Flush()
	if err := p.w.Error(); err != nil {
		return err
	}

	if !p.quiet {
		elapsed := p.Elapsed()
		fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
			p.count, p.budget, survivalEstimate(fitness, quality), quality, p.bestFitness,
			formatDuration(elapsed), formatDuration(p.remaining(elapsed)))
	}
	return nil
}

// remaining extrapolates the mean evaluation time over the rest of the budget.
func (p *progress) remaining(elapsed time.Duration) time.Duration {
	if p.count == 0 || p.count >= p.budget {
		return 0
	}
	return time.Duration(p.budget-p.count) * (elapsed / time.Duration(p.count))
}

func (p *progress) Count() int             { return p.count }
func (p *progress) Best() []float64        { return p.best }
func (p *progress) BestFitness() float64   { return p.bestFitness }
func (p *progress) Elapsed() time.Duration { return p.now().Sub(p.start) }

func (p *progress) Close() error {
	p.w.Flush()
	return p.file.Close()
}

// survivalEstimate inverts computeFitness for display.
func survivalEstimate(fitness, quality float64) float64 {
	return -fitness / (1.0 + 0.2*quality)
}

// formatDuration formats d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
