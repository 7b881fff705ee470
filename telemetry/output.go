package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/quadrisrah/config"
)

// csvSink appends gocsv records to one file, writing the header on first use.
type csvSink struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

// write marshals a slice of tagged structs.
func (s *csvSink) write(records any) error {
	var err error
	if s.headerWritten {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	} else {
		err = gocsv.Marshal(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	s.headerWritten = true
	return nil
}

// LineageRecord is one row of lineage.csv: a birth, infection or death.
type LineageRecord struct {
	Tick       int64  `csv:"tick"`
	Event      string `csv:"event"`
	ID         uint32 `csv:"id"`
	Kind       string `csv:"kind"`
	Parent     uint32 `csv:"parent"` // births only
	Generation uint32 `csv:"generation"`
}

// lineageRecord converts an event into a lineage row. Other event types
// report false.
func lineageRecord(e Event) (LineageRecord, bool) {
	switch e.Type {
	case EventBirth, EventInfection, EventDeath:
	default:
		return LineageRecord{}, false
	}
	rec := LineageRecord{
		Tick:       e.Tick,
		Event:      e.Type.String(),
		ID:         e.EntityID,
		Kind:       e.Kind.String(),
		Generation: e.Generation,
	}
	if e.Type == EventBirth {
		rec.Parent = e.TargetID
	}
	return rec, true
}

// OutputManager writes a run's files: per-window telemetry, perf, bookmarks,
// the lineage event log and the effective config. A nil manager discards
// everything, so callers need not check whether output is enabled.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	bookmarks *csvSink
	lineage   *csvSink

	lineageBuf []LineageRecord
}

// NewOutputManager creates dir and opens the run files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		dst  **csvSink
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
		{&om.lineage, "lineage.csv"},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WritePerf appends the perf breakdown for the window ending at windowEnd.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// WriteLineage appends the births, infections and deaths among events to
// lineage.csv. Ticks without such events write nothing.
func (om *OutputManager) WriteLineage(events []Event) error {
	if om == nil {
		return nil
	}
	om.lineageBuf = om.lineageBuf[:0]
	for _, e := range events {
		if rec, ok := lineageRecord(e); ok {
			om.lineageBuf = append(om.lineageBuf, rec)
		}
	}
	if len(om.lineageBuf) == 0 {
		return nil
	}
	return om.lineage.write(om.lineageBuf)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file and returns the joined errors.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.bookmarks, om.lineage} {
		if s == nil {
			continue
		}
		if err := s.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
