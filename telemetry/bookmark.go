package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/quadrisrah/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOutbreak   BookmarkType = "outbreak"
	BookmarkPreyCrash  BookmarkType = "prey_crash"
	BookmarkExtinction BookmarkType = "extinction"
	BookmarkBabyBoom   BookmarkType = "baby_boom"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPreyPeak int  // peak prey count in recent history
	preyExtinct    bool // extinction already reported
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for rolling averages
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Outbreak: predators multiplied since the previous window
		if b := bd.checkOutbreak(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Prey crash: dropped far below recent peak
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Baby boom: births well above rolling average
		if b := bd.checkBabyBoom(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Extinction: last prey gone
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Update history
	bd.addToHistory(stats)

	if stats.PreyCount > bd.recentPreyPeak {
		bd.recentPreyPeak = stats.PreyCount
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// previous returns the most recently recorded window.
func (bd *BookmarkDetector) previous() WindowStats {
	idx := bd.historyIdx - 1
	if idx < 0 {
		idx = bd.historySize - 1
	}
	return bd.history[idx]
}

func (bd *BookmarkDetector) checkOutbreak(stats WindowStats) *Bookmark {
	prev := bd.previous().PredCount
	base := max(prev, 1)

	if float64(stats.PredCount) >= float64(base)*bd.cfg.OutbreakMultiplier &&
		stats.PredCount >= bd.cfg.OutbreakMinPred {
		return &Bookmark{
			Type:        BookmarkOutbreak,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Zombies grew from %d to %d (%d infections)", prev, stats.PredCount, stats.Infections),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if dropPercent > bd.cfg.CrashDropPercent && stats.PreyCount <= bd.recentPreyPeak-bd.cfg.CrashMinDrop {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkBabyBoom(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Births
	}
	avg := float64(total) / float64(len(history))

	if stats.Births >= bd.cfg.BoomMinBirths && float64(stats.Births) > max(avg, 1)*bd.cfg.BoomMultiplier {
		return &Bookmark{
			Type:        BookmarkBabyBoom,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d births vs average %.1f", stats.Births, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if stats.PreyCount > 0 {
		bd.preyExtinct = false
		return nil
	}
	if bd.preyExtinct {
		return nil
	}
	bd.preyExtinct = true

	return &Bookmark{
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Valkarai extinct, %d zombies remain", stats.PredCount),
	}
}
