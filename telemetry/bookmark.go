package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkBreakthrough BookmarkType = "breakthrough"
	BookmarkCollapse     BookmarkType = "collapse"
	BookmarkExtinction   BookmarkType = "extinction"
	BookmarkPlateau      BookmarkType = "plateau"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Demo        string       `csv:"demo"`
	Type        BookmarkType `csv:"type"`
	Tick        int          `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"demo", b.Demo,
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

const (
	plateauWindows   = 5
	plateauTolerance = 0.005
	collapseDrop     = 0.30
)

// BookmarkDetector detects interesting moments in a demo's metric stream.
type BookmarkDetector struct {
	history *History[WindowStats]

	recentPeak      float64 // peak Last since the previous collapse
	plateauCount    int     // consecutive windows with a near-constant mean
	plateauReported bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < plateauWindows {
		historySize = plateauWindows
	}
	return &BookmarkDetector{history: NewHistory[WindowStats](historySize)}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.history.Len() > 0 {
		// Breakthrough: event count > 2x rolling average
		if b := bd.checkBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Extinction: metric hit zero after being positive
		if b := bd.checkExtinction(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		} else if b := bd.checkCollapse(stats); b != nil {
			// Collapse: dropped >30% from recent peak
			bookmarks = append(bookmarks, *b)
		}

		// Plateau: mean barely moves over 5 windows
		if b := bd.checkPlateau(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.history.Push(stats)
	if stats.Last > bd.recentPeak {
		bd.recentPeak = stats.Last
	}

	return bookmarks
}

// Reset forgets all history.
func (bd *BookmarkDetector) Reset() {
	bd.history.Clear()
	bd.recentPeak = 0
	bd.plateauCount = 0
	bd.plateauReported = false
}

func (bd *BookmarkDetector) checkBreakthrough(stats WindowStats) *Bookmark {
	n := bd.history.Len()
	if n < 3 {
		return nil
	}

	var total int
	for i := 0; i < n; i++ {
		total += bd.history.At(i).Events
	}
	avg := float64(total) / float64(n)
	if avg == 0 {
		return nil
	}

	if float64(stats.Events) > avg*2.0 && stats.Events >= 3 {
		return &Bookmark{
			Demo:        stats.Demo,
			Type:        BookmarkBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d events is %.1fx average (%.1f)", stats.Events, float64(stats.Events)/avg, avg),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	prev, ok := bd.history.Last()
	if !ok || prev.Last <= 0 || stats.Last != 0 {
		return nil
	}
	bd.recentPeak = 0
	return &Bookmark{
		Demo:        stats.Demo,
		Type:        BookmarkExtinction,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s fell from %.4g to zero", stats.Metric, prev.Last),
	}
}

func (bd *BookmarkDetector) checkCollapse(stats WindowStats) *Bookmark {
	if bd.recentPeak <= 0 {
		return nil
	}

	drop := 1.0 - stats.Last/bd.recentPeak
	if drop <= collapseDrop {
		return nil
	}

	// Reset peak after collapse
	oldPeak := bd.recentPeak
	bd.recentPeak = stats.Last

	return &Bookmark{
		Demo:        stats.Demo,
		Type:        BookmarkCollapse,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s dropped %.0f%% from peak %.4g to %.4g", stats.Metric, drop*100, oldPeak, stats.Last),
	}
}

func (bd *BookmarkDetector) checkPlateau(stats WindowStats) *Bookmark {
	prev, _ := bd.history.Last()
	if stats.Mean == 0 || math.Abs(stats.Mean-prev.Mean) > plateauTolerance*math.Abs(prev.Mean) {
		bd.plateauCount = 0
		bd.plateauReported = false
		return nil
	}

	bd.plateauCount++
	if bd.plateauCount < plateauWindows || bd.plateauReported {
		return nil
	}
	bd.plateauReported = true

	return &Bookmark{
		Demo:        stats.Demo,
		Type:        BookmarkPlateau,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s settled near %.4g over %d windows", stats.Metric, stats.Mean, plateauWindows),
	}
}
