package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Breakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{Demo: "ants", WindowEndTick: i * 100, Last: 10, Mean: 10 + float64(i), Events: 2})
	}

	bookmarks := bd.Check(WindowStats{Demo: "ants", WindowEndTick: 500, Last: 10, Mean: 20, Events: 9})
	if !hasBookmark(bookmarks, BookmarkBreakthrough) {
		t.Error("expected breakthrough bookmark")
	}
	if bookmarks[0].Demo != "ants" || bookmarks[0].Tick != 500 {
		t.Errorf("bookmark = %+v", bookmarks[0])
	}
}

func TestBookmarkDetector_Collapse(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: i * 100, Last: 100, Mean: 100 + float64(i)})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 500, Last: 50, Mean: 60})
	if !hasBookmark(bookmarks, BookmarkCollapse) {
		t.Error("expected collapse bookmark")
	}

	// Peak resets, so a small further dip does not fire again
	bookmarks = bd.Check(WindowStats{WindowEndTick: 600, Last: 45, Mean: 47})
	if hasBookmark(bookmarks, BookmarkCollapse) {
		t.Error("collapse should not repeat right after reset")
	}
}

func TestBookmarkDetector_Extinction(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{WindowEndTick: 100, Last: 12, Mean: 14})

	bookmarks := bd.Check(WindowStats{WindowEndTick: 200, Last: 0, Mean: 3})
	if !hasBookmark(bookmarks, BookmarkExtinction) {
		t.Error("expected extinction bookmark")
	}
	if hasBookmark(bookmarks, BookmarkCollapse) {
		t.Error("extinction should replace collapse")
	}

	// Staying at zero is not a new extinction
	bookmarks = bd.Check(WindowStats{WindowEndTick: 300, Last: 0, Mean: 0})
	if hasBookmark(bookmarks, BookmarkExtinction) {
		t.Error("extinction should fire once")
	}
}

func TestBookmarkDetector_Plateau(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{WindowEndTick: i * 100, Last: 0.9, Mean: 0.9})
		if hasBookmark(bookmarks, BookmarkPlateau) {
			fired++
			if i != plateauWindows {
				t.Errorf("plateau fired at window %d, want %d", i, plateauWindows)
			}
		}
	}
	if fired != 1 {
		t.Errorf("plateau fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Last: 10, Mean: 10})
	bd.Reset()

	if bookmarks := bd.Check(WindowStats{Last: 0, Mean: 0}); len(bookmarks) != 0 {
		t.Errorf("got %v after reset, want none", bookmarks)
	}
}
