package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntBreakthrough BookmarkType = "hunt_breakthrough"
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
	BookmarkExtinction       BookmarkType = "extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Turn        int          `csv:"turn"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"turn", b.Turn,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentPredMin      int // minimum predator count in recent history
	recentPreyPeak     int // peak prey count in recent history
	stableWindowsCount int // consecutive windows with stable populations
	preyExtinct        bool
	predExtinct        bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	// Extinction is checked from the first window on
	bookmarks = append(bookmarks, bd.checkExtinction(stats)...)

	if bd.historyFull || bd.historyIdx > 0 {
		// Hunt breakthrough: kill rate > 2x rolling average
		if b := bd.checkHuntBreakthrough(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Predator recovery: was ≤3, now ≥3x that
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Prey crash: dropped >30% from recent peak
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable ecosystem: both populations present with low variance over 5+ windows
		if b := bd.checkStableEcosystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	// Track predator minimum and prey peak
	if stats.PredCount < bd.recentPredMin || bd.recentPredMin == 0 {
		bd.recentPredMin = stats.PredCount
	}
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

// getHistory returns the stored windows oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) []Bookmark {
	var out []Bookmark
	if stats.PreyCount == 0 && !bd.preyExtinct {
		bd.preyExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkExtinction,
			Turn:        stats.WindowEndTurn,
			Description: "Prey went extinct",
		})
	}
	if stats.PredCount == 0 && !bd.predExtinct {
		bd.predExtinct = true
		out = append(out, Bookmark{
			Type:        BookmarkExtinction,
			Turn:        stats.WindowEndTurn,
			Description: "Predators went extinct",
		})
	}
	// A species can come back only if it is reseeded; re-arm in that case.
	if stats.PreyCount > 0 {
		bd.preyExtinct = false
	}
	if stats.PredCount > 0 {
		bd.predExtinct = false
	}
	return out
}

func (bd *BookmarkDetector) checkHuntBreakthrough(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Rolling average kills per hunt
	var totalKills, totalHunts int
	for _, h := range history {
		totalKills += h.Kills
		totalHunts += h.Hunts
	}

	if totalHunts == 0 || stats.Hunts == 0 {
		return nil
	}

	avgKillRate := float64(totalKills) / float64(totalHunts)
	if avgKillRate == 0 {
		return nil
	}

	currentKillRate := stats.KillRate
	if currentKillRate > avgKillRate*2.0 && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkHuntBreakthrough,
			Turn:        stats.WindowEndTurn,
			Description: fmt.Sprintf("Kill rate %.2f is %.1fx average (%.2f)", currentKillRate, currentKillRate/avgKillRate, avgKillRate),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	if bd.recentPredMin == 0 || bd.recentPredMin > 3 {
		return nil
	}

	threshold := bd.recentPredMin * 3
	if stats.PredCount >= threshold && stats.PredCount >= 6 {
		// Reset the minimum after triggering
		oldMin := bd.recentPredMin
		bd.recentPredMin = stats.PredCount

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Turn:        stats.WindowEndTurn,
			Description: fmt.Sprintf("Predator population recovered from %d to %d", oldMin, stats.PredCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	if bd.recentPreyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PreyCount)/float64(bd.recentPreyPeak)
	if dropPercent > 0.30 && stats.PreyCount < bd.recentPreyPeak-10 {
		// Reset peak after crash
		oldPeak := bd.recentPreyPeak
		bd.recentPreyPeak = stats.PreyCount

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Turn:        stats.WindowEndTurn,
			Description: fmt.Sprintf("Prey crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PreyCount),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	// Need both populations present
	if stats.PreyCount < 10 || stats.PredCount < 3 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 4 {
		return nil
	}
	recent := history[len(history)-4:]

	preyCV2 := squaredCV(recent, func(s WindowStats) int { return s.PreyCount })
	predCV2 := squaredCV(recent, func(s WindowStats) int { return s.PredCount })

	if preyCV2 < 0.04 && predCV2 < 0.04 { // CV^2 < 0.04 means CV < 0.2
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Turn:        stats.WindowEndTurn,
			Description: fmt.Sprintf("Stable ecosystem with %d prey, %d predators over 5+ windows", stats.PreyCount, stats.PredCount),
		}
	}

	return nil
}

// squaredCV returns the population variance over the squared mean.
func squaredCV(windows []WindowStats, count func(WindowStats) int) float64 {
	x := make([]float64, len(windows))
	for i, w := range windows {
		x[i] = float64(count(w))
	}
	mean, variance := stat.PopMeanVariance(x, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
