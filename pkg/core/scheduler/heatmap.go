package scheduler

import "math"

// HeatmapRecorder keeps every scored candidate of a run. It accumulates across all
// subjects and is never read by the scheduling algorithm.
type HeatmapRecorder struct {
	entries []HeatmapEntry
}

// Record appends one evaluation
func (h *HeatmapRecorder) Record(slot Slot, score float64) {
	h.entries = append(h.entries, HeatmapEntry{
		Day:   slot.Day,
		Time:  slot.Time,
		Room:  slot.Room,
		Score: score,
	})
}

// Entries returns the recorded evaluations in order
func (h *HeatmapRecorder) Entries() []HeatmapEntry {
	return h.entries
}

// Len returns the number of recorded evaluations
func (h *HeatmapRecorder) Len() int {
	return len(h.entries)
}

// MaxByCell folds entries into a day × time grid holding the best score seen in each cell.
// Cells that were never evaluated hold NaN.
func MaxByCell(entries []HeatmapEntry) [Days][TimesPerDay]float64 {
	var grid [Days][TimesPerDay]float64
	for d := range grid {
		for t := range grid[d] {
			grid[d][t] = math.NaN()
		}
	}
	for _, e := range entries {
		if e.Day < 0 || e.Day >= Days || e.Time < 0 || e.Time >= TimesPerDay {
			continue
		}
		if math.IsNaN(grid[e.Day][e.Time]) || e.Score > grid[e.Day][e.Time] {
			grid[e.Day][e.Time] = e.Score
		}
	}
	return grid
}
