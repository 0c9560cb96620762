package scheduler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeatmapRecorder_Record(t *testing.T) {
	h := &HeatmapRecorder{}
	h.Record(Slot{Day: 1, Time: 2, Room: "R1"}, 4.5)
	h.Record(Slot{Day: 0, Time: 0, Room: "R2"}, -1)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []HeatmapEntry{
		{Day: 1, Time: 2, Room: "R1", Score: 4.5},
		{Day: 0, Time: 0, Room: "R2", Score: -1},
	}, h.Entries())
}

func TestMaxByCell(t *testing.T) {
	grid := MaxByCell([]HeatmapEntry{
		{Day: 0, Time: 0, Room: "R1", Score: 3},
		{Day: 0, Time: 0, Room: "R2", Score: 8},
		{Day: 0, Time: 0, Room: "R1", Score: -2},
		{Day: 4, Time: 5, Room: "R1", Score: -1},
		{Day: 9, Time: 9, Room: "R1", Score: 100},
	})

	assert.Equal(t, 8.0, grid[0][0])
	assert.Equal(t, -1.0, grid[4][5])
	assert.True(t, math.IsNaN(grid[2][3]))
}
