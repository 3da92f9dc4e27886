package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plindo/booking-service/pkg/types"
)

func TestAvailableWindow_IsFull(t *testing.T) {
	window := AvailableWindow{
		Start:             types.TimeString("10:00"),
		End:               types.TimeString("11:00"),
		DurationMinutes:   60,
		RemainingCapacity: 2,
		TotalCapacity:     3,
	}
	assert.False(t, window.IsFull())

	window.RemainingCapacity = 0
	assert.True(t, window.IsFull())
}

func TestAvailableWindow_OccupancyRate(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		total     int
		rate      float64
	}{
		{name: "empty window", remaining: 4, total: 4, rate: 0},
		{name: "half occupied", remaining: 2, total: 4, rate: 50},
		{name: "full window", remaining: 0, total: 4, rate: 100},
		{name: "zero capacity yields zero", remaining: 0, total: 0, rate: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := AvailableWindow{RemainingCapacity: tt.remaining, TotalCapacity: tt.total}
			assert.InDelta(t, tt.rate, window.OccupancyRate(), 0.001)
		})
	}
}

func TestNewWeeklyAvailability_AllDaysDisabled(t *testing.T) {
	weekly := NewWeeklyAvailability(1)

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := weekly.Day(weekday)
		assert.False(t, day.Enabled, "weekday=%s", weekday)
		assert.Equal(t, weekday, day.Weekday)
	}
}
