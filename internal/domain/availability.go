package domain

import (
	"time"

	"github.com/plindo/booking-service/pkg/types"
)

// TimeBlock непрерывный рабочий интервал внутри дня
type TimeBlock struct {
	Open  types.TimeString
	Close types.TimeString
}

// DayAvailability доступность партнера в один день недели
// У выключенного дня блоки отсутствуют
type DayAvailability struct {
	Weekday time.Weekday
	Enabled bool
	Blocks  []TimeBlock
}

// WeeklyAvailability недельное расписание партнера, всегда 7 дней
type WeeklyAvailability struct {
	PartnerID int64
	Days      [7]DayAvailability
	UpdatedAt time.Time
}

// Day возвращает доступность на указанный день недели
func (w *WeeklyAvailability) Day(weekday time.Weekday) DayAvailability {
	return w.Days[int(weekday)]
}

// NewWeeklyAvailability создает расписание со всеми выключенными днями
func NewWeeklyAvailability(partnerID int64) *WeeklyAvailability {
	wa := &WeeklyAvailability{PartnerID: partnerID}
	for i := range wa.Days {
		wa.Days[i] = DayAvailability{Weekday: time.Weekday(i), Enabled: false}
	}
	return wa
}

// AvailableWindow bookable time window with its remaining capacity
type AvailableWindow struct {
	Start             types.TimeString
	End               types.TimeString
	DurationMinutes   int
	RemainingCapacity int
	TotalCapacity     int
}

// IsFull returns true if the window has no remaining capacity
func (w *AvailableWindow) IsFull() bool {
	return w.RemainingCapacity <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (w *AvailableWindow) OccupancyRate() float64 {
	if w.TotalCapacity == 0 {
		return 0
	}
	occupied := w.TotalCapacity - w.RemainingCapacity
	return float64(occupied) / float64(w.TotalCapacity) * 100
}
