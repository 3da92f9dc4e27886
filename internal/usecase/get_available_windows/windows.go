package get_available_windows

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/types"
)

// generateWindows генерирует все окна дня по рабочим блокам партнера
// Окна нарезаются внутри каждого блока с фиксированным шагом windowDuration;
// окно, не помещающееся в блок целиком, отбрасывается
// Затем окна фильтруются с учетом текущего времени и минимального времени до бронирования
func generateWindows(
	day domain.DayAvailability,
	windowDuration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	// Прошедшие даты и выключенные дни не дают окон
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}
	if !day.Enabled || len(day.Blocks) == 0 {
		return []types.TimeString{}, nil
	}

	// Шаг 1: Генерируем ВСЕ окна блок за блоком
	allWindows := make([]types.TimeString, 0)

	for _, block := range day.Blocks {
		current := block.Open

		for current.IsBefore(block.Close) {
			// Проверяем, что окно не выходит за конец блока
			windowEnd, err := current.AddMinutes(windowDuration)
			if err != nil {
				return nil, err
			}
			if windowEnd.IsAfter(block.Close) {
				break
			}

			allWindows = append(allWindows, current)
			current = windowEnd
		}
	}

	// Шаг 2: Если дата бронирования НЕ сегодня - возвращаем все окна
	if !isSameDay(requestDate, now) {
		return allWindows, nil
	}

	// Шаг 3: Если дата бронирования - сегодня, фильтруем окна по времени
	// Вычисляем минимальное допустимое время начала окна
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Когда минимальный срок уведомления уходит за полночь,
		// сегодня бронировать уже нечего
		return []types.TimeString{}, nil
	}

	availableWindows := make([]types.TimeString, 0)
	for _, window := range allWindows {
		if !window.IsBefore(minAllowedTime) {
			availableWindows = append(availableWindows, window)
		}
	}

	return availableWindows, nil
}

// calculateRemainingCapacity вычисляет заполненность каждого окна
// Полностью занятые окна остаются в списке с RemainingCapacity = 0
func calculateRemainingCapacity(
	windows []types.TimeString,
	windowDuration int,
	bookings []*domain.SlotBooking,
	maxConcurrentBookings int,
) []domain.AvailableWindow {
	result := make([]domain.AvailableWindow, 0, len(windows))

	for _, windowStart := range windows {
		windowEnd, err := windowStart.AddMinutes(windowDuration)
		if err != nil {
			continue
		}

		overlapping := countOverlappingBookings(windowStart, windowEnd, bookings)

		remaining := maxConcurrentBookings - overlapping
		if remaining < 0 {
			remaining = 0
		}

		result = append(result, domain.AvailableWindow{
			Start:             windowStart,
			End:               windowEnd,
			DurationMinutes:   windowDuration,
			RemainingCapacity: remaining,
			TotalCapacity:     maxConcurrentBookings,
		})
	}

	return result
}

// countOverlappingBookings подсчитывает количество бронирований, пересекающихся с окном
// Пересечение есть только если интервалы действительно накладываются друг на друга
// Если бронирование заканчивается ровно там, где начинается окно (или наоборот) - это НЕ пересечение
//
// Примеры:
// - Окно 11:30-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Окно 11:30-12:00, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Окно 11:30-12:00, бронирование 12:00-12:30 → НЕТ пересечения (граничат)
func countOverlappingBookings(windowStart, windowEnd types.TimeString, bookings []*domain.SlotBooking) int {
	count := 0

	for _, booking := range bookings {
		// Отменённые бронирования ёмкость не занимают
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		// Интервалы пересекаются, только если:
		// - начало бронирования СТРОГО раньше конца окна И
		// - конец бронирования СТРОГО позже начала окна
		// Строгие неравенства исключают граничные случаи
		if bookingStart.IsBefore(windowEnd) && bookingEnd.IsAfter(windowStart) {
			count++
		}
	}

	return count
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
