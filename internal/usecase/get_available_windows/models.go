package get_available_windows

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/types"
)

// Request модель запроса на получение доступных окон
type Request struct {
	PartnerID  int64     // ID партнера
	CategoryID *int64    // ID категории услуг (опционально, влияет на выбор правил)
	Date       time.Time // Дата для получения окон (без времени)
}

// Response модель ответа со списком окон
type Response struct {
	Date       time.Time // Дата, на которую запрашивались окна
	PartnerID  int64     // ID партнера
	CategoryID *int64    // ID категории, если была указана
	Windows    []Window  // Список окон с их заполненностью
}

// Window модель временного окна
// Полностью занятые окна тоже попадают в ответ с RemainingCapacity = 0,
// чтобы клиент видел загруженность всего дня
type Window struct {
	Start             types.TimeString // Время начала окна (например, "10:00")
	End               types.TimeString // Время конца окна
	DurationMinutes   int              // Длительность окна в минутах
	RemainingCapacity int              // Количество свободных мест
	TotalCapacity     int              // Общее количество мест
}

// fromDomainWindows конвертирует доменные окна в модель ответа
func fromDomainWindows(windows []domain.AvailableWindow) []Window {
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		result = append(result, Window{
			Start:             w.Start,
			End:               w.End,
			DurationMinutes:   w.DurationMinutes,
			RemainingCapacity: w.RemainingCapacity,
			TotalCapacity:     w.TotalCapacity,
		})
	}
	return result
}
