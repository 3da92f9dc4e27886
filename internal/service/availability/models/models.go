package models

import (
	"time"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/types"
)

// Request модели

// TimeBlockPayload рабочий интервал внутри дня
type TimeBlockPayload struct {
	Open  string `json:"open" validate:"required"`  // "09:00"
	Close string `json:"close" validate:"required"` // "18:00"
}

// DayPayload настройка одного дня недели
type DayPayload struct {
	Enabled bool               `json:"enabled"`
	Blocks  []TimeBlockPayload `json:"blocks" validate:"dive"`
}

// UpdateWeeklyRequest запрос на замену недельного расписания
// Ключи дней: monday..sunday; отсутствующий день считается выключенным
type UpdateWeeklyRequest struct {
	UserID    int64                 `json:"userId"`
	PartnerID int64                 `json:"partnerId"`
	Days      map[string]DayPayload `json:"days" validate:"required"`
}

// weekdayNames имена дней недели в порядке time.Weekday (воскресенье = 0)
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// KnownWeekday проверяет, что имя дня недели допустимо
func KnownWeekday(name string) bool {
	for _, known := range weekdayNames {
		if known == name {
			return true
		}
	}
	return false
}

// ToDomainWeekly конвертирует request в domain модель
// Валидация блоков выполняется на уровне сервиса
func (r *UpdateWeeklyRequest) ToDomainWeekly() (*domain.WeeklyAvailability, error) {
	weekly := domain.NewWeeklyAvailability(r.PartnerID)

	for name, payload := range r.Days {
		idx := -1
		for i, known := range weekdayNames {
			if known == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &UnknownWeekdayError{Name: name}
		}

		day := &weekly.Days[idx]
		day.Enabled = payload.Enabled

		if !payload.Enabled {
			continue
		}

		for _, block := range payload.Blocks {
			open, err := types.NewTimeStringFromString(block.Open)
			if err != nil {
				return nil, err
			}
			close, err := types.NewTimeStringFromString(block.Close)
			if err != nil {
				return nil, err
			}
			day.Blocks = append(day.Blocks, domain.TimeBlock{Open: open, Close: close})
		}
	}

	return weekly, nil
}

// UnknownWeekdayError ошибка для неизвестного имени дня недели
type UnknownWeekdayError struct {
	Name string
}

func (e *UnknownWeekdayError) Error() string {
	return "unknown weekday: " + e.Name
}

// Response модели

// TimeBlockResponse рабочий интервал в ответе
type TimeBlockResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// DayResponse доступность одного дня недели
type DayResponse struct {
	Enabled bool                `json:"enabled"`
	Blocks  []TimeBlockResponse `json:"blocks"`
}

// WeeklyResponse недельное расписание партнера
type WeeklyResponse struct {
	PartnerID int64                  `json:"partnerId"`
	Days      map[string]DayResponse `json:"days"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// FromDomainWeekly конвертирует domain модель в DTO
func FromDomainWeekly(w *domain.WeeklyAvailability) *WeeklyResponse {
	if w == nil {
		return nil
	}

	resp := &WeeklyResponse{
		PartnerID: w.PartnerID,
		Days:      make(map[string]DayResponse, 7),
		UpdatedAt: w.UpdatedAt,
	}

	for i, day := range w.Days {
		dayResp := DayResponse{
			Enabled: day.Enabled,
			Blocks:  make([]TimeBlockResponse, 0, len(day.Blocks)),
		}
		for _, block := range day.Blocks {
			dayResp.Blocks = append(dayResp.Blocks, TimeBlockResponse{
				Open:  block.Open.String(),
				Close: block.Close.String(),
			})
		}
		resp.Days[weekdayNames[i]] = dayResp
	}

	return resp
}
