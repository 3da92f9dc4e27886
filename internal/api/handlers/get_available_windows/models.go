package get_available_windows

import (
	"github.com/plindo/booking-service/internal/domain"
	getAvailableWindows "github.com/plindo/booking-service/internal/usecase/get_available_windows"
)

// WindowResponse одно временное окно в HTTP ответе
type WindowResponse struct {
	Start             string `json:"start"` // "10:00"
	End               string `json:"end"`   // "11:00"
	DurationMinutes   int    `json:"durationMinutes"`
	RemainingCapacity int    `json:"remainingCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// AvailableWindowsResponse HTTP response model
type AvailableWindowsResponse struct {
	PartnerID  int64            `json:"partnerId"`
	Date       string           `json:"date"`
	CategoryID *int64           `json:"categoryId,omitempty"`
	Windows    []WindowResponse `json:"windows"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableWindows.Response) *AvailableWindowsResponse {
	result := &AvailableWindowsResponse{
		PartnerID:  resp.PartnerID,
		Date:       resp.Date.Format(domain.DateFormat),
		CategoryID: resp.CategoryID,
		Windows:    make([]WindowResponse, 0, len(resp.Windows)),
	}

	for _, w := range resp.Windows {
		result.Windows = append(result.Windows, WindowResponse{
			Start:             w.Start.String(),
			End:               w.End.String(),
			DurationMinutes:   w.DurationMinutes,
			RemainingCapacity: w.RemainingCapacity,
			TotalCapacity:     w.TotalCapacity,
		})
	}

	return result
}
