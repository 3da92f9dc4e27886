package partnerservice

// Partner модель партнера (мойки) из PartnerService
type Partner struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Address    string  `json:"address"`
	Active     bool    `json:"active"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// Service модель услуги из каталога партнера
type Service struct {
	ID              int64    `json:"id"`
	PartnerID       int64    `json:"partner_id"`
	CategoryID      int64    `json:"category_id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes int      `json:"duration_minutes"`
	Fulfillment     []string `json:"fulfillment"`
}

// ErrorResponse модель ошибки от PartnerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SupportsFulfillment проверяет, что услуга доступна в указанном способе исполнения
func (s *Service) SupportsFulfillment(fulfillment string) bool {
	if len(s.Fulfillment) == 0 {
		return true
	}
	for _, f := range s.Fulfillment {
		if f == fulfillment {
			return true
		}
	}
	return false
}

// IsManager проверяет, что пользователь является менеджером партнера
func (p *Partner) IsManager(userID int64) bool {
	for _, id := range p.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
