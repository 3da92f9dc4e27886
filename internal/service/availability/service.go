package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/plindo/booking-service/internal/domain"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/availability/models"
)

// Service сервис для работы с недельными расписаниями партнеров
type Service struct {
	availabilityRepo AvailabilityRepository
	partnerClient    PartnerServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	availabilityRepo AvailabilityRepository,
	partnerClient PartnerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		partnerClient:    partnerClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWeekly получает недельное расписание партнера
// Публичная операция: расписание видят все клиенты
func (s *Service) GetWeekly(ctx context.Context, partnerID int64) (*models.WeeklyResponse, error) {
	s.logger.Info("GetWeekly: fetching weekly availability for partner=%d", partnerID)

	weekly, err := s.availabilityRepo.GetWeekly(ctx, partnerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetWeekly: availability not found for partner=%d", partnerID)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("GetWeekly: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: GetWeekly - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeekly: successfully fetched availability for partner=%d", partnerID)
	return models.FromDomainWeekly(weekly), nil
}

// UpdateWeekly полностью заменяет недельное расписание партнера
// Доступно только менеджерам партнера; конкурирующие обновления
// разрешаются по принципу "последняя запись побеждает"
func (s *Service) UpdateWeekly(ctx context.Context, req *models.UpdateWeeklyRequest) (*models.WeeklyResponse, error) {
	s.logger.Info("UpdateWeekly: updating availability for partner=%d by user=%d", req.PartnerID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.PartnerID, req.UserID); err != nil {
		return nil, err
	}

	weekly, err := req.ToDomainWeekly()
	if err != nil {
		s.logger.Warn("UpdateWeekly: invalid payload for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateWeekly(weekly); err != nil {
		s.logger.Warn("UpdateWeekly: validation failed for partner=%d: %v", req.PartnerID, err)
		return nil, err
	}

	// Удаление старых строк и вставка новых должны быть атомарны
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.availabilityRepo.ReplaceWeekly(ctx, weekly)
	})
	if err != nil {
		s.logger.Error("UpdateWeekly: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: UpdateWeekly - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeekly: successfully updated availability for partner=%d", req.PartnerID)
	return models.FromDomainWeekly(weekly), nil
}

// validateWeekly проверяет каждый день: блоки корректны, open < close,
// блоки не пересекаются между собой
func validateWeekly(weekly *domain.WeeklyAvailability) error {
	for _, day := range weekly.Days {
		if !day.Enabled {
			continue
		}

		if len(day.Blocks) == 0 {
			return fmt.Errorf("%w: enabled day %s has no working blocks", ErrInvalidInput, day.Weekday)
		}

		for i, block := range day.Blocks {
			if err := block.Open.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if err := block.Close.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !block.Open.IsBefore(block.Close) {
				return fmt.Errorf("%w: block %s-%s on %s: open must be before close",
					ErrInvalidInput, block.Open, block.Close, day.Weekday)
			}

			// Пересечения с предыдущими блоками того же дня
			for _, prev := range day.Blocks[:i] {
				if block.Open.IsBefore(prev.Close) && prev.Open.IsBefore(block.Close) {
					return fmt.Errorf("%w: blocks %s-%s and %s-%s overlap on %s",
						ErrInvalidInput, prev.Open, prev.Close, block.Open, block.Close, day.Weekday)
				}
			}
		}
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером партнера
func (s *Service) checkManagerAccess(ctx context.Context, partnerID int64, userID int64) error {
	partner, err := s.partnerClient.GetPartner(ctx, partnerID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPartnerNotFound) {
			s.logger.Warn("checkManagerAccess: partner id=%d not found", partnerID)
			return ErrPartnerNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get partner id=%d: %v", partnerID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get partner: %v", ErrInternal, err)
	}

	if partner.IsManager(userID) {
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of partner=%d", userID, partnerID)
	return ErrAccessDenied
}
