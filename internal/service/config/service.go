package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/plindo/booking-service/internal/domain"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/config/models"
)

// Service сервис для работы с правилами бронирования партнеров
type Service struct {
	configRepo    ConfigRepository
	partnerClient PartnerServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса правил бронирования
func NewService(
	configRepo ConfigRepository,
	partnerClient PartnerServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		partnerClient: partnerClient,
		logger:        logger,
	}
}

// GetEffective получает действующие правила для пары (партнер, категория)
// с учетом иерархии приоритетов. Если правила не настроены,
// возвращает платформенные дефолты
// Публичная операция: клиенту нужны правила до создания бронирования
func (s *Service) GetEffective(ctx context.Context, partnerID int64, categoryID *int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for partner=%d, category=%v", partnerID, categoryID)

	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, partnerID, categoryID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no config for partner=%d, using defaults", partnerID)
			defaults := domain.DefaultBookingConfig()
			defaults.PartnerID = partnerID
			return models.FromDomainConfig(defaults), nil
		}
		s.logger.Error("GetEffective: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEffective: using config id=%d for partner=%d", cfg.ID, partnerID)
	return models.FromDomainConfig(cfg), nil
}

// GetAllByPartner получает все правила партнера
// Доступно только менеджерам партнера
func (s *Service) GetAllByPartner(ctx context.Context, partnerID, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByPartner: fetching configs for partner=%d by user=%d", partnerID, userID)

	if err := s.checkManagerAccess(ctx, partnerID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByPartner(ctx, partnerID)
	if err != nil {
		s.logger.Error("GetAllByPartner: repository error for partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: GetAllByPartner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByPartner: successfully fetched %d configs for partner=%d", len(configs), partnerID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создаёт или обновляет правила для пары (партнер, категория)
// Доступно только менеджерам партнера
// Конкурирующие обновления разрешаются по принципу "последняя запись побеждает"
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for partner=%d, category=%v by user=%d",
		req.PartnerID, req.CategoryID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.PartnerID, req.UserID); err != nil {
		return nil, err
	}

	cfg := req.ToDomainConfig()

	// Проверяем, существуют ли уже правила для этой пары
	existing, err := s.configRepo.GetByPartnerAndCategory(ctx, req.PartnerID, req.CategoryID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Upsert: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	var saved *domain.PartnerBookingConfig
	if existing != nil {
		saved, err = s.configRepo.Update(ctx, existing.ID, cfg)
	} else {
		saved, err = s.configRepo.Create(ctx, cfg)
	}

	if err != nil {
		if errors.Is(err, configRepo.ErrDuplicateConfig) {
			s.logger.Warn("Upsert: duplicate config for partner=%d, category=%v", req.PartnerID, req.CategoryID)
			return nil, ErrDuplicateConfig
		}
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Upsert: config disappeared during update for partner=%d", req.PartnerID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Upsert: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d for partner=%d", saved.ID, req.PartnerID)
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет правила бронирования
// Доступно только менеджерам партнера
func (s *Service) Delete(ctx context.Context, partnerID, configID, userID int64) error {
	s.logger.Info("Delete: deleting config id=%d for partner=%d by user=%d", configID, partnerID, userID)

	if err := s.checkManagerAccess(ctx, partnerID, userID); err != nil {
		return err
	}

	if err := s.configRepo.Delete(ctx, configID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", configID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", configID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", configID)
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
