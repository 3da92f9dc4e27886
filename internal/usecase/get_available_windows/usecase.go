package get_available_windows

import (
	"context"
	"errors"
	"fmt"

	"github.com/plindo/booking-service/internal/domain"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// UseCase use case для получения доступных окон для бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	partnerClient    PartnerServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	partnerClient PartnerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		partnerClient:    partnerClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableWindows: partner=%d, category=%v, date=%s",
		req.PartnerID, req.CategoryID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableWindows: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование партнера
	if _, err := uc.partnerClient.GetPartner(ctx, req.PartnerID); err != nil {
		if errors.Is(err, partnerClient.ErrPartnerNotFound) {
			uc.logger.Warn("GetAvailableWindows: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		uc.logger.Error("GetAvailableWindows: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
	}

	// 4. Получаем правила бронирования с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.PartnerID, req.CategoryID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableWindows: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если правила не настроены, используем дефолтные значения
	if config == nil {
		config = domain.DefaultBookingConfig()
		uc.logger.Info("GetAvailableWindows: using default config for partner=%d, category=%v",
			req.PartnerID, req.CategoryID)
	} else {
		uc.logger.Info("GetAvailableWindows: using config id=%d", config.ID)
	}

	// Партнер с нулевой ёмкостью бронирования не принимает
	if !config.AcceptsBookings() {
		uc.logger.Info("GetAvailableWindows: partner=%d accepts no bookings (capacity=0)", req.PartnerID)
		return uc.emptyResponse(req), nil
	}

	// 5. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableWindows: date validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем недельное расписание партнера
	weekly, err := uc.availabilityRepo.GetWeekly(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableWindows: no availability configured for partner=%d", req.PartnerID)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableWindows: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	day := weekly.Day(req.Date.Weekday())
	if !day.Enabled {
		uc.logger.Info("GetAvailableWindows: partner=%d is closed on %s",
			req.PartnerID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 7. Генерируем временные окна по рабочим блокам
	windows, err := generateWindows(
		day,
		config.SlotDurationMinutes,
		req.Date,
		now,
		config.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to generate windows: %v", err)
		return nil, fmt.Errorf("%w: failed to generate windows: %v", ErrInternal, err)
	}

	// 8. Получаем все активные бронирования на эту дату
	filter := domain.PartnerBookingsFilter{
		PartnerID:       req.PartnerID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByPartnerWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Вычисляем заполненность каждого окна
	result := calculateRemainingCapacity(
		windows,
		config.SlotDurationMinutes,
		bookings,
		config.MaxConcurrentBookings,
	)

	full := 0
	for i := range result {
		if result[i].IsFull() {
			full++
		}
	}

	uc.logger.Info("GetAvailableWindows: generated %d windows (%d full) for partner=%d, date=%s",
		len(result), full, req.PartnerID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		PartnerID:  req.PartnerID,
		CategoryID: req.CategoryID,
		Windows:    fromDomainWindows(result),
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:       req.Date,
		PartnerID:  req.PartnerID,
		CategoryID: req.CategoryID,
		Windows:    []Window{},
	}
}
