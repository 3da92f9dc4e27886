package create_slot_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/plindo/booking-service/internal/domain"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	"github.com/plindo/booking-service/internal/integrations/customerservice"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// UseCase use case для создания бронирования слота
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	partnerClient    PartnerServiceClient
	customerClient   CustomerServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	defaultRates     domain.CommissionRates
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	partnerClient PartnerServiceClient,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	defaultRates domain.CommissionRates,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		partnerClient:    partnerClient,
		customerClient:   customerClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		defaultRates:     defaultRates,
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка ёмкости окна и вставка выполняются в сериализуемой транзакции
// с блокировкой строк дня (FOR UPDATE) - две конкурирующие заявки на последнее
// место не могут пройти обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlotBooking: customer=%d, partner=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.PartnerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlotBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем партнера
	partner, err := uc.partnerClient.GetPartner(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, partnerservice.ErrPartnerNotFound) {
			uc.logger.Warn("CreateSlotBooking: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		uc.logger.Error("CreateSlotBooking: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
	}
	if !partner.Active {
		uc.logger.Warn("CreateSlotBooking: partner id=%d is not active", req.PartnerID)
		return nil, ErrPartnerInactive
	}

	// 4. Получаем услугу из каталога партнера
	service, err := uc.partnerClient.GetService(ctx, req.PartnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, partnerservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateSlotBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateSlotBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем способ исполнения услуги
	if !service.SupportsFulfillment(string(req.Fulfillment)) {
		uc.logger.Warn("CreateSlotBooking: service id=%d does not support fulfillment=%s",
			req.ServiceID, req.Fulfillment)
		return nil, ErrFulfillmentNotSupported
	}

	// 6. Получаем выбранный автомобиль клиента (graceful degradation:
	// при недоступности CustomerService бронирование создается без снимка)
	var vehicleBrand, vehicleModel, vehiclePlate *string
	vehicle, err := uc.customerClient.GetSelectedVehicleWithGracefulDegradation(ctx, req.CustomerID)
	switch {
	case err == nil:
		vehicleBrand = &vehicle.Brand
		vehicleModel = &vehicle.Model
		vehiclePlate = &vehicle.LicensePlate
	case errors.Is(err, customerservice.ErrVehicleNotFound),
		errors.Is(err, customerservice.ErrServiceDegraded):
		uc.logger.Warn("CreateSlotBooking: no vehicle snapshot for customer=%d: %v", req.CustomerID, err)
	default:
		uc.logger.Error("CreateSlotBooking: failed to get vehicle for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 7. Получаем недельное расписание партнера
	weekly, err := uc.availabilityRepo.GetWeekly(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("CreateSlotBooking: no availability configured for partner=%d", req.PartnerID)
			return nil, ErrPartnerClosed
		}
		uc.logger.Error("CreateSlotBooking: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	day := weekly.Day(req.Date.Weekday())
	if !day.Enabled {
		uc.logger.Warn("CreateSlotBooking: partner=%d is closed on %s",
			req.PartnerID, req.Date.Format(domain.DateFormat))
		return nil, ErrPartnerClosed
	}

	// Переменная для хранения результата
	var result *domain.SlotBooking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем правила бронирования с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.PartnerID, &service.CategoryID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateSlotBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если правила не настроены, используем дефолтные значения
		if config == nil {
			config = domain.DefaultBookingConfig()
			uc.logger.Info("CreateSlotBooking: using default config for partner=%d, category=%d",
				req.PartnerID, service.CategoryID)
		} else {
			uc.logger.Info("CreateSlotBooking: using config id=%d", config.ID)
		}

		if !config.AcceptsBookings() {
			uc.logger.Warn("CreateSlotBooking: partner=%d accepts no bookings (capacity=0)", req.PartnerID)
			return ErrCapacityExceeded
		}

		// 8.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateSlotBooking: date validation failed: %v", err)
			return err
		}

		// 8.3. Валидация времени бронирования (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateSlotBooking: booking time validation failed: %v", err)
			return err
		}

		// Длительность окна: длительность услуги, если задана, иначе шаг сетки
		durationMinutes := config.SlotDurationMinutes
		if service.DurationMinutes > 0 {
			durationMinutes = service.DurationMinutes
		}

		// 8.4. Окно должно целиком помещаться в рабочий блок
		if err := validateWithinWorkingBlocks(day, req.StartTime, durationMinutes); err != nil {
			uc.logger.Warn("CreateSlotBooking: window %s+%dmin outside working blocks", req.StartTime, durationMinutes)
			return err
		}

		// 8.5. Получаем все активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.PartnerBookingsFilter{
			PartnerID:       req.PartnerID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные бронирования
		}

		bookings, err := uc.bookingRepo.GetByPartnerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateSlotBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.6. Проверяем ёмкость окна
		overlappingCount, err := countOverlappingBookings(req.StartTime, durationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateSlotBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		// Если MaxConcurrentBookings = 4, то допустимо overlappingCount = 0, 1, 2, 3
		// При overlappingCount >= 4 окно занято
		if overlappingCount >= config.MaxConcurrentBookings {
			uc.logger.Warn("CreateSlotBooking: window full, %d/%d spots taken",
				overlappingCount, config.MaxConcurrentBookings)
			return ErrCapacityExceeded
		}

		uc.logger.Info("CreateSlotBooking: window available, %d/%d spots taken",
			overlappingCount, config.MaxConcurrentBookings)

		// 8.7. Считаем разбивку платежа по действующим ставкам комиссии
		charges := domain.CalculateCharges(getServicePrice(service), uc.commissionRates(config))

		// 8.8. Создаем бронирование с денормализацией данных
		booking := &domain.SlotBooking{
			BookingNumber:   newBookingNumber(),
			CustomerID:      req.CustomerID,
			PartnerID:       req.PartnerID,
			ServiceID:       req.ServiceID,
			CategoryID:      service.CategoryID,
			Fulfillment:     req.Fulfillment,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusBooked,
			// Денормализация данных услуги
			ServiceName:  service.Name,
			ServicePrice: getServicePrice(service),
			// Снимок данных автомобиля
			VehicleBrand: vehicleBrand,
			VehicleModel: vehicleModel,
			VehiclePlate: vehiclePlate,
			// Заметки
			Notes: req.Notes,
			Payment: domain.Payment{
				Method:        req.PaymentMethod,
				Amount:        charges.CustomerCharge,
				PlatformFee:   charges.PlatformRevenue,
				PartnerPayout: charges.PartnerPayout,
				Status:        domain.PaymentPending,
			},
		}

		// 8.9. Сохраняем бронирование и первую запись истории
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateSlotBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.AppendTimeline(txCtx, created.ID, domain.StatusBooked); err != nil {
			uc.logger.Error("CreateSlotBooking: failed to append timeline: %v", err)
			return fmt.Errorf("%w: failed to append timeline: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSlotBooking: successfully created booking id=%d, number=%s",
		result.ID, result.BookingNumber)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		BookingNumber:   result.BookingNumber,
		CustomerID:      result.CustomerID,
		PartnerID:       result.PartnerID,
		ServiceID:       result.ServiceID,
		CategoryID:      result.CategoryID,
		Fulfillment:     string(result.Fulfillment),
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		VehicleBrand:    result.VehicleBrand,
		VehicleModel:    result.VehicleModel,
		VehiclePlate:    result.VehiclePlate,
		Notes:           result.Notes,
		PaymentMethod:   result.Payment.Method,
		PaymentAmount:   result.Payment.Amount,
		PlatformFee:     result.Payment.PlatformFee,
		PartnerPayout:   result.Payment.PartnerPayout,
		PaymentStatus:   string(result.Payment.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// commissionRates возвращает действующие ставки: переопределения партнера,
// если заданы, иначе платформенные дефолты
func (uc *UseCase) commissionRates(config *domain.PartnerBookingConfig) domain.CommissionRates {
	rates := uc.defaultRates
	if config.CustomerCommissionPct != nil {
		rates.CustomerPct = *config.CustomerCommissionPct
	}
	if config.PartnerCommissionPct != nil {
		rates.PartnerPct = *config.PartnerCommissionPct
	}
	return rates
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *partnerservice.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}

// newBookingNumber генерирует уникальный номер бронирования на основе ULID
func newBookingNumber() string {
	return "BK-" + ulid.Make().String()
}
