package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/plindo/booking-service/internal/domain"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/plindo/booking-service/internal/infra/storage/booking"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
)

// UseCase use case для переноса бронирования на новое окно
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	partnerClient    PartnerServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	partnerClient PartnerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		partnerClient:    partnerClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет перенос бронирования
// Номер и ID бронирования сохраняются, история статусов дополняется
// маркером rescheduled и новой записью booked. Проверка ёмкости нового окна
// выполняется в сериализуемой транзакции, старое окно переносимого
// бронирования при подсчете не учитывается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, newDate=%s, newTime=%s",
		req.BookingID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Проверяем права доступа: владелец или менеджер партнера
	if err := uc.checkAccess(ctx, booking, req.UserID); err != nil {
		return nil, err
	}

	// 5. Перенести можно только бронирование в статусе booked
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled",
			booking.ID, booking.Status)
		return nil, ErrCannotReschedule
	}

	// 6. Получаем недельное расписание партнера
	weekly, err := uc.availabilityRepo.GetWeekly(ctx, booking.PartnerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("RescheduleBooking: no availability configured for partner=%d", booking.PartnerID)
			return nil, ErrPartnerClosed
		}
		uc.logger.Error("RescheduleBooking: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	day := weekly.Day(req.NewDate.Weekday())
	if !day.Enabled {
		uc.logger.Warn("RescheduleBooking: partner=%d is closed on %s",
			booking.PartnerID, req.NewDate.Format(domain.DateFormat))
		return nil, ErrPartnerClosed
	}

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем правила бронирования с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, booking.PartnerID, &booking.CategoryID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		if config == nil {
			config = domain.DefaultBookingConfig()
		}

		// 7.2. Валидация новой даты и времени
		if err := validateDate(req.NewDate, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
			return err
		}

		if err := validateBookingTime(req.NewDate, req.NewStartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleBooking: booking time validation failed: %v", err)
			return err
		}

		// 7.3. Новое окно должно целиком помещаться в рабочий блок
		// Длительность при переносе не меняется
		if err := validateWithinWorkingBlocks(day, req.NewStartTime, booking.DurationMinutes); err != nil {
			uc.logger.Warn("RescheduleBooking: window %s+%dmin outside working blocks",
				req.NewStartTime, booking.DurationMinutes)
			return err
		}

		// 7.4. Получаем все активные бронирования на новую дату с блокировкой (FOR UPDATE)
		filter := domain.PartnerBookingsFilter{
			PartnerID:       booking.PartnerID,
			StartDate:       &req.NewDate,
			EndDate:         &req.NewDate,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByPartnerWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.5. Проверяем ёмкость нового окна без учета самого бронирования
		overlappingCount, err := countOverlappingBookings(req.NewStartTime, booking.DurationMinutes, bookings, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}

		if overlappingCount >= config.MaxConcurrentBookings {
			uc.logger.Warn("RescheduleBooking: new window full, %d/%d spots taken",
				overlappingCount, config.MaxConcurrentBookings)
			return ErrCapacityExceeded
		}

		// 7.6. Переносим бронирование и дополняем историю:
		// маркер rescheduled, затем возврат в booked на новом окне
		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.NewDate, req.NewStartTime); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update schedule: %v", err)
			return fmt.Errorf("%w: failed to update schedule: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.AppendTimeline(txCtx, booking.ID, domain.StatusRescheduled); err != nil {
			uc.logger.Error("RescheduleBooking: failed to append timeline: %v", err)
			return fmt.Errorf("%w: failed to append timeline: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.AppendTimeline(txCtx, booking.ID, domain.StatusBooked); err != nil {
			uc.logger.Error("RescheduleBooking: failed to append timeline: %v", err)
			return fmt.Errorf("%w: failed to append timeline: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Перечитываем бронирование вместе с историей
	updated, err := uc.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to reload booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	timeline, err := uc.bookingRepo.GetTimeline(ctx, booking.ID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get timeline: %v", err)
		return nil, fmt.Errorf("%w: failed to get timeline: %v", ErrInternal, err)
	}
	updated.Timeline = timeline

	uc.logger.Info("RescheduleBooking: booking id=%d, number=%s moved to %s %s",
		updated.ID, updated.BookingNumber, updated.BookingDate.Format(domain.DateFormat), updated.StartTime)

	return fromDomainBooking(updated), nil
}

// checkAccess проверяет, что перенос выполняет владелец бронирования
// или менеджер партнера
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.SlotBooking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}

	partner, err := uc.partnerClient.GetPartner(ctx, booking.PartnerID)
	if err != nil {
		if errors.Is(err, partnerservice.ErrPartnerNotFound) {
			return ErrPartnerNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get partner id=%d: %v", booking.PartnerID, err)
		return fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
	}

	if !partner.IsManager(userID) {
		uc.logger.Warn("RescheduleBooking: user=%d has no access to booking=%d", userID, booking.ID)
		return ErrAccessDenied
	}

	return nil
}
