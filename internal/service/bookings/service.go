package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/plindo/booking-service/internal/domain"
	bookingRepo "github.com/plindo/booking-service/internal/infra/storage/booking"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	configRepo    ConfigRepository
	partnerClient PartnerServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	adminIDs      []int64
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	partnerClient PartnerServiceClient,
	txManager TransactionManager,
	adminIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		configRepo:    configRepo,
		partnerClient: partnerClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		adminIDs:      adminIDs,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID вместе с историей статусов
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером партнера
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	timeline, err := s.bookingRepo.GetTimeline(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to load timeline for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - timeline error: %v", ErrInternal, err)
	}
	booking.Timeline = timeline

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPartnerBookings получает бронирования партнера с гибкой фильтрацией
// Поддерживает фильтрацию по категории, периоду, статусу и включению отменённых
// Доступно только менеджерам партнера
func (s *Service) GetPartnerBookings(ctx context.Context, req *models.GetPartnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPartnerBookings: fetching bookings for partner=%d, user=%d", req.PartnerID, req.UserID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.PartnerID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPartnerBookings: invalid filter for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByPartnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPartnerBookings: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: GetPartnerBookings - repository error: %v", ErrInternal, err)
	}

	// Количество уникальных клиентов партнера за всё время (независимо от фильтра)
	customerIDs, err := s.bookingRepo.CustomerIDsByPartner(ctx, req.PartnerID)
	if err != nil {
		s.logger.Error("GetPartnerBookings: failed to count customers for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: GetPartnerBookings - customers error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(bookings)
	resp.DistinctCustomers = len(customerIDs)

	s.logger.Info("GetPartnerBookings: successfully fetched %d bookings for partner=%d (%d distinct customers)",
		len(bookings), req.PartnerID, len(customerIDs))
	return resp, nil
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование, менеджер - любое бронирование партнера
// Отмена позже cancellationWindowHours до начала слота помечается флагом штрафа
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Владелец отменяет своё бронирование, иначе требуются права менеджера
	if booking.CustomerID != req.UserID {
		if err := s.checkManagerAccess(ctx, booking.PartnerID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	feeApplies, err := s.lateCancellation(ctx, booking)
	if err != nil {
		return err
	}

	// Отмена и запись в историю выполняются атомарно
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason, feeApplies); err != nil {
			return err
		}
		return s.bookingRepo.AppendTimeline(ctx, bookingID, domain.StatusCancelled)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, feeApplies=%v", bookingID, feeApplies)
	return nil
}

// UpdateStatus обновляет статус бронирования по машине состояний
// Доступно только менеджерам партнера
// Переход в in_progress возможен не раньше начала забронированного слота
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	// Проверяем права доступа (только менеджер партнера)
	if err := s.checkManagerAccess(ctx, booking.PartnerID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Валидируем переход по машине состояний
	if err := domain.CheckTransition(booking.Status, newStatus, booking.Fulfillment); err != nil {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d: %v",
			booking.Status, newStatus, bookingID, err)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	// Работа не может начаться раньше забронированного окна
	if newStatus == domain.StatusInProgress {
		slotStart, err := booking.StartTime.OnDate(booking.BookingDate)
		if err != nil {
			s.logger.Error("UpdateStatus: invalid start time for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - invalid start time: %v", ErrInternal, err)
		}
		if s.timeProvider.Now().Before(slotStart) {
			s.logger.Warn("UpdateStatus: booking id=%d starts at %s, too early for in_progress",
				bookingID, slotStart.Format(time.RFC3339))
			return ErrTooEarlyToStart
		}
	}

	// Обновление статуса, запись в историю и фиксация оплаты выполняются атомарно
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			return err
		}
		if err := s.bookingRepo.AppendTimeline(ctx, bookingID, newStatus); err != nil {
			return err
		}

		// Успешное выполнение услуги фиксирует оплату
		if (newStatus == domain.StatusCompleted || newStatus == domain.StatusDelivered) &&
			booking.Payment.Status == domain.PaymentPending {
			return s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, domain.PaymentPaid)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Refund возвращает платёж по бронированию
// Доступно только администраторам платформы; возврат возможен только из статуса paid
func (s *Service) Refund(ctx context.Context, bookingID int64, req *models.RefundBookingRequest) error {
	s.logger.Info("Refund: refunding booking id=%d by user=%d", bookingID, req.UserID)

	if !s.isAdmin(req.UserID) {
		s.logger.Warn("Refund: user=%d is not a platform admin", req.UserID)
		return ErrAccessDenied
	}

	booking, err := s.getBooking(ctx, "Refund", bookingID)
	if err != nil {
		return err
	}

	if booking.Payment.Status != domain.PaymentPaid {
		s.logger.Warn("Refund: booking id=%d payment status=%s, refund rejected",
			bookingID, booking.Payment.Status)
		return ErrCannotRefund
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, domain.PaymentRefunded); err != nil {
		s.logger.Error("Refund: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Refund - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Refund: successfully refunded booking id=%d", bookingID)
	return nil
}

// Rate сохраняет оценку клиента по выполненному бронированию
// Оценить можно только своё выполненное бронирование и только один раз
func (s *Service) Rate(ctx context.Context, bookingID int64, req *models.RateBookingRequest) error {
	s.logger.Info("Rate: rating booking id=%d by user=%d, rating=%d", bookingID, req.UserID, req.Rating)

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		s.logger.Warn("Rate: rating=%d out of range for booking id=%d", req.Rating, bookingID)
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	booking, err := s.getBooking(ctx, "Rate", bookingID)
	if err != nil {
		return err
	}

	if booking.CustomerID != req.UserID {
		s.logger.Warn("Rate: user=%d is not the owner of booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeRated() {
		s.logger.Warn("Rate: booking id=%d cannot be rated, status=%s, rated=%v",
			bookingID, booking.Status, booking.Rating != nil)
		return ErrCannotRate
	}

	if err := s.bookingRepo.SetRating(ctx, bookingID, req.Rating); err != nil {
		s.logger.Error("Rate: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Rate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Rate: successfully rated booking id=%d with %d", bookingID, req.Rating)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.SlotBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// lateCancellation проверяет, попадает ли отмена в платное окно перед началом слота
func (s *Service) lateCancellation(ctx context.Context, booking *domain.SlotBooking) (bool, error) {
	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, booking.PartnerID, &booking.CategoryID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			cfg = domain.DefaultBookingConfig()
		} else {
			s.logger.Error("lateCancellation: failed to get config for partner=%d: %v", booking.PartnerID, err)
			return false, fmt.Errorf("%w: lateCancellation - config error: %v", ErrInternal, err)
		}
	}

	if cfg.CancellationWindowHours <= 0 {
		return false, nil
	}

	slotStart, err := booking.StartTime.OnDate(booking.BookingDate)
	if err != nil {
		s.logger.Error("lateCancellation: invalid start time for booking id=%d: %v", booking.ID, err)
		return false, fmt.Errorf("%w: lateCancellation - invalid start time: %v", ErrInternal, err)
	}

	deadline := slotStart.Add(-time.Duration(cfg.CancellationWindowHours) * time.Hour)
	return s.timeProvider.Now().After(deadline), nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер партнера
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.SlotBooking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.CustomerID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером партнера
	if err := s.checkManagerAccess(ctx, booking.PartnerID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером партнера
func (s *Service) checkManagerAccess(ctx context.Context, partnerID int64, userID int64) error {
	// Получаем партнера через PartnerService
	partner, err := s.partnerClient.GetPartner(ctx, partnerID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPartnerNotFound) {
			s.logger.Warn("checkManagerAccess: partner id=%d not found", partnerID)
			return ErrPartnerNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get partner id=%d: %v", partnerID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get partner: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	if partner.IsManager(userID) {
		s.logger.Info("checkManagerAccess: user=%d is manager of partner=%d", userID, partnerID)
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of partner=%d", userID, partnerID)
	return ErrAccessDenied
}

func (s *Service) isAdmin(userID int64) bool {
	for _, id := range s.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
