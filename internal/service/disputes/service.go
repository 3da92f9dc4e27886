package disputes

import (
	"context"
	"errors"
	"fmt"

	"github.com/plindo/booking-service/internal/domain"
	bookingRepo "github.com/plindo/booking-service/internal/infra/storage/booking"
	disputeRepo "github.com/plindo/booking-service/internal/infra/storage/dispute"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/disputes/models"
)

// Service сервис для работы со спорами по бронированиям
type Service struct {
	disputeRepo   DisputeRepository
	bookingRepo   BookingRepository
	partnerClient PartnerServiceClient
	adminIDs      []int64
	logger        Logger
}

// NewService создает новый экземпляр сервиса споров
func NewService(
	disputeRepo DisputeRepository,
	bookingRepo BookingRepository,
	partnerClient PartnerServiceClient,
	adminIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		disputeRepo:   disputeRepo,
		bookingRepo:   bookingRepo,
		partnerClient: partnerClient,
		adminIDs:      adminIDs,
		logger:        logger,
	}
}

// Open открывает спор по выполненному бронированию
// Спор может открыть только владелец бронирования; по бронированию
// одновременно может быть не больше одного открытого спора
func (s *Service) Open(ctx context.Context, req *models.OpenDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("Open: opening dispute for booking=%d by user=%d", req.BookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Open: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Open: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.UserID {
		s.logger.Warn("Open: user=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// Спор имеет смысл только по фактически выполненной услуге
	if !booking.IsServed() {
		s.logger.Warn("Open: booking id=%d is not served, status=%s", req.BookingID, booking.Status)
		return nil, ErrBookingNotServed
	}

	// Проверяем, нет ли уже открытого спора
	existing, err := s.disputeRepo.GetPendingByBookingID(ctx, req.BookingID)
	if err != nil && !errors.Is(err, disputeRepo.ErrDisputeNotFound) {
		s.logger.Error("Open: repository error checking open dispute for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("Open: booking id=%d already has open dispute id=%d", req.BookingID, existing.ID)
		return nil, ErrDisputeAlreadyOpen
	}

	dispute := &domain.Dispute{
		BookingID:  req.BookingID,
		CustomerID: req.UserID,
		Reason:     req.Reason,
		Evidence:   req.Evidence,
		Status:     domain.DisputePending,
	}

	created, err := s.disputeRepo.Create(ctx, dispute)
	if err != nil {
		s.logger.Error("Open: failed to create dispute for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Open: successfully opened dispute id=%d for booking=%d", created.ID, req.BookingID)
	return models.FromDomainDispute(created), nil
}

// Respond записывает ответ партнера на открытый спор
// Доступно только менеджерам партнера, к которому относится бронирование
func (s *Service) Respond(ctx context.Context, disputeID int64, req *models.RespondDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("Respond: responding to dispute id=%d by user=%d", disputeID, req.UserID)

	dispute, err := s.getDispute(ctx, "Respond", disputeID)
	if err != nil {
		return nil, err
	}

	if !dispute.IsPending() {
		s.logger.Warn("Respond: dispute id=%d is already resolved", disputeID)
		return nil, ErrDisputeClosed
	}

	booking, err := s.bookingRepo.GetByID(ctx, dispute.BookingID)
	if err != nil {
		s.logger.Error("Respond: failed to get booking id=%d: %v", dispute.BookingID, err)
		return nil, fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, booking.PartnerID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.disputeRepo.SetPartnerResponse(ctx, disputeID, req.Response); err != nil {
		s.logger.Error("Respond: repository error for dispute id=%d: %v", disputeID, err)
		return nil, fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	dispute.PartnerResponse = &req.Response

	s.logger.Info("Respond: successfully recorded partner response for dispute id=%d", disputeID)
	return models.FromDomainDispute(dispute), nil
}

// Resolve закрывает спор с заметкой о решении
// Доступно только администраторам платформы
func (s *Service) Resolve(ctx context.Context, disputeID int64, req *models.ResolveDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("Resolve: resolving dispute id=%d by user=%d", disputeID, req.UserID)

	if !s.isAdmin(req.UserID) {
		s.logger.Warn("Resolve: user=%d is not a platform admin", req.UserID)
		return nil, ErrAccessDenied
	}

	dispute, err := s.getDispute(ctx, "Resolve", disputeID)
	if err != nil {
		return nil, err
	}

	if !dispute.IsPending() {
		s.logger.Warn("Resolve: dispute id=%d is already resolved", disputeID)
		return nil, ErrDisputeClosed
	}

	if err := s.disputeRepo.Resolve(ctx, disputeID, req.UserID, req.ResolutionNote); err != nil {
		s.logger.Error("Resolve: repository error for dispute id=%d: %v", disputeID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	// Перечитываем спор, чтобы вернуть актуальные resolved_at и updated_at
	resolved, err := s.getDispute(ctx, "Resolve", disputeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resolve: successfully resolved dispute id=%d", disputeID)
	return models.FromDomainDispute(resolved), nil
}

// Вспомогательные методы

func (s *Service) getDispute(ctx context.Context, method string, id int64) (*domain.Dispute, error) {
	dispute, err := s.disputeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, disputeRepo.ErrDisputeNotFound) {
			s.logger.Warn("%s: dispute id=%d not found", method, id)
			return nil, ErrDisputeNotFound
		}
		s.logger.Error("%s: repository error for dispute id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return dispute, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером партнера
func (s *Service) checkManagerAccess(ctx context.Context, partnerID int64, userID int64) error {
	partner, err := s.partnerClient.GetPartner(ctx, partnerID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPartnerNotFound) {
			s.logger.Warn("checkManagerAccess: partner id=%d not found", partnerID)
			return ErrAccessDenied
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

func (s *Service) isAdmin(userID int64) bool {
	for _, id := range s.adminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
