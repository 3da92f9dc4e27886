package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/plindo/booking-service/internal/domain"
	orderRepo "github.com/plindo/booking-service/internal/infra/storage/order"
	partnerClient "github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/orders/models"
)

// Service сервис для работы с заказами товаров
type Service struct {
	orderRepo     OrderRepository
	partnerClient PartnerServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	partnerClient PartnerServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:     orderRepo,
		partnerClient: partnerClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает заказ товаров у партнера
// Итоговая сумма всегда считается на сервере по зафиксированным ценам позиций
func (s *Service) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.OrderResponse, error) {
	s.logger.Info("Create: creating order for customer=%d, partner=%d, items=%d",
		req.CustomerID, req.PartnerID, len(req.Items))

	// Партнер должен существовать и быть активным
	partner, err := s.partnerClient.GetPartner(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPartnerNotFound) {
			s.logger.Warn("Create: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		s.logger.Error("Create: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Create - failed to get partner: %v", ErrInternal, err)
	}
	if !partner.Active {
		s.logger.Warn("Create: partner id=%d is not active", req.PartnerID)
		return nil, fmt.Errorf("%w: partner is not active", ErrInvalidInput)
	}

	items := req.ToDomainItems()

	order := &domain.ProductOrder{
		OrderNumber: s.newOrderNumber(),
		PartnerID:   req.PartnerID,
		CustomerID:  req.CustomerID,
		Items:       items,
		TotalAmount: domain.ComputeTotal(items),
		Status:      domain.OrderPending,
	}

	// Заказ и позиции записываются атомарно
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		_, err := s.orderRepo.Create(ctx, order)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created order id=%d, number=%s, total=%.2f",
		order.ID, order.OrderNumber, order.TotalAmount)
	return models.FromDomainOrder(order), nil
}

// GetPartnerOrders получает заказы партнера с опциональным фильтром по статусу
// Доступно только менеджерам партнера
func (s *Service) GetPartnerOrders(ctx context.Context, req *models.GetPartnerOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetPartnerOrders: fetching orders for partner=%d by user=%d", req.PartnerID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.PartnerID, req.UserID); err != nil {
		return nil, err
	}

	var domainStatus *domain.OrderStatus
	if req.Status != nil {
		status, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPartnerOrders: invalid status=%s for partner=%d", *req.Status, req.PartnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	orders, err := s.orderRepo.GetByPartner(ctx, req.PartnerID, domainStatus)
	if err != nil {
		s.logger.Error("GetPartnerOrders: repository error for partner=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: GetPartnerOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPartnerOrders: successfully fetched %d orders for partner=%d", len(orders), req.PartnerID)
	return models.FromDomainOrderList(orders), nil
}

// UpdateStatus обновляет статус заказа по машине состояний заказов
// Доступно только менеджерам партнера
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, req *models.UpdateOrderStatusRequest) error {
	s.logger.Info("UpdateStatus: updating order id=%d to status=%s by user=%d",
		orderID, req.Status, req.UserID)

	order, err := s.getOrder(ctx, "UpdateStatus", orderID)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, order.PartnerID, req.UserID); err != nil {
		return err
	}

	newStatus, err := models.ToDomainOrderStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for order id=%d", req.Status, orderID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := domain.CheckOrderTransition(order.Status, newStatus); err != nil {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for order id=%d",
			order.Status, newStatus, orderID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("UpdateStatus: order id=%d not found during update", orderID)
			return ErrOrderNotFound
		}
		s.logger.Error("UpdateStatus: repository error for order id=%d: %v", orderID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated order id=%d to status=%s", orderID, newStatus)
	return nil
}

// Cancel отменяет заказ
// Клиент может отменить свой заказ, менеджер - любой заказ партнера
func (s *Service) Cancel(ctx context.Context, orderID int64, req *models.CancelOrderRequest) error {
	s.logger.Info("Cancel: cancelling order id=%d by user=%d", orderID, req.UserID)

	order, err := s.getOrder(ctx, "Cancel", orderID)
	if err != nil {
		return err
	}

	if order.IsTerminal() {
		s.logger.Warn("Cancel: order id=%d cannot be cancelled, status=%s", orderID, order.Status)
		return ErrCannotCancel
	}

	// Владелец отменяет свой заказ, иначе требуются права менеджера
	if order.CustomerID != req.UserID {
		if err := s.checkManagerAccess(ctx, order.PartnerID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel order id=%d", req.UserID, orderID)
			return ErrAccessDenied
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, domain.OrderCancelled); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("Cancel: order id=%d not found during cancellation", orderID)
			return ErrOrderNotFound
		}
		s.logger.Error("Cancel: repository error for order id=%d: %v", orderID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled order id=%d", orderID)
	return nil
}

// Вспомогательные методы

func (s *Service) getOrder(ctx context.Context, method string, id int64) (*domain.ProductOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", method, id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return order, nil
}

// newOrderNumber генерирует уникальный номер заказа на основе ULID
// ULID монотонно сортируются по времени создания
func (s *Service) newOrderNumber() string {
	return "ORD-" + ulid.Make().String()
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
