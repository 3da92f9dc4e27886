package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plindo/booking-service/internal/domain"
	bookingRepo "github.com/plindo/booking-service/internal/infra/storage/booking"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/internal/service/bookings/models"
	"github.com/plindo/booking-service/pkg/types"
)

// Стабы зависимостей

type memBookingRepo struct {
	booking     *domain.SlotBooking
	customerIDs []int64

	statusUpdates  []domain.BookingStatus
	paymentUpdates []domain.PaymentStatus
	timeline       []domain.BookingStatus
	cancelReason   string
	cancelFee      bool
	cancelCalled   bool
	rating         *int
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.SlotBooking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *memBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.SlotBooking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.SlotBooking{r.booking}, nil
}

func (r *memBookingRepo) GetByPartnerWithFilter(_ context.Context, _ domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.SlotBooking{r.booking}, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	r.statusUpdates = append(r.statusUpdates, status)
	r.booking.Status = status
	return nil
}

func (r *memBookingRepo) UpdatePaymentStatus(_ context.Context, _ int64, status domain.PaymentStatus) error {
	r.paymentUpdates = append(r.paymentUpdates, status)
	r.booking.Payment.Status = status
	return nil
}

func (r *memBookingRepo) Cancel(_ context.Context, _ int64, reason string, feeApplies bool) error {
	r.cancelCalled = true
	r.cancelReason = reason
	r.cancelFee = feeApplies
	r.booking.Status = domain.StatusCancelled
	return nil
}

func (r *memBookingRepo) SetRating(_ context.Context, _ int64, rating int) error {
	r.rating = &rating
	return nil
}

func (r *memBookingRepo) AppendTimeline(_ context.Context, _ int64, status domain.BookingStatus) error {
	r.timeline = append(r.timeline, status)
	return nil
}

func (r *memBookingRepo) GetTimeline(_ context.Context, _ int64) ([]domain.TimelineEntry, error) {
	entries := make([]domain.TimelineEntry, 0, len(r.timeline))
	for _, status := range r.timeline {
		entries = append(entries, domain.TimelineEntry{Status: status})
	}
	return entries, nil
}

func (r *memBookingRepo) CustomerIDsByPartner(_ context.Context, _ int64) ([]int64, error) {
	return r.customerIDs, nil
}

type stubConfigRepo struct {
	cfg *domain.PartnerBookingConfig
}

func (r *stubConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.PartnerBookingConfig, error) {
	if r.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.cfg, nil
}

type stubPartnerClient struct {
	partner *partnerservice.Partner
}

func (c *stubPartnerClient) GetPartner(_ context.Context, _ int64) (*partnerservice.Partner, error) {
	return c.partner, nil
}

type passTxManager struct{}

func (m *passTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (t *fixedTime) Now() time.Time {
	return t.now
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

// Фикстуры

const (
	ownerID    int64 = 7
	managerID  int64 = 100
	adminID    int64 = 1
	strangerID int64 = 55
)

var bookingDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testBooking() *domain.SlotBooking {
	return &domain.SlotBooking{
		ID:              1,
		BookingNumber:   "BK-01HTEST",
		CustomerID:      ownerID,
		PartnerID:       1,
		ServiceID:       3,
		CategoryID:      2,
		Fulfillment:     domain.FulfillmentOnsite,
		BookingDate:     bookingDate,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusBooked,
		ServiceName:     "Standard wash",
		ServicePrice:    100,
		Payment: domain.Payment{
			Method:        "card",
			Amount:        110,
			PlatformFee:   30,
			PartnerPayout: 80,
			Status:        domain.PaymentPending,
		},
	}
}

type fixture struct {
	repo    *memBookingRepo
	service *Service
	clock   *fixedTime
}

func newFixture(t *testing.T, booking *domain.SlotBooking, cfg *domain.PartnerBookingConfig) *fixture {
	t.Helper()

	repo := &memBookingRepo{booking: booking}
	clock := &fixedTime{now: time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)}
	svc := NewService(
		repo,
		&stubConfigRepo{cfg: cfg},
		&stubPartnerClient{partner: &partnerservice.Partner{ID: 1, Active: true, ManagerIDs: []int64{managerID}}},
		&passTxManager{},
		[]int64{adminID},
		&nopLogger{},
	)
	svc.timeProvider = clock

	return &fixture{repo: repo, service: svc, clock: clock}
}

// UpdateStatus

func TestUpdateStatus_TooEarlyForInProgress(t *testing.T) {
	f := newFixture(t, testBooking(), nil)
	f.clock.now = time.Date(2026, 3, 16, 9, 59, 0, 0, time.UTC)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "in_progress",
	})

	require.ErrorIs(t, err, ErrTooEarlyToStart)
	assert.Empty(t, f.repo.statusUpdates)
}

func TestUpdateStatus_InProgressAtSlotStart(t *testing.T) {
	f := newFixture(t, testBooking(), nil)
	f.clock.now = time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "in_progress",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.BookingStatus{domain.StatusInProgress}, f.repo.statusUpdates)
	assert.Equal(t, []domain.BookingStatus{domain.StatusInProgress}, f.repo.timeline)
	assert.Empty(t, f.repo.paymentUpdates)
}

func TestUpdateStatus_CompletedMarksPaymentPaid(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusInProgress
	f := newFixture(t, booking, nil)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.BookingStatus{domain.StatusCompleted}, f.repo.statusUpdates)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentPaid}, f.repo.paymentUpdates)
}

func TestUpdateStatus_SkippedStateRejected(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "completed",
	})

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, f.repo.statusUpdates)
}

func TestUpdateStatus_RequiresManager(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "in_progress",
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_DeliveryChainBuildsOrderedTimeline(t *testing.T) {
	booking := testBooking()
	booking.Fulfillment = domain.FulfillmentDelivery
	f := newFixture(t, booking, nil)
	f.repo.timeline = []domain.BookingStatus{domain.StatusBooked}

	for _, status := range []string{"in_progress", "picked", "out_for_delivery", "delivered"} {
		err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: managerID,
			Status: status,
		})
		require.NoError(t, err, "status=%s", status)
	}

	assert.Equal(t, []domain.BookingStatus{
		domain.StatusBooked,
		domain.StatusInProgress,
		domain.StatusPicked,
		domain.StatusOutForDelivery,
		domain.StatusDelivered,
	}, f.repo.timeline)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentPaid}, f.repo.paymentUpdates)
}

func TestUpdateStatus_RescheduledNotAccepted(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "rescheduled",
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

// Cancel

func TestCancel_LateCancellationSetsFeeFlag(t *testing.T) {
	cfg := domain.DefaultBookingConfig()
	cfg.CancellationWindowHours = 24
	f := newFixture(t, testBooking(), cfg)
	// Меньше суток до начала слота
	f.clock.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	err := f.service.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             ownerID,
		CancellationReason: "plans changed",
	})

	require.NoError(t, err)
	assert.True(t, f.repo.cancelCalled)
	assert.True(t, f.repo.cancelFee)
	assert.Equal(t, "plans changed", f.repo.cancelReason)
	assert.Equal(t, []domain.BookingStatus{domain.StatusCancelled}, f.repo.timeline)
}

func TestCancel_EarlyCancellationNoFee(t *testing.T) {
	cfg := domain.DefaultBookingConfig()
	cfg.CancellationWindowHours = 24
	f := newFixture(t, testBooking(), cfg)
	f.clock.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	err := f.service.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID: ownerID,
	})

	require.NoError(t, err)
	assert.False(t, f.repo.cancelFee)
}

func TestCancel_ManagerCanCancelCustomerBooking(t *testing.T) {
	f := newFixture(t, testBooking(), nil)
	f.clock.now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	err := f.service.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             managerID,
		CancellationReason: "bay closed for repairs",
	})

	require.NoError(t, err)
	assert.True(t, f.repo.cancelCalled)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID: strangerID,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.repo.cancelCalled)
}

func TestCancel_TerminalBookingRejected(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(t, booking, nil)

	err := f.service.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID: ownerID,
	})

	require.ErrorIs(t, err, ErrCannotCancel)
}

// Refund

func TestRefund_PaidPaymentRefunded(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	booking.Payment.Status = domain.PaymentPaid
	f := newFixture(t, booking, nil)

	err := f.service.Refund(context.Background(), 1, &models.RefundBookingRequest{UserID: adminID})

	require.NoError(t, err)
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentRefunded}, f.repo.paymentUpdates)
}

func TestRefund_PendingPaymentRejected(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.Refund(context.Background(), 1, &models.RefundBookingRequest{UserID: adminID})

	require.ErrorIs(t, err, ErrCannotRefund)
	assert.Empty(t, f.repo.paymentUpdates)
}

func TestRefund_AdminOnly(t *testing.T) {
	booking := testBooking()
	booking.Payment.Status = domain.PaymentPaid
	f := newFixture(t, booking, nil)

	err := f.service.Refund(context.Background(), 1, &models.RefundBookingRequest{UserID: managerID})

	require.ErrorIs(t, err, ErrAccessDenied)
}

// Rate

func TestRate_ServedBookingRatedOnce(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(t, booking, nil)

	err := f.service.Rate(context.Background(), 1, &models.RateBookingRequest{UserID: ownerID, Rating: 5})

	require.NoError(t, err)
	require.NotNil(t, f.repo.rating)
	assert.Equal(t, 5, *f.repo.rating)
}

func TestRate_AlreadyRatedRejected(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	existing := 4
	booking.Rating = &existing
	f := newFixture(t, booking, nil)

	err := f.service.Rate(context.Background(), 1, &models.RateBookingRequest{UserID: ownerID, Rating: 5})

	require.ErrorIs(t, err, ErrCannotRate)
}

func TestRate_NotServedRejected(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	err := f.service.Rate(context.Background(), 1, &models.RateBookingRequest{UserID: ownerID, Rating: 5})

	require.ErrorIs(t, err, ErrCannotRate)
}

func TestRate_OutOfRangeRejected(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(t, booking, nil)

	for _, rating := range []int{0, 6, -1} {
		err := f.service.Rate(context.Background(), 1, &models.RateBookingRequest{UserID: ownerID, Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidInput, "rating=%d", rating)
	}
}

func TestRate_OwnerOnly(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCompleted
	f := newFixture(t, booking, nil)

	err := f.service.Rate(context.Background(), 1, &models.RateBookingRequest{UserID: managerID, Rating: 5})

	require.ErrorIs(t, err, ErrAccessDenied)
}

// GetPartnerBookings

func TestGetPartnerBookings_DistinctCustomerCount(t *testing.T) {
	f := newFixture(t, testBooking(), nil)
	f.repo.customerIDs = []int64{7, 12, 40}

	resp, err := f.service.GetPartnerBookings(context.Background(), &models.GetPartnerBookingsRequest{
		UserID:    managerID,
		PartnerID: 1,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, 3, resp.DistinctCustomers)
}

func TestGetPartnerBookings_RequiresManager(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	_, err := f.service.GetPartnerBookings(context.Background(), &models.GetPartnerBookingsRequest{
		UserID:    strangerID,
		PartnerID: 1,
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

// GetByID

func TestGetByID_OwnerSeesTimeline(t *testing.T) {
	f := newFixture(t, testBooking(), nil)
	f.repo.timeline = []domain.BookingStatus{domain.StatusBooked}

	resp, err := f.service.GetByID(context.Background(), 1, ownerID)

	require.NoError(t, err)
	assert.Equal(t, "BK-01HTEST", resp.BookingNumber)
	require.Len(t, resp.Timeline, 1)
	assert.Equal(t, "booked", resp.Timeline[0].Status)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	_, err := f.service.GetByID(context.Background(), 1, strangerID)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t, testBooking(), nil)

	_, err := f.service.GetByID(context.Background(), 99, ownerID)

	require.ErrorIs(t, err, ErrBookingNotFound)
}
