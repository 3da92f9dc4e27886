package create_slot_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plindo/booking-service/internal/domain"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	"github.com/plindo/booking-service/internal/integrations/customerservice"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/pkg/ptr"
	"github.com/plindo/booking-service/pkg/types"
)

type memBookingRepo struct {
	bookings []*domain.SlotBooking
	nextID   int64
	timeline []domain.BookingStatus
}

func (m *memBookingRepo) Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error) {
	m.nextID++
	created := *b
	created.ID = m.nextID
	m.bookings = append(m.bookings, &created)
	return &created, nil
}

func (m *memBookingRepo) GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error) {
	return m.bookings, nil
}

func (m *memBookingRepo) AppendTimeline(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	m.timeline = append(m.timeline, status)
	return nil
}

type stubAvailabilityRepo struct {
	weekly *domain.WeeklyAvailability
	err    error
}

func (s *stubAvailabilityRepo) GetWeekly(ctx context.Context, partnerID int64) (*domain.WeeklyAvailability, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.weekly, nil
}

type stubConfigRepo struct {
	cfg *domain.PartnerBookingConfig
}

func (s *stubConfigRepo) GetConfigWithHierarchy(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error) {
	if s.cfg == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return s.cfg, nil
}

type stubPartnerClient struct {
	partner    *partnerservice.Partner
	partnerErr error
	service    *partnerservice.Service
	serviceErr error
}

func (s *stubPartnerClient) GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error) {
	if s.partnerErr != nil {
		return nil, s.partnerErr
	}
	return s.partner, nil
}

func (s *stubPartnerClient) GetService(ctx context.Context, partnerID, serviceID int64) (*partnerservice.Service, error) {
	if s.serviceErr != nil {
		return nil, s.serviceErr
	}
	return s.service, nil
}

type stubCustomerClient struct {
	vehicle *customerservice.Vehicle
	err     error
}

func (s *stubCustomerClient) GetSelectedVehicleWithGracefulDegradation(ctx context.Context, customerID int64) (*customerservice.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vehicle, nil
}

type passTxManager struct{}

func (passTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 16 марта 2026 года - понедельник
var (
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func mondayWeekly(blocks ...domain.TimeBlock) *domain.WeeklyAvailability {
	weekly := domain.NewWeeklyAvailability(1)
	weekly.Days[int(time.Monday)] = domain.DayAvailability{
		Weekday: time.Monday,
		Enabled: true,
		Blocks:  blocks,
	}
	return weekly
}

func block(open, close string) domain.TimeBlock {
	return domain.TimeBlock{Open: types.TimeString(open), Close: types.TimeString(close)}
}

func testService() *partnerservice.Service {
	return &partnerservice.Service{
		ID:              10,
		PartnerID:       1,
		CategoryID:      2,
		Name:            "Комплексная мойка",
		Price:           ptr.Ptr(100.0),
		DurationMinutes: 60,
	}
}

func testRequest() *Request {
	return &Request{
		CustomerID:    7,
		PartnerID:     1,
		ServiceID:     10,
		Fulfillment:   domain.FulfillmentOnsite,
		Date:          testDate,
		StartTime:     types.TimeString("10:00"),
		PaymentMethod: "card",
	}
}

type fixture struct {
	bookingRepo    *memBookingRepo
	partnerClient  *stubPartnerClient
	customerClient *stubCustomerClient
	cfg            *domain.PartnerBookingConfig
	uc             *UseCase
}

func newFixture(cfg *domain.PartnerBookingConfig, weekly *domain.WeeklyAvailability) *fixture {
	f := &fixture{
		bookingRepo: &memBookingRepo{},
		partnerClient: &stubPartnerClient{
			partner: &partnerservice.Partner{ID: 1, Active: true},
			service: testService(),
		},
		customerClient: &stubCustomerClient{
			vehicle: &customerservice.Vehicle{
				ID:           3,
				CustomerID:   7,
				Brand:        "Toyota",
				Model:        "Camry",
				LicensePlate: "A123BC",
			},
		},
		cfg: cfg,
	}
	f.uc = NewUseCase(
		f.bookingRepo,
		&stubAvailabilityRepo{weekly: weekly},
		&stubConfigRepo{cfg: cfg},
		f.partnerClient,
		f.customerClient,
		passTxManager{},
		domain.CommissionRates{CustomerPct: 10, PartnerPct: 20},
		nopLogger{},
	)
	f.uc.timeProvider = &fixedTime{now: testNow}
	return f
}

func defaultTestConfig() *domain.PartnerBookingConfig {
	return &domain.PartnerBookingConfig{
		ID:                    1,
		PartnerID:             1,
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 2,
	}
}

func TestExecute_CreatesBookingWithPaymentBreakdown(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.BookingNumber, "BK-"))
	assert.Equal(t, "booked", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Комплексная мойка", resp.ServiceName)

	// Цена 100, комиссия клиента 10%, комиссия партнера 20%
	assert.InDelta(t, 110.0, resp.PaymentAmount, 0.001)
	assert.InDelta(t, 80.0, resp.PartnerPayout, 0.001)
	assert.InDelta(t, 30.0, resp.PlatformFee, 0.001)
	assert.Equal(t, "pending", resp.PaymentStatus)

	// Снимок автомобиля
	require.NotNil(t, resp.VehicleBrand)
	assert.Equal(t, "Toyota", *resp.VehicleBrand)

	// Первая запись истории создается в той же транзакции
	require.Len(t, f.bookingRepo.timeline, 1)
	assert.Equal(t, domain.StatusBooked, f.bookingRepo.timeline[0])
}

func TestExecute_CapacityLimitEnforced(t *testing.T) {
	// Ёмкость окна 2: два бронирования проходят, третье отклоняется
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))

	for i := 0; i < 2; i++ {
		_, err := f.uc.Execute(context.Background(), testRequest())
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, f.bookingRepo.bookings, 2)
}

func TestExecute_SharedBoundaryDoesNotConsumeCapacity(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxConcurrentBookings = 1
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	_, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// Окно 11:00-12:00 граничит с занятым 10:00-11:00, пересечения нет
	next := testRequest()
	next.StartTime = types.TimeString("11:00")
	_, err = f.uc.Execute(context.Background(), next)
	require.NoError(t, err)
}

func TestExecute_CancelledBookingFreesCapacity(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxConcurrentBookings = 1
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	f.bookingRepo.bookings[0].Status = domain.StatusCancelled
	assert.Equal(t, resp.ID, f.bookingRepo.bookings[0].ID)

	_, err = f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
}

func TestExecute_DegradedCustomerServiceCreatesWithoutSnapshot(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))
	f.customerClient.vehicle = nil
	f.customerClient.err = customerservice.ErrServiceDegraded

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.VehicleBrand)
	assert.Nil(t, resp.VehicleModel)
	assert.Nil(t, resp.VehiclePlate)
}

func TestExecute_CommissionOverridesFromConfig(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.CustomerCommissionPct = ptr.Ptr(5.0)
	cfg.PartnerCommissionPct = ptr.Ptr(15.0)
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.InDelta(t, 105.0, resp.PaymentAmount, 0.001)
	assert.InDelta(t, 85.0, resp.PartnerPayout, 0.001)
	assert.InDelta(t, 20.0, resp.PlatformFee, 0.001)
}

func TestExecute_DefaultConfigWhenNoneConfigured(t *testing.T) {
	f := newFixture(nil, mondayWeekly(block("09:00", "18:00")))

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "booked", resp.Status)
}

func TestExecute_InactivePartnerRejected(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))
	f.partnerClient.partner.Active = false

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPartnerInactive)
}

func TestExecute_UnsupportedFulfillmentRejected(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))
	f.partnerClient.service.Fulfillment = []string{"onsite"}

	req := testRequest()
	req.Fulfillment = domain.FulfillmentDelivery
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFulfillmentNotSupported)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	// Настроен только вторник, запрос на понедельник
	weekly := domain.NewWeeklyAvailability(1)
	weekly.Days[int(time.Tuesday)] = domain.DayAvailability{
		Weekday: time.Tuesday,
		Enabled: true,
		Blocks:  []domain.TimeBlock{block("09:00", "18:00")},
	}
	f := newFixture(defaultTestConfig(), weekly)

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPartnerClosed)
}

func TestExecute_WindowOutsideWorkingBlocksRejected(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "10:30")))

	// Окно 10:00-11:00 выходит за пределы блока 09:00-10:30
	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_TooLateToBookToday(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MinBookingNoticeMinutes = 120
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	// Запрос на сегодня в 09:00 на окно 10:00 при требуемом уведомлении 2 часа
	f.uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_AdvanceBookingLimitRejected(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.AdvanceBookingDays = 3
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ZeroCapacityRejected(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.MaxConcurrentBookings = 0
	f := newFixture(cfg, mondayWeekly(block("09:00", "18:00")))

	_, err := f.uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_ServiceDurationOverridesSlotDuration(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))
	f.partnerClient.service.DurationMinutes = 90

	resp, err := f.uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestExecute_InvalidInputRejected(t *testing.T) {
	f := newFixture(defaultTestConfig(), mondayWeekly(block("09:00", "18:00")))

	req := testRequest()
	req.Fulfillment = "teleport"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = testRequest()
	req.PaymentMethod = ""
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
