package get_available_windows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plindo/booking-service/internal/domain"
	availabilityRepo "github.com/plindo/booking-service/internal/infra/storage/availability"
	configRepo "github.com/plindo/booking-service/internal/infra/storage/config"
	"github.com/plindo/booking-service/internal/integrations/partnerservice"
	"github.com/plindo/booking-service/pkg/ptr"
	"github.com/plindo/booking-service/pkg/types"
)

type stubBookingRepo struct {
	bookings []*domain.SlotBooking
}

func (s *stubBookingRepo) GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error) {
	return s.bookings, nil
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
	partner *partnerservice.Partner
	err     error
}

func (s *stubPartnerClient) GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.partner, nil
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

func newTestUseCase(
	bookings []*domain.SlotBooking,
	weekly *domain.WeeklyAvailability,
	cfg *domain.PartnerBookingConfig,
	now time.Time,
) *UseCase {
	uc := NewUseCase(
		&stubBookingRepo{bookings: bookings},
		&stubAvailabilityRepo{weekly: weekly},
		&stubConfigRepo{cfg: cfg},
		&stubPartnerClient{partner: &partnerservice.Partner{ID: 1, Active: true}},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func enabledDay(weekday time.Weekday, blocks ...domain.TimeBlock) *domain.WeeklyAvailability {
	weekly := domain.NewWeeklyAvailability(1)
	weekly.Days[int(weekday)] = domain.DayAvailability{
		Weekday: weekday,
		Enabled: true,
		Blocks:  blocks,
	}
	return weekly
}

func block(open, close string) domain.TimeBlock {
	return domain.TimeBlock{Open: types.TimeString(open), Close: types.TimeString(close)}
}

func activeBooking(start string, durationMinutes int) *domain.SlotBooking {
	return &domain.SlotBooking{
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusBooked,
	}
}

// 16 марта 2026 года - понедельник
var (
	testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func TestExecute_GeneratesWindowsWithinBlocks(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "12:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 2,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 3)

	assert.Equal(t, types.TimeString("09:00"), resp.Windows[0].Start)
	assert.Equal(t, types.TimeString("10:00"), resp.Windows[0].End)
	assert.Equal(t, types.TimeString("11:00"), resp.Windows[2].Start)

	for _, w := range resp.Windows {
		assert.Equal(t, 2, w.RemainingCapacity)
		assert.Equal(t, 2, w.TotalCapacity)
	}
}

func TestExecute_WindowNotFittingBlockIsDropped(t *testing.T) {
	// Блок 90 минут при длительности окна 60 минут дает ровно одно окно
	weekly := enabledDay(time.Monday, block("09:00", "10:30"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 1,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Windows[0].Start)
}

func TestExecute_DisabledDayReturnsEmptyList(t *testing.T) {
	// Понедельник выключен, настроен только вторник
	weekly := enabledDay(time.Tuesday, block("09:00", "18:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 3,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestExecute_ZeroCapacityReturnsEmptyList(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "18:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 0,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestExecute_FullyBookedWindowStaysWithZeroCapacity(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "11:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 1,
	}

	bookings := []*domain.SlotBooking{
		activeBooking("09:00", 60),
	}

	uc := newTestUseCase(bookings, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)

	assert.Equal(t, 0, resp.Windows[0].RemainingCapacity)
	assert.Equal(t, 1, resp.Windows[1].RemainingCapacity)
}

func TestExecute_SharedBoundaryIsNotOverlap(t *testing.T) {
	weekly := enabledDay(time.Monday, block("10:00", "12:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 1,
	}

	// Бронирование 09:00-10:00 граничит с окном 10:00-11:00, но не пересекается
	bookings := []*domain.SlotBooking{
		activeBooking("09:00", 60),
	}

	uc := newTestUseCase(bookings, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.Equal(t, 1, resp.Windows[0].RemainingCapacity)
}

func TestExecute_PartialOverlapConsumesCapacity(t *testing.T) {
	weekly := enabledDay(time.Monday, block("11:00", "13:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 1,
	}

	// Бронирование 11:20-11:40 пересекает окна 11:00-11:30 и 11:30-12:00
	bookings := []*domain.SlotBooking{
		activeBooking("11:20", 20),
	}

	uc := newTestUseCase(bookings, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 4)

	assert.Equal(t, 0, resp.Windows[0].RemainingCapacity) // 11:00-11:30
	assert.Equal(t, 0, resp.Windows[1].RemainingCapacity) // 11:30-12:00
	assert.Equal(t, 1, resp.Windows[2].RemainingCapacity) // 12:00-12:30
	assert.Equal(t, 1, resp.Windows[3].RemainingCapacity) // 12:30-13:00
}

func TestExecute_CancelledBookingFreesCapacity(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "10:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 1,
	}

	cancelled := activeBooking("09:00", 60)
	cancelled.Status = domain.StatusCancelled

	uc := newTestUseCase([]*domain.SlotBooking{cancelled}, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, 1, resp.Windows[0].RemainingCapacity)
}

func TestExecute_MinNoticeFiltersTodayWindows(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "18:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:     60,
		MaxConcurrentBookings:   1,
		MinBookingNoticeMinutes: 120,
	}

	// Запрос на сегодня в 10:30 с минимальным уведомлением 2 часа:
	// первое доступное окно начинается не раньше 12:30, то есть 13:00
	now := time.Date(2026, 3, 16, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(nil, weekly, cfg, now)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Windows)
	assert.Equal(t, types.TimeString("13:00"), resp.Windows[0].Start)
}

func TestExecute_PastDateRejected(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "18:00"))
	cfg := &domain.PartnerBookingConfig{SlotDurationMinutes: 30, MaxConcurrentBookings: 1}

	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, weekly, cfg, now)

	_, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_AdvanceBookingLimitRejected(t *testing.T) {
	weekly := enabledDay(time.Monday, block("09:00", "18:00"))
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 1,
		AdvanceBookingDays:    3,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	_, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_NoAvailabilityConfiguredReturnsEmptyList(t *testing.T) {
	cfg := &domain.PartnerBookingConfig{SlotDurationMinutes: 30, MaxConcurrentBookings: 1}

	uc := NewUseCase(
		&stubBookingRepo{},
		&stubAvailabilityRepo{err: availabilityRepo.ErrAvailabilityNotFound},
		&stubConfigRepo{cfg: cfg},
		&stubPartnerClient{partner: &partnerservice.Partner{ID: 1, Active: true}},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestExecute_MultipleBlocksProduceWindowsPerBlock(t *testing.T) {
	weekly := enabledDay(time.Monday,
		block("09:00", "10:00"),
		block("14:00", "15:00"),
	)
	cfg := &domain.PartnerBookingConfig{
		SlotDurationMinutes:   30,
		MaxConcurrentBookings: 1,
	}

	uc := newTestUseCase(nil, weekly, cfg, testNow)

	resp, err := uc.Execute(context.Background(), &Request{PartnerID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 4)

	assert.Equal(t, types.TimeString("09:00"), resp.Windows[0].Start)
	assert.Equal(t, types.TimeString("09:30"), resp.Windows[1].Start)
	assert.Equal(t, types.TimeString("14:00"), resp.Windows[2].Start)
	assert.Equal(t, types.TimeString("14:30"), resp.Windows[3].Start)
}

func TestExecute_InvalidRequestRejected(t *testing.T) {
	uc := newTestUseCase(nil, domain.NewWeeklyAvailability(1), nil, testNow)

	_, err := uc.Execute(context.Background(), &Request{PartnerID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{PartnerID: 1, CategoryID: ptr.Ptr(int64(-5)), Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
