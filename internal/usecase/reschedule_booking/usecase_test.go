package reschedule_booking

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
	"github.com/plindo/booking-service/pkg/types"
)

type memBookingRepo struct {
	byID     map[int64]*domain.SlotBooking
	timeline map[int64][]domain.TimelineEntry
}

func newMemBookingRepo(bookings ...*domain.SlotBooking) *memBookingRepo {
	repo := &memBookingRepo{
		byID:     make(map[int64]*domain.SlotBooking),
		timeline: make(map[int64][]domain.TimelineEntry),
	}
	for _, b := range bookings {
		repo.byID[b.ID] = b
		repo.timeline[b.ID] = []domain.TimelineEntry{
			{BookingID: b.ID, Status: domain.StatusBooked},
		}
	}
	return repo
}

func (m *memBookingRepo) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memBookingRepo) GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error) {
	var result []*domain.SlotBooking
	for _, b := range m.byID {
		if b.PartnerID == filter.PartnerID && isSameDay(b.BookingDate, *filter.StartDate) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *memBookingRepo) UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	b := m.byID[id]
	b.BookingDate = date
	b.StartTime = startTime
	b.Status = domain.StatusBooked
	return nil
}

func (m *memBookingRepo) AppendTimeline(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	m.timeline[bookingID] = append(m.timeline[bookingID], domain.TimelineEntry{
		BookingID: bookingID,
		Status:    status,
	})
	return nil
}

func (m *memBookingRepo) GetTimeline(ctx context.Context, bookingID int64) ([]domain.TimelineEntry, error) {
	return m.timeline[bookingID], nil
}

type stubAvailabilityRepo struct {
	weekly *domain.WeeklyAvailability
}

func (s *stubAvailabilityRepo) GetWeekly(ctx context.Context, partnerID int64) (*domain.WeeklyAvailability, error) {
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
}

func (s *stubPartnerClient) GetPartner(ctx context.Context, partnerID int64) (*partnerservice.Partner, error) {
	return s.partner, nil
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

// 16 и 17 марта 2026 года - понедельник и вторник
var (
	oldDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
)

func testBooking() *domain.SlotBooking {
	return &domain.SlotBooking{
		ID:              1,
		BookingNumber:   "BK-01HTEST",
		CustomerID:      7,
		PartnerID:       1,
		CategoryID:      2,
		BookingDate:     oldDate,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusBooked,
	}
}

func openWeekly(weekdays ...time.Weekday) *domain.WeeklyAvailability {
	weekly := domain.NewWeeklyAvailability(1)
	for _, wd := range weekdays {
		weekly.Days[int(wd)] = domain.DayAvailability{
			Weekday: wd,
			Enabled: true,
			Blocks: []domain.TimeBlock{
				{Open: types.TimeString("09:00"), Close: types.TimeString("18:00")},
			},
		}
	}
	return weekly
}

func newTestUseCase(repo *memBookingRepo, cfg *domain.PartnerBookingConfig, weekly *domain.WeeklyAvailability) *UseCase {
	uc := NewUseCase(
		repo,
		&stubAvailabilityRepo{weekly: weekly},
		&stubConfigRepo{cfg: cfg},
		&stubPartnerClient{partner: &partnerservice.Partner{ID: 1, Active: true, ManagerIDs: []int64{100}}},
		passTxManager{},
		nopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func testConfig() *domain.PartnerBookingConfig {
	return &domain.PartnerBookingConfig{
		SlotDurationMinutes:   60,
		MaxConcurrentBookings: 1,
	}
}

func TestExecute_PreservesIdentityAndExtendsTimeline(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)

	// ID и номер сохраняются
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "BK-01HTEST", resp.BookingNumber)

	// Бронирование на новом окне в статусе booked
	assert.Equal(t, newDate, resp.BookingDate)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, "booked", resp.Status)

	// История: исходная booked + rescheduled + booked, старые записи не тронуты
	require.Len(t, resp.Timeline, 3)
	assert.Equal(t, "booked", resp.Timeline[0].Status)
	assert.Equal(t, "rescheduled", resp.Timeline[1].Status)
	assert.Equal(t, "booked", resp.Timeline[2].Status)
}

func TestExecute_ManagerCanReschedule(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       100,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	require.NoError(t, err)
}

func TestExecute_StrangerDenied(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       999,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_OnlyBookedCanBeRescheduled(t *testing.T) {
	started := testBooking()
	started.Status = domain.StatusInProgress
	repo := newMemBookingRepo(started)
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestExecute_NewWindowFullRejected(t *testing.T) {
	other := testBooking()
	other.ID = 2
	other.CustomerID = 8
	other.BookingDate = newDate
	other.StartTime = types.TimeString("14:00")

	repo := newMemBookingRepo(testBooking(), other)
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_OwnWindowDoesNotBlockSameDayMove(t *testing.T) {
	// Перенос в пределах того же дня: старое окно бронирования не считается занятым
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday))

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      oldDate,
		NewStartTime: types.TimeString("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), resp.StartTime)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate, // вторник выключен
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrPartnerClosed)
}

func TestExecute_OutsideWorkingHoursRejected(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("17:30"), // окно 17:30-18:30 выходит за 18:00
	})
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := newMemBookingRepo(testBooking())
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))
	uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := newMemBookingRepo()
	uc := newTestUseCase(repo, testConfig(), openWeekly(time.Monday, time.Tuesday))

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    42,
		UserID:       7,
		NewDate:      newDate,
		NewStartTime: types.TimeString("14:00"),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
