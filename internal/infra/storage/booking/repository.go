package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/psqlbuilder"
	"github.com/plindo/booking-service/pkg/types"
)

// bookingColumns полный список колонок slot_bookings для SELECT запросов
var bookingColumns = []string{
	"id",
	"booking_number",
	"customer_id",
	"partner_id",
	"service_id",
	"category_id",
	"fulfillment",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"vehicle_brand",
	"vehicle_model",
	"vehicle_plate",
	"notes",
	"payment_method",
	"payment_amount",
	"platform_fee",
	"partner_payout",
	"payment_status",
	"rating",
	"cancellation_reason",
	"cancelled_at",
	"cancellation_fee",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её - это обязательно
// при создании с проверкой ёмкости окна (защита от гонки)
func (r *Repository) Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_bookings").
		Columns(
			"booking_number",
			"customer_id",
			"partner_id",
			"service_id",
			"category_id",
			"fulfillment",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"service_name",
			"service_price",
			"vehicle_brand",
			"vehicle_model",
			"vehicle_plate",
			"notes",
			"payment_method",
			"payment_amount",
			"platform_fee",
			"partner_payout",
			"payment_status",
		).
		Values(
			b.BookingNumber,
			b.CustomerID,
			b.PartnerID,
			b.ServiceID,
			b.CategoryID,
			b.Fulfillment,
			b.BookingDate,
			b.StartTime,
			b.DurationMinutes,
			b.Status,
			b.ServiceName,
			b.ServicePrice,
			b.VehicleBrand,
			b.VehicleModel,
			b.VehiclePlate,
			b.Notes,
			b.Payment.Method,
			b.Payment.Amount,
			b.Payment.PlatformFee,
			b.Payment.PartnerPayout,
			b.Payment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID (без таймлайна)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPartnerWithFilter получает бронирования партнера с гибкой фильтрацией
// по категории, периоду и статусу. Если фильтр указывает на конкретную дату и
// запрос выполняется в транзакции, строки блокируются через FOR UPDATE - так
// проверка ёмкости окна и вставка нового бронирования становятся атомарными
func (r *Repository) GetByPartnerWithFilter(ctx context.Context, filter domain.PartnerBookingsFilter) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("slot_bookings").
		Where(squirrel.Eq{"partner_id": filter.PartnerID})

	if filter.CategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Блокировка строк только внутри транзакции и только для конкретной даты
	// (сценарий создания бронирования)
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CustomerIDsByPartner получает список всех клиентов, когда-либо бронировавших
// услуги партнера. Используется для аналитики и рассылок
func (r *Repository) CustomerIDsByPartner(ctx context.Context, partnerID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT customer_id").
		From("slot_bookings").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("customer_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CustomerIDsByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CustomerIDsByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customerIDs := make([]int64, 0)
	for rows.Next() {
		var customerID int64
		if err := rows.Scan(&customerID); err != nil {
			return nil, fmt.Errorf("%w: CustomerIDsByPartner - scan customer_id: %v", ErrScanRow, err)
		}
		customerIDs = append(customerIDs, customerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CustomerIDsByPartner - rows error: %v", ErrScanRow, err)
	}

	return customerIDs, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// UpdatePaymentStatus обновляет статус платежа бронирования
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("payment_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdatePaymentStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины и флага штрафа за позднюю отмену
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, feeApplies bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancellation_fee", feeApplies).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// UpdateSchedule переносит бронирование на новую дату и время
// Статус при этом возвращается в booked; история статусов не затрагивается
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("booking_date", date).
		Set("start_time", startTime).
		Set("status", domain.StatusBooked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateSchedule", query, args)
}

// SetRating сохраняет оценку клиента
func (r *Repository) SetRating(ctx context.Context, id int64, rating int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_bookings").
		Set("rating", rating).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetRating - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetRating", query, args)
}

// AppendTimeline добавляет запись в историю статусов бронирования
// История append-only: записи никогда не изменяются и не удаляются
func (r *Repository) AppendTimeline(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_status_timeline").
		Columns("booking_id", "status").
		Values(bookingID, status).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendTimeline - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AppendTimeline - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetTimeline получает историю статусов бронирования в порядке добавления
func (r *Repository) GetTimeline(ctx context.Context, bookingID int64) ([]domain.TimelineEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "status", "created_at").
		From("booking_status_timeline").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeline - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeline - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.TimelineEntry, 0)
	for rows.Next() {
		var entry domain.TimelineEntry
		var createdAt sql.NullTime

		if err := rows.Scan(&entry.ID, &entry.BookingID, &entry.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetTimeline - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeline - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// execExpectingRow выполняет запрос и проверяет, что затронута хотя бы одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(scan func(dest ...interface{}) error) (*domain.SlotBooking, error) {
	var b domain.SlotBooking
	var createdAt, updatedAt sql.NullTime
	var rating sql.NullInt64

	err := scan(
		&b.ID,
		&b.BookingNumber,
		&b.CustomerID,
		&b.PartnerID,
		&b.ServiceID,
		&b.CategoryID,
		&b.Fulfillment,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&b.ServiceName,
		&b.ServicePrice,
		&b.VehicleBrand,
		&b.VehicleModel,
		&b.VehiclePlate,
		&b.Notes,
		&b.Payment.Method,
		&b.Payment.Amount,
		&b.Payment.PlatformFee,
		&b.Payment.PartnerPayout,
		&b.Payment.Status,
		&rating,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.CancellationFee,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rating.Valid {
		v := int(rating.Int64)
		b.Rating = &v
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.SlotBooking, error) {
	bookings := make([]*domain.SlotBooking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
