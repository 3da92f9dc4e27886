package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

var configColumns = []string{
	"id",
	"partner_id",
	"category_id",
	"slot_duration_minutes",
	"max_concurrent_bookings",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"cancellation_window_hours",
	"customer_commission_pct",
	"partner_commission_pct",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами бронирования партнеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил бронирования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новые правила бронирования
func (r *Repository) Create(ctx context.Context, cfg *domain.PartnerBookingConfig) (*domain.PartnerBookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("partner_booking_config").
		Columns(
			"partner_id",
			"category_id",
			"slot_duration_minutes",
			"max_concurrent_bookings",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"cancellation_window_hours",
			"customer_commission_pct",
			"partner_commission_pct",
		).
		Values(
			cfg.PartnerID,
			cfg.CategoryID,
			cfg.SlotDurationMinutes,
			cfg.MaxConcurrentBookings,
			cfg.AdvanceBookingDays,
			cfg.MinBookingNoticeMinutes,
			cfg.CancellationWindowHours,
			cfg.CustomerCommissionPct,
			cfg.PartnerCommissionPct,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateConfig
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetByPartnerAndCategory получает правила для партнера и категории
// categoryID = nil означает партнерские правила для всех категорий
func (r *Repository) GetByPartnerAndCategory(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("partner_booking_config").
		Where(squirrel.Eq{"partner_id": partnerID})

	if categoryID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *categoryID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerAndCategory - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartnerAndCategory - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetConfigWithHierarchy получает правила с учетом иерархии приоритетов:
// 1. Правила для конкретной категории (partnerID, categoryID)
// 2. Партнерские правила для всех категорий (partnerID, NULL)
// Если правила не найдены ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, partnerID int64, categoryID *int64) (*domain.PartnerBookingConfig, error) {
	if categoryID != nil {
		cfg, err := r.GetByPartnerAndCategory(ctx, partnerID, categoryID)
		if err == nil {
			return cfg, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - category level: %v", ErrExecQuery, err)
		}
	}

	cfg, err := r.GetByPartnerAndCategory(ctx, partnerID, nil)
	if err == nil {
		return cfg, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - partner level: %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByPartner получает все правила партнера (партнерские первыми)
func (r *Repository) GetAllByPartner(ctx context.Context, partnerID int64) ([]*domain.PartnerBookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("partner_booking_config").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("category_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.PartnerBookingConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByPartner - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByPartner - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет правила бронирования
func (r *Repository) Update(ctx context.Context, id int64, cfg *domain.PartnerBookingConfig) (*domain.PartnerBookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("partner_booking_config").
		Set("slot_duration_minutes", cfg.SlotDurationMinutes).
		Set("max_concurrent_bookings", cfg.MaxConcurrentBookings).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("min_booking_notice_minutes", cfg.MinBookingNoticeMinutes).
		Set("cancellation_window_hours", cfg.CancellationWindowHours).
		Set("customer_commission_pct", cfg.CustomerCommissionPct).
		Set("partner_commission_pct", cfg.PartnerCommissionPct).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	cfg.ID = id
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// Delete удаляет правила бронирования
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("partner_booking_config").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

func scanConfig(scan func(dest ...interface{}) error) (*domain.PartnerBookingConfig, error) {
	var cfg domain.PartnerBookingConfig
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&cfg.ID,
		&cfg.PartnerID,
		&cfg.CategoryID,
		&cfg.SlotDurationMinutes,
		&cfg.MaxConcurrentBookings,
		&cfg.AdvanceBookingDays,
		&cfg.MinBookingNoticeMinutes,
		&cfg.CancellationWindowHours,
		&cfg.CustomerCommissionPct,
		&cfg.PartnerCommissionPct,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
