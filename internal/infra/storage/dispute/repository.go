package dispute

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/psqlbuilder"
)

var disputeColumns = []string{
	"id",
	"booking_id",
	"customer_id",
	"reason",
	"evidence",
	"partner_response",
	"resolution_note",
	"resolved_by",
	"status",
	"created_at",
	"updated_at",
	"resolved_at",
}

// Repository репозиторий для работы со спорами по бронированиям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория споров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый спор
func (r *Repository) Create(ctx context.Context, d *domain.Dispute) (*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("disputes").
		Columns("booking_id", "customer_id", "reason", "evidence", "status").
		Values(d.BookingID, d.CustomerID, d.Reason, d.Evidence, d.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return d, nil
}

// GetByID получает спор по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disputeColumns...).
		From("disputes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDispute(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDisputeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan dispute: %v", ErrScanRow, err)
	}

	return d, nil
}

// GetPendingByBookingID получает открытый спор по бронированию
// По бронированию может быть не больше одного открытого спора
func (r *Repository) GetPendingByBookingID(ctx context.Context, bookingID int64) (*domain.Dispute, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(disputeColumns...).
		From("disputes").
		Where(squirrel.Eq{
			"booking_id": bookingID,
			"status":     domain.DisputePending,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDispute(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDisputeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPendingByBookingID - scan dispute: %v", ErrScanRow, err)
	}

	return d, nil
}

// SetPartnerResponse записывает ответ партнера на спор
func (r *Repository) SetPartnerResponse(ctx context.Context, id int64, response string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("disputes").
		Set("partner_response", response).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPartnerResponse - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPartnerResponse - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPartnerResponse - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDisputeNotFound
	}

	return nil
}

// Resolve закрывает спор с заметкой о решении
func (r *Repository) Resolve(ctx context.Context, id int64, resolvedBy int64, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("disputes").
		Set("status", domain.DisputeResolved).
		Set("resolution_note", note).
		Set("resolved_by", resolvedBy).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDisputeNotFound
	}

	return nil
}

func scanDispute(scan func(dest ...interface{}) error) (*domain.Dispute, error) {
	var d domain.Dispute
	var createdAt, updatedAt, resolvedAt sql.NullTime

	err := scan(
		&d.ID,
		&d.BookingID,
		&d.CustomerID,
		&d.Reason,
		&d.Evidence,
		&d.PartnerResponse,
		&d.ResolutionNote,
		&d.ResolvedBy,
		&d.Status,
		&createdAt,
		&updatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time
	if resolvedAt.Valid {
		d.ResolvedAt = &resolvedAt.Time
	}

	return &d, nil
}
