package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/psqlbuilder"
	"github.com/plindo/booking-service/pkg/types"
)

// Repository репозиторий для работы с недельным расписанием партнеров
//
// Расписание хранится построчно: включенный день с N рабочими блоками
// занимает N строк (enabled = true), выключенный день - одну строку
// с enabled = false и пустыми границами. День без строк считается выключенным.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekly получает недельное расписание партнера
// Возвращает ErrAvailabilityNotFound, если у партнера нет ни одной строки расписания
func (r *Repository) GetWeekly(ctx context.Context, partnerID int64) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"enabled",
		"open_time",
		"close_time",
		"updated_at",
	).
		From("partner_weekly_availability").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("weekday ASC", "open_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	weekly := domain.NewWeeklyAvailability(partnerID)
	found := false

	for rows.Next() {
		var (
			weekday   int
			enabled   bool
			openTime  types.TimeString
			closeTime types.TimeString
			updatedAt sql.NullTime
		)

		if err := rows.Scan(&weekday, &enabled, &openTime, &closeTime, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetWeekly - scan row: %v", ErrScanRow, err)
		}

		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("%w: GetWeekly - unexpected weekday %d", ErrScanRow, weekday)
		}

		found = true
		day := &weekly.Days[weekday]
		day.Enabled = enabled

		if enabled && !openTime.IsZero() && !closeTime.IsZero() {
			day.Blocks = append(day.Blocks, domain.TimeBlock{
				Open:  openTime,
				Close: closeTime,
			})
		}

		if updatedAt.Valid && updatedAt.Time.After(weekly.UpdatedAt) {
			weekly.UpdatedAt = updatedAt.Time
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekly - rows error: %v", ErrScanRow, err)
	}

	if !found {
		return nil, ErrAvailabilityNotFound
	}

	return weekly, nil
}

// ReplaceWeekly полностью заменяет недельное расписание партнера
// Вызывается внутри транзакции: удаление и вставка должны быть атомарны
func (r *Repository) ReplaceWeekly(ctx context.Context, weekly *domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("partner_weekly_availability").
		Where(squirrel.Eq{"partner_id": weekly.PartnerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("partner_weekly_availability").
		Columns("partner_id", "weekday", "enabled", "open_time", "close_time")

	for weekday := range weekly.Days {
		day := weekly.Days[weekday]

		if !day.Enabled || len(day.Blocks) == 0 {
			insertBuilder = insertBuilder.Values(weekly.PartnerID, weekday, false, nil, nil)
			continue
		}

		for _, block := range day.Blocks {
			insertBuilder = insertBuilder.Values(weekly.PartnerID, weekday, true, block.Open, block.Close)
		}
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekly - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
