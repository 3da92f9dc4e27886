package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/plindo/booking-service/internal/domain"
	"github.com/plindo/booking-service/pkg/dbmetrics"
	"github.com/plindo/booking-service/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"order_number",
	"partner_id",
	"customer_id",
	"total_amount",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе с позициями
// Вызывается внутри транзакции: заказ и позиции должны быть записаны атомарно
func (r *Repository) Create(ctx context.Context, o *domain.ProductOrder) (*domain.ProductOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("product_orders").
		Columns("order_number", "partner_id", "customer_id", "total_amount", "status").
		Values(o.OrderNumber, o.PartnerID, o.CustomerID, o.TotalAmount, o.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	if len(o.Items) > 0 {
		itemsBuilder := psqlbuilder.Insert("product_order_items").
			Columns("order_id", "product_id", "name", "price", "quantity")

		for _, item := range o.Items {
			itemsBuilder = itemsBuilder.Values(o.ID, item.ProductID, item.Name, item.Price, item.Quantity)
		}

		itemsQuery, itemsArgs, err := itemsBuilder.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build items insert query: %v", ErrBuildQuery, err)
		}

		rows, err := executor.QueryContext(ctx, itemsQuery, itemsArgs...)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - execute items insert: %v", ErrExecQuery, err)
		}
		defer rows.Close()

		idx := 0
		for rows.Next() {
			if idx >= len(o.Items) {
				break
			}
			if err := rows.Scan(&o.Items[idx].ID); err != nil {
				return nil, fmt.Errorf("%w: Create - scan item id: %v", ErrScanRow, err)
			}
			o.Items[idx].OrderID = o.ID
			idx++
		}

		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: Create - items rows error: %v", ErrScanRow, err)
		}
	}

	return o, nil
}

// GetByID получает заказ с позициями по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ProductOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("product_orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	o, err := scanOrder(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	items, err := r.getItems(ctx, executor, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]

	return o, nil
}

// GetByPartner получает заказы партнера, опционально фильтруя по статусу
// Заказы отсортированы по дате создания (новые первыми)
func (r *Repository) GetByPartner(ctx context.Context, partnerID int64, status *domain.OrderStatus) ([]*domain.ProductOrder, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("product_orders").
		Where(squirrel.Eq{"partner_id": partnerID}).
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.ProductOrder, 0)
	orderIDs := make([]int64, 0)

	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPartner - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPartner - rows error: %v", ErrScanRow, err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.getItems(ctx, executor, orderIDs)
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, nil
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("product_orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *Repository) getItems(ctx context.Context, executor DBExecutor, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"order_id",
		"product_id",
		"name",
		"price",
		"quantity",
	).
		From("product_order_items").
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("order_id ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getItems - scan row: %v", ErrScanRow, err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

func scanOrder(scan func(dest ...interface{}) error) (*domain.ProductOrder, error) {
	var o domain.ProductOrder
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&o.ID,
		&o.OrderNumber,
		&o.PartnerID,
		&o.CustomerID,
		&o.TotalAmount,
		&o.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
