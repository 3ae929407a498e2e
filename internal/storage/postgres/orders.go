package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

var orderColumns = []string{
	"id", "customer_id", "merchant_id", "status", "delivery_location", "payment_method",
	"base_price", "handling_fee", "total", "rejection_reason", "proof_image", "created_at", "updated_at",
}

const orderReturning = `id, customer_id, merchant_id, status, delivery_location, payment_method,
                        base_price, handling_fee, total, rejection_reason, proof_image, created_at, updated_at`

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.CustomerID, &o.MerchantID, &o.Status, &o.DeliveryLocation, &o.PaymentMethod,
		&o.BasePrice, &o.HandlingFee, &o.Total, &o.RejectionReason, &o.ProofImage, &o.CreatedAt, &o.UpdatedAt,
	)
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if len(order.Items) == 0 {
		return nil, domainErrors.Validation("order has no items")
	}

	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if order.WalletFunded() {
			const debit = `UPDATE users SET wallet_balance = wallet_balance - $1
                           WHERE id = $2 AND wallet_balance >= $1`
			tag, err := tx.Exec(ctx, debit, order.Total, order.CustomerID)
			if err != nil {
				return fmt.Errorf("debit wallet: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrInsufficientBalance
			}
		}

		const insertOrder = `INSERT INTO orders (customer_id, merchant_id, status, delivery_location, payment_method,
                                                 base_price, handling_fee, total)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.CustomerID, order.MerchantID, model.OrderStatusPending, order.DeliveryLocation, order.PaymentMethod,
			order.BasePrice, order.HandlingFee, order.Total,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		builder := psql.Insert("order_items").Columns("order_id", "merchant_id", "food_id", "quantity", "price")
		created.Items = make([]model.OrderLineItem, 0, len(order.Items))
		for _, item := range order.Items {
			item.OrderID = created.ID
			builder = builder.Values(item.OrderID, item.MerchantID, item.FoodID, item.Quantity, item.Price)
			created.Items = append(created.Items, item)
		}
		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("build order items insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.Status = model.OrderStatusPending
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query, args, err := psql.Select(orderColumns...).From("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order query: %w", err)
	}

	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := loadItems(ctx, r.storage.pool, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	builder := psql.Select(orderColumns...).From("orders").OrderBy("created_at DESC", "id DESC")
	if filter.CustomerID > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerID})
	}
	if filter.MerchantID > 0 {
		builder = builder.Where(sq.Eq{"merchant_id": filter.MerchantID})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.Order
		ids    []int64
	)
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	items, err := loadItems(ctx, r.storage.pool, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = items[result[i].ID]
	}
	return result, nil
}

func (r *orderRepository) Transition(ctx context.Context, orderID int64, change model.StatusChange) (*model.Order, error) {
	var order model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders
                        SET status = $1,
                            rejection_reason = COALESCE($2, rejection_reason),
                            proof_image = COALESCE($3, proof_image),
                            updated_at = NOW()
                        WHERE id = $4 AND status = $5
                        RETURNING ` + orderReturning
		err := scanOrder(tx.QueryRow(ctx, update, change.To, change.RejectionReason, change.ProofImage, orderID, change.From), &order)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return missingOrConflict(ctx, tx, `SELECT status FROM orders WHERE id=$1`, orderID)
			}
			return err
		}

		switch change.To {
		case model.OrderStatusCompleted:
			const credit = `INSERT INTO merchant_balances (merchant_id, available, withdrawn)
                            VALUES ($1, $2, 0)
                            ON CONFLICT (merchant_id) DO UPDATE SET available = merchant_balances.available + EXCLUDED.available`
			if _, err := tx.Exec(ctx, credit, order.MerchantID, order.BasePrice); err != nil {
				return fmt.Errorf("credit merchant balance: %w", err)
			}
		case model.OrderStatusCancelled:
			if order.WalletFunded() {
				const refund = `UPDATE users SET wallet_balance = wallet_balance + $1 WHERE id = $2`
				if _, err := tx.Exec(ctx, refund, order.Total, order.CustomerID); err != nil {
					return fmt.Errorf("refund wallet: %w", err)
				}
			}
		}

		items, err := loadItems(ctx, tx, []int64{order.ID})
		if err != nil {
			return err
		}
		order.Items = items[order.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// missingOrConflict distinguishes a lost conditional write from an unknown row.
func missingOrConflict(ctx context.Context, tx pgx.Tx, query string, id int64) error {
	var current string
	if err := tx.QueryRow(ctx, query, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrConflict
}

func loadItems(ctx context.Context, q queryer, orderIDs []int64) (map[int64][]model.OrderLineItem, error) {
	query, args, err := psql.Select("order_id", "merchant_id", "food_id", "quantity", "price").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order items query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]model.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderLineItem
		if err := rows.Scan(&item.OrderID, &item.MerchantID, &item.FoodID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
