package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// --- InvoiceRepository implementation ---

const invoiceColumns = `period, total_gmv, variable_fee, status, created_at, paid_at`

func scanInvoice(row pgx.Row) (*model.VendorInvoice, error) {
	var inv model.VendorInvoice
	if err := row.Scan(&inv.Period, &inv.TotalGMV, &inv.VariableFee, &inv.Status, &inv.CreatedAt, &inv.PaidAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) CompletedGMV(ctx context.Context, period model.Period) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(total), 0) FROM orders
                   WHERE status='completed' AND created_at >= $1 AND created_at < $2`

	var gmv decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, period.Start, period.End()).Scan(&gmv); err != nil {
		return decimal.Zero, err
	}
	return gmv, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.VendorInvoice) (*model.VendorInvoice, error) {
	const query = `INSERT INTO vendor_invoices (period, total_gmv, variable_fee, status)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (period) DO NOTHING
                   RETURNING ` + invoiceColumns

	created, err := scanInvoice(r.storage.pool.QueryRow(ctx, query,
		invoice.Period, invoice.TotalGMV, invoice.VariableFee, model.InvoiceStatusUnpaid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *invoiceRepository) GetByPeriod(ctx context.Context, period string) (*model.VendorInvoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM vendor_invoices WHERE period=$1`
	inv, err := scanInvoice(r.storage.pool.QueryRow(ctx, query, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]model.VendorInvoice, error) {
	const query = `SELECT ` + invoiceColumns + ` FROM vendor_invoices ORDER BY period DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.VendorInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, period string) (*model.VendorInvoice, error) {
	var paid *model.VendorInvoice
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE vendor_invoices SET status='paid', paid_at=NOW()
                        WHERE period=$1 AND status='unpaid'
                        RETURNING ` + invoiceColumns
		var err error
		paid, err = scanInvoice(tx.QueryRow(ctx, update, period))
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var status string
		if err := tx.QueryRow(ctx, `SELECT status FROM vendor_invoices WHERE period=$1`, period).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return domainErrors.ErrConflict
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// --- ReportRepository implementation ---

func (r *reportRepository) HandlingFeesByMerchant(ctx context.Context, period model.Period) ([]model.MerchantFee, error) {
	query, args, err := psql.Select(
		"merchant_id",
		"COUNT(*)",
		"COALESCE(SUM(base_price), 0)",
		"COALESCE(SUM(handling_fee), 0)",
	).
		From("orders").
		Where(sq.Eq{"status": model.OrderStatusCompleted}).
		Where(sq.GtOrEq{"created_at": period.Start}).
		Where(sq.Lt{"created_at": period.End()}).
		GroupBy("merchant_id").
		OrderBy("merchant_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fee report query: %w", err)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MerchantFee
	for rows.Next() {
		var fee model.MerchantFee
		if err := rows.Scan(&fee.MerchantID, &fee.Orders, &fee.BasePrice, &fee.HandlingFee); err != nil {
			return nil, err
		}
		result = append(result, fee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
