package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

type paymentRepository struct {
	storage *Storage
}

const paymentColumns = `id, order_id, user_id, method, invoice_id, amount, currency, phone, state, payment_url,
                        created_at, updated_at, checked_at`

func scanPayment(row scanner) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.UserID, &p.Method, &p.InvoiceID, &p.Amount, &p.Currency, &p.Phone,
		&p.State, &p.PaymentURL, &p.CreatedAt, &p.UpdatedAt, &p.CheckedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	const query = `INSERT INTO payments (id, order_id, user_id, method, invoice_id, amount, currency, phone, state, payment_url, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.storage.pool.Exec(ctx, query, payment.ID, payment.OrderID, payment.UserID, payment.Method,
		payment.InvoiceID, payment.Amount, payment.Currency, payment.Phone, payment.State, payment.PaymentURL,
		payment.CreatedAt, payment.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	return scanPayment(r.storage.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
}

func (r *paymentRepository) GetByInvoice(ctx context.Context, invoiceID string) (*model.Payment, error) {
	return scanPayment(r.storage.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE invoice_id=$1`, invoiceID))
}

func (r *paymentRepository) AttachInvoice(ctx context.Context, id, invoiceID, paymentURL string, state model.PaymentState) error {
	const query = `UPDATE payments SET invoice_id=$2, payment_url=$3, state=$4, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, invoiceID, paymentURL, state)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return requireAffected(tag)
}

func (r *paymentRepository) UpdateState(ctx context.Context, id string, state model.PaymentState) error {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE payments SET state=$2, updated_at=NOW() WHERE id=$1`, id, state)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

// SelectBatchForReconciliation claims the least recently checked open payments.
func (r *paymentRepository) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	const selectQuery = `SELECT ` + paymentColumns + `
                         FROM payments
                         WHERE state IN ('PENDING', 'PROCESSING') AND invoice_id <> ''
                         ORDER BY checked_at NULLS FIRST, created_at
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var payments []model.Payment
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPayment(rows)
			if err != nil {
				return err
			}
			payments = append(payments, *p)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		for _, p := range payments {
			if _, err := tx.Exec(ctx, `UPDATE payments SET checked_at=NOW() WHERE id=$1`, p.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkEventProcessed reports whether (invoice, state) is seen for the first time.
func (r *paymentRepository) MarkEventProcessed(ctx context.Context, invoiceID string, state model.PaymentState) (bool, error) {
	const query = `INSERT INTO payment_events (invoice_id, state) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	tag, err := r.storage.pool.Exec(ctx, query, invoiceID, state)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
