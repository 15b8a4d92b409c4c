package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/cvorders/internal/domain/errors"
	"github.com/polkiloo/cvorders/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, package, status, revisions_used, require_cover_letter, cover_letter_details,
                      require_linkedin, linkedin_url, template, resume, completed_files, note,
                      created_at, delivery_date, submitted_at, updated_at`

func scanOrder(row scanner) (*model.Order, error) {
	var (
		o                               model.Order
		pkg, tpl, resume, completedRaw []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &pkg, &o.Status, &o.RevisionsUsed, &o.RequireCoverLetter, &o.CoverLetterDetails,
		&o.RequireLinkedInOptimization, &o.LinkedInURL, &tpl, &resume, &completedRaw, &o.Note,
		&o.Date, &o.DeliveryDate, &o.SubmittedAt, &o.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	if err := json.Unmarshal(pkg, &o.Package); err != nil {
		return nil, fmt.Errorf("decode package of order %s: %w", o.ID, err)
	}
	if len(tpl) > 0 {
		o.Template = &model.Template{}
		if err := json.Unmarshal(tpl, o.Template); err != nil {
			return nil, fmt.Errorf("decode template of order %s: %w", o.ID, err)
		}
	}
	if len(resume) > 0 {
		o.Resume = &model.OrderFile{}
		if err := json.Unmarshal(resume, o.Resume); err != nil {
			return nil, fmt.Errorf("decode resume of order %s: %w", o.ID, err)
		}
	}
	if len(completedRaw) > 0 {
		if err := json.Unmarshal(completedRaw, &o.CompletedFiles); err != nil {
			return nil, fmt.Errorf("decode files of order %s: %w", o.ID, err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	pkg, err := json.Marshal(order.Package)
	if err != nil {
		return err
	}
	const query = `INSERT INTO orders (id, user_id, package, status, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.storage.pool.Exec(ctx, query, order.ID, order.UserID, pkg, order.Status, order.Date, order.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return scanOrder(r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if status == nil {
		return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status=$1 ORDER BY created_at DESC`, *status)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}

func (r *orderRepository) UpdateResume(ctx context.Context, id string, file model.OrderFile) error {
	raw, err := json.Marshal(file)
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE orders SET resume=$2, updated_at=NOW() WHERE id=$1`, id, raw)
}

func (r *orderRepository) UpdateExtras(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET require_cover_letter=$2, cover_letter_details=$3,
                   require_linkedin=$4, linkedin_url=$5, updated_at=NOW() WHERE id=$1`
	return r.exec(ctx, query, order.ID, order.RequireCoverLetter, order.CoverLetterDetails,
		order.RequireLinkedInOptimization, order.LinkedInURL)
}

func (r *orderRepository) UpdateTemplate(ctx context.Context, id string, tpl model.Template) error {
	raw, err := json.Marshal(tpl)
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE orders SET template=$2, updated_at=NOW() WHERE id=$1`, id, raw)
}

func (r *orderRepository) AddCompletedFile(ctx context.Context, id string, file model.OrderFile) error {
	raw, err := json.Marshal([]model.OrderFile{file})
	if err != nil {
		return err
	}
	return r.exec(ctx, `UPDATE orders SET completed_files = completed_files || $2::jsonb, updated_at=NOW() WHERE id=$1`, id, raw)
}

func (r *orderRepository) MarkSubmitted(ctx context.Context, id string) error {
	return r.exec(ctx, `UPDATE orders SET submitted_at=COALESCE(submitted_at, NOW()), updated_at=NOW() WHERE id=$1`, id)
}

// UpdateStatus writes the new status only if the stored one still equals
// update.From. A consumed revision additionally requires allowance left in
// the stored package.
func (r *orderRepository) UpdateStatus(ctx context.Context, update model.StatusUpdate) error {
	consumed := 0
	if update.ConsumeRevision {
		consumed = 1
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders
                             SET status=$2, revisions_used=revisions_used+$3,
                                 note=COALESCE($4, note), delivery_date=COALESCE($5, delivery_date), updated_at=NOW()
                             WHERE id=$1 AND status=$6
                               AND ($3 = 0 OR revisions_used < (package->>'orderRevision')::int)`
		tag, err := tx.Exec(ctx, updateQuery, update.OrderID, update.To, consumed, update.Note, update.DeliveryDate, update.From)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id=$1)`, update.OrderID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domainErrors.ErrNotFound
			}
			return domainErrors.ErrConflict
		}

		if update.From == update.To {
			return nil
		}
		const historyQuery = `INSERT INTO order_status_history (order_id, from_status, to_status, actor) VALUES ($1, $2, $3, $4)`
		_, err = tx.Exec(ctx, historyQuery, update.OrderID, update.From, update.To, update.Actor)
		return err
	})
}

func (r *orderRepository) History(ctx context.Context, id string) ([]model.StatusChange, error) {
	const query = `SELECT id, order_id, from_status, to_status, actor, changed_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY changed_at, id`
	rows, err := r.storage.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.From, &c.To, &c.Actor, &c.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(tag)
}
