package postgres

import (
	"context"

	"github.com/polkiloo/cvorders/internal/domain/model"
)

type sessionRepository struct {
	storage *Storage
}

func (r *sessionRepository) ActiveOrder(ctx context.Context, userID int64) (string, error) {
	var orderID string
	if err := r.storage.pool.QueryRow(ctx, `SELECT order_id FROM active_orders WHERE user_id=$1`, userID).Scan(&orderID); err != nil {
		return "", notFound(err)
	}
	return orderID, nil
}

func (r *sessionRepository) SetActiveOrder(ctx context.Context, userID int64, orderID string) error {
	const query = `INSERT INTO active_orders (user_id, order_id, updated_at) VALUES ($1, $2, NOW())
                   ON CONFLICT (user_id) DO UPDATE SET order_id=EXCLUDED.order_id, updated_at=EXCLUDED.updated_at`
	_, err := r.storage.pool.Exec(ctx, query, userID, orderID)
	return err
}

func (r *sessionRepository) ClearActiveOrder(ctx context.Context, userID int64) error {
	_, err := r.storage.pool.Exec(ctx, `DELETE FROM active_orders WHERE user_id=$1`, userID)
	return err
}

type wizardRepository struct {
	storage *Storage
}

func (r *wizardRepository) Get(ctx context.Context, userID int64, orderID string) (*model.WizardState, error) {
	const query = `SELECT user_id, order_id, flow, step_index, updated_at FROM wizard_states WHERE user_id=$1 AND order_id=$2`
	var s model.WizardState
	err := r.storage.pool.QueryRow(ctx, query, userID, orderID).Scan(&s.UserID, &s.OrderID, &s.Flow, &s.Index, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *wizardRepository) Save(ctx context.Context, state model.WizardState) error {
	const query = `INSERT INTO wizard_states (user_id, order_id, flow, step_index, updated_at)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (user_id, order_id) DO UPDATE
                   SET flow=EXCLUDED.flow, step_index=EXCLUDED.step_index, updated_at=EXCLUDED.updated_at`
	_, err := r.storage.pool.Exec(ctx, query, state.UserID, state.OrderID, state.Flow, state.Index, state.UpdatedAt)
	return err
}
