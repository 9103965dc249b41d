package repository

import (
	"github.com/paylinq/workforce/backend/internal/domain"
)

const swapColumns = `id, shift_id, requesting_worker_id, target_worker_id, reason, status, decided_by, decided_at, created_at, version`

func scanSwap(scan func(dest ...any) error) (*domain.ShiftSwap, error) {
	swap := &domain.ShiftSwap{}
	dst := []any{&swap.ID, &swap.ShiftID, &swap.RequestingWorkerID, &swap.TargetWorkerID, &swap.Reason, &swap.Status, &swap.DecidedBy, &swap.DecidedAt, &swap.CreatedAt, &swap.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return swap, nil
}

func (r *Repository) GetShiftSwapByID(id int64) (*domain.ShiftSwap, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + swapColumns + ` FROM shift_swaps WHERE id = $1`

	return scanSwap(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

// GetAllShiftSwaps lists swap requests, optionally filtered by status
// (empty string means all).
func (r *Repository) GetAllShiftSwaps(status domain.SwapStatus) ([]*domain.ShiftSwap, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT ` + swapColumns + `
		FROM shift_swaps
		WHERE ($1 = '' OR status = $1)
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	swaps := make([]*domain.ShiftSwap, 0)
	for rows.Next() {
		swap, err := scanSwap(rows.Scan)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}

	return swaps, rows.Err()
}

func (r *Repository) CreateShiftSwap(swap *domain.ShiftSwap) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO shift_swaps (shift_id, requesting_worker_id, target_worker_id, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{swap.ShiftID, swap.RequestingWorkerID, swap.TargetWorkerID, swap.Reason, swap.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&swap.ID, &swap.CreatedAt, &swap.Version); err != nil {
		return err
	}

	return nil
}

// DecideShiftSwap records an approval, rejection or cancellation. When the
// decision is an approval the shift is reassigned to the target worker in the
// same transaction.
func (r *Repository) DecideShiftSwap(swap *domain.ShiftSwap) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE shift_swaps
		SET
			status = $1,
			decided_by = $2,
			decided_at = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{swap.Status, swap.DecidedBy, swap.DecidedAt, swap.ID, swap.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&swap.Version); err != nil {
		return err
	}

	if swap.Status == domain.SwapStatusApproved {
		query = `
			UPDATE shifts
			SET worker_id = $1, version = version + 1
			WHERE id = $2
		`
		if _, err := tx.ExecContext(ctx, query, swap.TargetWorkerID, swap.ShiftID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
