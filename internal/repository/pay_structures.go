package repository

import (
	"github.com/paylinq/workforce/backend/internal/domain"
)

func (r *Repository) GetAllWorkerTypes() ([]*domain.WorkerType, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, name, overtime_multiplier, weekly_overtime_threshold, created_at, version FROM worker_types ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*domain.WorkerType, 0)
	for rows.Next() {
		wt := &domain.WorkerType{}
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.OvertimeMultiplier, &wt.WeeklyOvertimeThreshold, &wt.CreatedAt, &wt.Version); err != nil {
			return nil, err
		}
		types = append(types, wt)
	}

	return types, rows.Err()
}

func (r *Repository) GetWorkerTypeByID(id int64) (*domain.WorkerType, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT name, overtime_multiplier, weekly_overtime_threshold, created_at, version FROM worker_types WHERE id = $1
	`

	wt := &domain.WorkerType{
		ID: id,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&wt.Name, &wt.OvertimeMultiplier, &wt.WeeklyOvertimeThreshold, &wt.CreatedAt, &wt.Version); err != nil {
		return nil, err
	}

	return wt, nil
}

func (r *Repository) CreateWorkerType(wt *domain.WorkerType) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO worker_types (name, overtime_multiplier, weekly_overtime_threshold)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, wt.Name, wt.OvertimeMultiplier, wt.WeeklyOvertimeThreshold).Scan(&wt.ID, &wt.CreatedAt, &wt.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateWorkerType(wt *domain.WorkerType) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE worker_types
		SET
			name = $1,
			overtime_multiplier = $2,
			weekly_overtime_threshold = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{wt.Name, wt.OvertimeMultiplier, wt.WeeklyOvertimeThreshold, wt.ID, wt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&wt.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkerType(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM worker_types WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

const componentColumns = `id, code, name, type, method, amount, rate, currency, created_at, version`

func scanComponent(scan func(dest ...any) error) (*domain.PayComponent, error) {
	c := &domain.PayComponent{}
	dst := []any{&c.ID, &c.Code, &c.Name, &c.Type, &c.Method, &c.Amount, &c.Rate, &c.Currency, &c.CreatedAt, &c.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *Repository) GetAllPayComponents() ([]*domain.PayComponent, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + componentColumns + ` FROM pay_components ORDER BY id`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make([]*domain.PayComponent, 0)
	for rows.Next() {
		c, err := scanComponent(rows.Scan)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *Repository) GetPayComponentByID(id int64) (*domain.PayComponent, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + componentColumns + ` FROM pay_components WHERE id = $1`

	return scanComponent(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) CreatePayComponent(c *domain.PayComponent) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO pay_components (code, name, type, method, amount, rate, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, version
	`

	args := []any{c.Code, c.Name, c.Type, c.Method, c.Amount, c.Rate, c.Currency}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePayComponent(c *domain.PayComponent) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE pay_components
		SET
			name = $1,
			type = $2,
			method = $3,
			amount = $4,
			rate = $5,
			currency = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	params := []any{c.Name, c.Type, c.Method, c.Amount, c.Rate, c.Currency, c.ID, c.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&c.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePayComponent(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM pay_components WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

func (r *Repository) GetPayStructureByID(id int64) (*domain.PayStructure, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT name, worker_type_id, created_at, version FROM pay_structures WHERE id = $1
	`

	ps := &domain.PayStructure{
		ID: id,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&ps.Name, &ps.WorkerTypeID, &ps.CreatedAt, &ps.Version); err != nil {
		return nil, err
	}

	components, err := r.getStructureComponents(id)
	if err != nil {
		return nil, err
	}
	ps.Components = components

	return ps, nil
}

// GetPayStructureForWorkerType resolves the structure used when calculating
// pay for workers of the given type. Returns sql.ErrNoRows when no structure
// is bound.
func (r *Repository) GetPayStructureForWorkerType(workerTypeID int64) (*domain.PayStructure, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	var id int64
	query := `SELECT id FROM pay_structures WHERE worker_type_id = $1 ORDER BY id LIMIT 1`
	if err := r.dbpool.QueryRowContext(ctx, query, workerTypeID).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetPayStructureByID(id)
}

func (r *Repository) getStructureComponents(structureID int64) ([]domain.PayComponent, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT pc.id, pc.code, pc.name, pc.type, pc.method, pc.amount, pc.rate, pc.currency, pc.created_at, pc.version
		FROM pay_structure_components psc
		JOIN pay_components pc ON pc.id = psc.component_id
		WHERE psc.structure_id = $1
		ORDER BY psc.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, structureID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make([]domain.PayComponent, 0)
	for rows.Next() {
		c, err := scanComponent(rows.Scan)
		if err != nil {
			return nil, err
		}
		components = append(components, *c)
	}

	return components, rows.Err()
}

func (r *Repository) GetAllPayStructures() ([]*domain.PayStructure, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT id FROM pay_structures ORDER BY id`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	structures := make([]*domain.PayStructure, 0, len(ids))
	for _, id := range ids {
		ps, err := r.GetPayStructureByID(id)
		if err != nil {
			return nil, err
		}
		structures = append(structures, ps)
	}

	return structures, nil
}

func (r *Repository) CreatePayStructure(ps *domain.PayStructure, componentIDs []int64) error {
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
		INSERT INTO pay_structures (name, worker_type_id)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, ps.Name, ps.WorkerTypeID).Scan(&ps.ID, &ps.CreatedAt, &ps.Version); err != nil {
		return err
	}

	for position, componentID := range componentIDs {
		query = `
			INSERT INTO pay_structure_components (structure_id, component_id, position)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, ps.ID, componentID, position); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeletePayStructure(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM pay_structures WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
