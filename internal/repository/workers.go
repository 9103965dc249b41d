package repository

import (
	"context"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func (r *Repository) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) txCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT username, password_hash, full_name, email, account_role, worker_type_id, hourly_rate, currency, is_active, created_at, version
		FROM workers WHERE id = $1
	`

	worker := &domain.Worker{
		ID: id,
	}

	dst := []any{&worker.Username, &worker.PasswordHash, &worker.FullName, &worker.Email, &worker.AccountRole, &worker.WorkerTypeID, &worker.HourlyRate, &worker.Currency, &worker.IsActive, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	roles, err := r.getWorkerJobRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	worker.JobRoles = roles

	return worker, nil
}

func (r *Repository) GetWorkerByUsername(username string) (*domain.Worker, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, password_hash, full_name, email, account_role, worker_type_id, hourly_rate, currency, is_active, created_at, version
		FROM workers WHERE username = $1
	`

	worker := &domain.Worker{
		Username: username,
	}

	dst := []any{&worker.ID, &worker.PasswordHash, &worker.FullName, &worker.Email, &worker.AccountRole, &worker.WorkerTypeID, &worker.HourlyRate, &worker.Currency, &worker.IsActive, &worker.CreatedAt, &worker.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	roles, err := r.getWorkerJobRoles(ctx, worker.ID)
	if err != nil {
		return nil, err
	}
	worker.JobRoles = roles

	return worker, nil
}

func (r *Repository) getWorkerJobRoles(ctx context.Context, workerID int64) ([]string, error) {
	query := `SELECT role FROM worker_job_roles WHERE worker_id = $1 ORDER BY role`

	rows, err := r.dbpool.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

func (r *Repository) GetAllWorkers() ([]*domain.Worker, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT
			w.id,
			w.username,
			w.password_hash,
			w.full_name,
			w.email,
			w.account_role,
			w.worker_type_id,
			w.hourly_rate,
			w.currency,
			w.is_active,
			w.created_at,
			w.version,
			wjr.role
		FROM workers w
		LEFT JOIN worker_job_roles wjr ON w.id = wjr.worker_id
		ORDER BY w.id, wjr.role
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workersMap := make(map[int64]*domain.Worker)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			Worker domain.Worker
			Role   *string
		}

		dst := []any{
			&row.Worker.ID,
			&row.Worker.Username,
			&row.Worker.PasswordHash,
			&row.Worker.FullName,
			&row.Worker.Email,
			&row.Worker.AccountRole,
			&row.Worker.WorkerTypeID,
			&row.Worker.HourlyRate,
			&row.Worker.Currency,
			&row.Worker.IsActive,
			&row.Worker.CreatedAt,
			&row.Worker.Version,
			&row.Role,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		worker, exists := workersMap[row.Worker.ID]
		if !exists {
			worker = &row.Worker
			worker.JobRoles = make([]string, 0)
			workersMap[worker.ID] = worker
			order = append(order, worker.ID)
		}

		if row.Role != nil {
			worker.JobRoles = append(worker.JobRoles, *row.Role)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workers := make([]*domain.Worker, 0, len(order))
	for _, id := range order {
		workers = append(workers, workersMap[id])
	}

	return workers, nil
}

// JobRolesByWorkerID returns the worker-to-roles lookup the coverage engine
// consumes.
func (r *Repository) JobRolesByWorkerID() (map[int64][]string, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT worker_id, role FROM worker_job_roles ORDER BY worker_id, role`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make(map[int64][]string)
	for rows.Next() {
		var workerID int64
		var role string
		if err := rows.Scan(&workerID, &role); err != nil {
			return nil, err
		}
		roles[workerID] = append(roles[workerID], role)
	}

	return roles, rows.Err()
}

func (r *Repository) CreateWorker(worker *domain.Worker) error {
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
		INSERT INTO workers (username, password_hash, full_name, email, account_role, worker_type_id, hourly_rate, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	args := []any{worker.Username, worker.PasswordHash, worker.FullName, worker.Email, worker.AccountRole, worker.WorkerTypeID, worker.HourlyRate, worker.Currency}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&worker.ID, &worker.IsActive, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	for _, role := range worker.JobRoles {
		query = `INSERT INTO worker_job_roles (worker_id, role) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, worker.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateWorker(worker *domain.Worker) error {
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
		UPDATE workers
		SET
			password_hash = $1,
			email = $2,
			account_role = $3,
			worker_type_id = $4,
			hourly_rate = $5,
			currency = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING username, full_name, created_at, version
	`

	args := []any{worker.PasswordHash, worker.Email, worker.AccountRole, worker.WorkerTypeID, worker.HourlyRate, worker.Currency, worker.IsActive, worker.ID, worker.Version}
	dst := []any{&worker.Username, &worker.FullName, &worker.CreatedAt, &worker.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	// job roles are replaced wholesale
	if _, err := tx.ExecContext(ctx, `DELETE FROM worker_job_roles WHERE worker_id = $1`, worker.ID); err != nil {
		return err
	}
	for _, role := range worker.JobRoles {
		if _, err := tx.ExecContext(ctx, `INSERT INTO worker_job_roles (worker_id, role) VALUES ($1, $2)`, worker.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteWorker(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM workers WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM workers WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
