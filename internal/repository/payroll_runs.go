package repository

import (
	"encoding/json"

	"github.com/paylinq/workforce/backend/internal/domain"
)

const runColumns = `id, name, period_start, period_end, currency, status, created_at, version`

func scanRun(scan func(dest ...any) error) (*domain.PayrollRun, error) {
	run := &domain.PayrollRun{}
	dst := []any{&run.ID, &run.Name, &run.PeriodStart, &run.PeriodEnd, &run.Currency, &run.Status, &run.CreatedAt, &run.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *Repository) GetAllPayrollRuns() ([]*domain.PayrollRun, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + runColumns + ` FROM payroll_runs ORDER BY period_start DESC, id DESC`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*domain.PayrollRun, 0)
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *Repository) GetPayrollRunByID(id int64) (*domain.PayrollRun, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`

	return scanRun(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) CreatePayrollRun(run *domain.PayrollRun) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO payroll_runs (name, period_start, period_end, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{run.Name, run.PeriodStart, run.PeriodEnd, run.Currency, run.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&run.ID, &run.CreatedAt, &run.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePayrollRunStatus(run *domain.PayrollRun) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE payroll_runs
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, run.Status, run.ID, run.Version).Scan(&run.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePayrollRun(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM payroll_runs WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}

// ReplacePayrollEntries swaps a run's computed entries for a fresh
// calculation in one transaction, so a recalculated run never shows a mix of
// old and new lines.
func (r *Repository) ReplacePayrollEntries(runID int64, entries []*domain.PayrollEntry) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payroll_entries WHERE payroll_run_id = $1`, runID); err != nil {
		return err
	}

	query := `
		INSERT INTO payroll_entries (payroll_run_id, worker_id, reference, regular_minutes, overtime_minutes, gross_amount, deduction_amount, net_amount, lines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	for _, entry := range entries {
		lines, err := json.Marshal(entry.Lines)
		if err != nil {
			return err
		}
		args := []any{runID, entry.WorkerID, entry.Reference, entry.RegularMinutes, entry.OvertimeMinutes, entry.GrossAmount, entry.DeductionAmount, entry.NetAmount, lines}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetPayrollEntries(runID int64) ([]*domain.PayrollEntry, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, worker_id, reference, regular_minutes, overtime_minutes, gross_amount, deduction_amount, net_amount, lines
		FROM payroll_entries
		WHERE payroll_run_id = $1
		ORDER BY worker_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.PayrollEntry, 0)
	for rows.Next() {
		entry := &domain.PayrollEntry{
			PayrollRunID: runID,
		}
		var lines []byte
		dst := []any{&entry.ID, &entry.WorkerID, &entry.Reference, &entry.RegularMinutes, &entry.OvertimeMinutes, &entry.GrossAmount, &entry.DeductionAmount, &entry.NetAmount, &lines}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(lines, &entry.Lines); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
