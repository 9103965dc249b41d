package repository

import (
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func (r *Repository) CreateTimesheet(ts *domain.Timesheet) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// regenerating a period replaces the previous sheet
	query := `
		DELETE FROM timesheets WHERE worker_id = $1 AND period_start = $2 AND period_end = $3
	`
	if _, err := tx.ExecContext(ctx, query, ts.WorkerID, ts.PeriodStart, ts.PeriodEnd); err != nil {
		return err
	}

	query = `
		INSERT INTO timesheets (worker_id, period_start, period_end, total_minutes, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`
	args := []any{ts.WorkerID, ts.PeriodStart, ts.PeriodEnd, ts.TotalMinutes, ts.Status}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&ts.ID, &ts.CreatedAt, &ts.Version); err != nil {
		return err
	}

	for _, entry := range ts.Entries {
		query = `
			INSERT INTO timesheet_entries (timesheet_id, entry_date, shift_id, minutes)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, query, ts.ID, entry.Date, entry.ShiftID, entry.Minutes); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetTimesheet(workerID int64, periodStart, periodEnd time.Time) (*domain.Timesheet, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, total_minutes, status, created_at, version
		FROM timesheets
		WHERE worker_id = $1 AND period_start = $2 AND period_end = $3
	`

	ts := &domain.Timesheet{
		WorkerID:    workerID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	dst := []any{&ts.ID, &ts.TotalMinutes, &ts.Status, &ts.CreatedAt, &ts.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, workerID, periodStart, periodEnd).Scan(dst...); err != nil {
		return nil, err
	}

	entries, err := r.getTimesheetEntries(ts.ID)
	if err != nil {
		return nil, err
	}
	ts.Entries = entries

	return ts, nil
}

func (r *Repository) getTimesheetEntries(timesheetID int64) ([]domain.TimesheetEntry, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT entry_date, shift_id, minutes
		FROM timesheet_entries
		WHERE timesheet_id = $1
		ORDER BY entry_date, shift_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, timesheetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.TimesheetEntry, 0)
	for rows.Next() {
		var entry domain.TimesheetEntry
		if err := rows.Scan(&entry.Date, &entry.ShiftID, &entry.Minutes); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *Repository) ApproveTimesheet(ts *domain.Timesheet) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE timesheets
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, domain.TimesheetStatusApproved, ts.ID, ts.Version).Scan(&ts.Version); err != nil {
		return err
	}
	ts.Status = domain.TimesheetStatusApproved

	return nil
}
