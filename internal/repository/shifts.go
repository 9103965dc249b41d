package repository

import (
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

const shiftColumns = `id, station_id, worker_id, shift_date, start_time, end_time, status, created_at, version`

func scanShift(scan func(dest ...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{&shift.ID, &shift.StationID, &shift.WorkerID, &shift.ShiftDate, &shift.StartTime, &shift.EndTime, &shift.Status, &shift.CreatedAt, &shift.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	return scanShift(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

// GetShiftsInRange returns shifts whose date falls in [from, to] inclusive,
// optionally narrowed to one station (zero means all stations).
func (r *Repository) GetShiftsInRange(from, to time.Time, stationID int64) ([]*domain.Shift, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE shift_date >= $1 AND shift_date <= $2
			AND ($3 = 0 OR station_id = $3)
		ORDER BY shift_date, start_time, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	return shifts, rows.Err()
}

func (r *Repository) GetWorkerShiftsInRange(workerID int64, from, to time.Time) ([]*domain.Shift, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE worker_id = $1 AND shift_date >= $2 AND shift_date <= $3
		ORDER BY shift_date, start_time, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, workerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	return shifts, rows.Err()
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO shifts (station_id, worker_id, shift_date, start_time, end_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{shift.StationID, shift.WorkerID, shift.ShiftDate, shift.StartTime, shift.EndTime, shift.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// UpdateShiftTime moves a shift to a new window, as requested by the
// calendar's drag-and-drop repositioning.
func (r *Repository) UpdateShiftTime(shift *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE shifts
		SET
			shift_date = $1,
			start_time = $2,
			end_time = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{shift.ShiftDate, shift.StartTime, shift.EndTime, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE shifts
		SET
			station_id = $1,
			worker_id = $2,
			shift_date = $3,
			start_time = $4,
			end_time = $5,
			status = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	params := []any{shift.StationID, shift.WorkerID, shift.ShiftDate, shift.StartTime, shift.EndTime, shift.Status, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM shifts WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
