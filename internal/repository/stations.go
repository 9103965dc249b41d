package repository

import (
	"github.com/paylinq/workforce/backend/internal/domain"
)

func (r *Repository) GetAllStations() ([]*domain.Station, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT id, name, location, created_at, version FROM stations ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		station := &domain.Station{}
		if err := rows.Scan(&station.ID, &station.Name, &station.Location, &station.CreatedAt, &station.Version); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	return stations, rows.Err()
}

func (r *Repository) GetStationByID(id int64) (*domain.Station, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT name, location, created_at, version FROM stations WHERE id = $1
	`

	station := &domain.Station{
		ID: id,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&station.Name, &station.Location, &station.CreatedAt, &station.Version); err != nil {
		return nil, err
	}

	return station, nil
}

func (r *Repository) CreateStation(station *domain.Station) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO stations (name, location)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, station.Name, station.Location).Scan(&station.ID, &station.CreatedAt, &station.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateStation(station *domain.Station) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		UPDATE stations
		SET
			name = $1,
			location = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	params := []any{station.Name, station.Location, station.ID, station.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&station.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStation(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM stations WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
