package repository

import (
	"database/sql"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func (r *Repository) GetAllShiftTemplates() ([]*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT
			st.id,
			st.name,
			st.description,
			st.station_id,
			st.created_at,
			st.version,
			sts.id,
			sts.start_time,
			sts.end_time,
			stsd.day
		FROM shift_templates st
		LEFT JOIN shift_template_slots sts ON st.id = sts.template_id
		LEFT JOIN shift_template_slot_days stsd ON sts.id = stsd.slot_id
		ORDER BY st.id, sts.id, stsd.day
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templatesMap := make(map[int64]*domain.ShiftTemplate)
	slotsMap := make(map[int64]map[int64]*domain.ShiftTemplateSlot) // templateID -> slotID -> slot
	slotOrder := make(map[int64][]int64)                            // templateID -> slot IDs in row order
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			ID          int64
			Name        string
			Description string
			StationID   int64
			CreatedAt   time.Time
			Version     int32

			SlotID    sql.NullInt64
			StartTime sql.NullString
			EndTime   sql.NullString
			Day       sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.Description,
			&row.StationID,
			&row.CreatedAt,
			&row.Version,
			&row.SlotID,
			&row.StartTime,
			&row.EndTime,
			&row.Day,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := templatesMap[row.ID]; !exists {
			templatesMap[row.ID] = &domain.ShiftTemplate{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				StationID:   row.StationID,
				CreatedAt:   row.CreatedAt,
				Version:     row.Version,
			}
			slotsMap[row.ID] = make(map[int64]*domain.ShiftTemplateSlot)
			order = append(order, row.ID)
		}

		// a template may have no slots at all
		if !row.SlotID.Valid {
			continue
		}

		slot, exists := slotsMap[row.ID][row.SlotID.Int64]
		if !exists {
			slot = &domain.ShiftTemplateSlot{
				ID:        row.SlotID.Int64,
				StartTime: row.StartTime.String,
				EndTime:   row.EndTime.String,
				Days:      make([]int32, 0),
			}
			slotsMap[row.ID][row.SlotID.Int64] = slot
			slotOrder[row.ID] = append(slotOrder[row.ID], row.SlotID.Int64)
		}

		if !row.Day.Valid {
			continue
		}

		slot.Days = append(slot.Days, row.Day.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	templates := make([]*domain.ShiftTemplate, 0, len(order))
	for _, templateID := range order {
		template := templatesMap[templateID]
		// keep the query's slot-ID order, not the map's
		template.Slots = make([]domain.ShiftTemplateSlot, 0, len(slotsMap[templateID]))
		for _, slotID := range slotOrder[templateID] {
			template.Slots = append(template.Slots, *slotsMap[templateID][slotID])
		}
		roles, err := r.getTemplateRequiredRoles(templateID)
		if err != nil {
			return nil, err
		}
		template.RequiredRoles = roles
		templates = append(templates, template)
	}

	return templates, nil
}

func (r *Repository) GetShiftTemplate(id int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT
			st.name,
			st.description,
			st.station_id,
			st.created_at,
			st.version,
			sts.id,
			sts.start_time,
			sts.end_time,
			stsd.day
		FROM shift_templates st
		LEFT JOIN shift_template_slots sts ON st.id = sts.template_id
		LEFT JOIN shift_template_slot_days stsd ON sts.id = stsd.slot_id
		WHERE st.id = $1
		ORDER BY sts.id, stsd.day
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st := &domain.ShiftTemplate{
		ID: id,
	}
	slotsMap := make(map[int64]*domain.ShiftTemplateSlot)
	slotOrder := make([]int64, 0)
	found := false

	for rows.Next() {
		found = true
		var row struct {
			Name        string
			Description string
			StationID   int64
			CreatedAt   time.Time
			Version     int32

			SlotID    sql.NullInt64
			StartTime sql.NullString
			EndTime   sql.NullString
			Day       sql.NullInt32
		}

		dst := []any{
			&row.Name,
			&row.Description,
			&row.StationID,
			&row.CreatedAt,
			&row.Version,
			&row.SlotID,
			&row.StartTime,
			&row.EndTime,
			&row.Day,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if st.Name == "" {
			st.Name = row.Name
			st.Description = row.Description
			st.StationID = row.StationID
			st.CreatedAt = row.CreatedAt
			st.Version = row.Version
		}

		if !row.SlotID.Valid {
			continue
		}

		slot, exists := slotsMap[row.SlotID.Int64]
		if !exists {
			slot = &domain.ShiftTemplateSlot{
				ID:        row.SlotID.Int64,
				StartTime: row.StartTime.String,
				EndTime:   row.EndTime.String,
				Days:      make([]int32, 0),
			}
			slotsMap[row.SlotID.Int64] = slot
			slotOrder = append(slotOrder, row.SlotID.Int64)
		}

		if !row.Day.Valid {
			continue
		}

		slot.Days = append(slot.Days, row.Day.Int32)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	// keep the query's slot-ID order, not the map's
	st.Slots = make([]domain.ShiftTemplateSlot, 0, len(slotsMap))
	for _, slotID := range slotOrder {
		st.Slots = append(st.Slots, *slotsMap[slotID])
	}

	roles, err := r.getTemplateRequiredRoles(id)
	if err != nil {
		return nil, err
	}
	st.RequiredRoles = roles

	return st, nil
}

// GetStationTemplate returns the template governing a station's staffing, or
// sql.ErrNoRows when none is defined.
func (r *Repository) GetStationTemplate(stationID int64) (*domain.ShiftTemplate, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	var id int64
	query := `SELECT id FROM shift_templates WHERE station_id = $1 ORDER BY id LIMIT 1`
	if err := r.dbpool.QueryRowContext(ctx, query, stationID).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetShiftTemplate(id)
}

func (r *Repository) getTemplateRequiredRoles(templateID int64) ([]string, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `SELECT role FROM shift_template_required_roles WHERE template_id = $1 ORDER BY role`

	rows, err := r.dbpool.QueryContext(ctx, query, templateID)
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

func (r *Repository) CreateShiftTemplate(st *domain.ShiftTemplate) error {
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
		INSERT INTO shift_templates (name, description, station_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, st.Name, st.Description, st.StationID).Scan(&st.ID, &st.CreatedAt, &st.Version); err != nil {
		return err
	}

	for i := range st.Slots {
		query = `
			INSERT INTO shift_template_slots (template_id, start_time, end_time)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, st.ID, st.Slots[i].StartTime, st.Slots[i].EndTime).Scan(&st.Slots[i].ID); err != nil {
			return err
		}

		for _, day := range st.Slots[i].Days {
			query = `
				INSERT INTO shift_template_slot_days (slot_id, day)
				VALUES ($1, $2)
			`
			if _, err := tx.ExecContext(ctx, query, st.Slots[i].ID, day); err != nil {
				return err
			}
		}
	}

	for _, role := range st.RequiredRoles {
		query = `
			INSERT INTO shift_template_required_roles (template_id, role)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, st.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateShiftTemplate(st *domain.ShiftTemplate) error {
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
		UPDATE shift_templates
		SET
			name = $1,
			description = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	params := []any{st.Name, st.Description, st.ID, st.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&st.Version); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM shift_template_required_roles WHERE template_id = $1`, st.ID); err != nil {
		return err
	}
	for _, role := range st.RequiredRoles {
		if _, err := tx.ExecContext(ctx, `INSERT INTO shift_template_required_roles (template_id, role) VALUES ($1, $2)`, st.ID, role); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteShiftTemplate(id int64) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
