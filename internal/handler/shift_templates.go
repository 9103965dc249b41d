package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/roster"
)

func (h *Handler) GetAllShiftTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repository.GetAllShiftTemplates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "templates fetched", templates)
}

func (h *Handler) CreateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
		StationID   int64  `json:"stationID" validate:"required"`
		Slots       []struct {
			StartTime string  `json:"startTime" validate:"required"`
			EndTime   string  `json:"endTime" validate:"required"`
			Days      []int32 `json:"days" validate:"required,min=1,dive,min=1,max=7"`
		} `json:"slots" validate:"required,min=1,dive"`
		RequiredRoles []string `json:"requiredRoles"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := &domain.ShiftTemplate{
		Name:          req.Name,
		Description:   req.Description,
		StationID:     req.StationID,
		RequiredRoles: req.RequiredRoles,
	}
	for _, slot := range req.Slots {
		st.Slots = append(st.Slots, domain.ShiftTemplateSlot{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Days:      slot.Days,
		})
	}

	if err := roster.ValidateTemplateSlots(st); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_templates_name_key":
			h.badRequest(w, r, errors.New("template name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.invalidateStationCoverage(st.StationID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "template created", st)
}

func (h *Handler) GetShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)
	h.successResponse(w, r, "template fetched", st)
}

// UpdateShiftTemplate changes the template's description and required roles.
// Slots are fixed once created, a different slot layout is a new template.
func (h *Handler) UpdateShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name          *string   `json:"name"`
		Description   *string   `json:"description"`
		RequiredRoles *[]string `json:"requiredRoles"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.RequiredRoles != nil {
		st.RequiredRoles = *req.RequiredRoles
	}

	if err := h.repository.UpdateShiftTemplate(st); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shift_templates_name_key":
			h.badRequest(w, r, errors.New("template name already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.invalidateStationCoverage(st.StationID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "template updated", st)
}

func (h *Handler) DeleteShiftTemplate(w http.ResponseWriter, r *http.Request) {
	st := r.Context().Value(ShiftTemplateCtx).(*domain.ShiftTemplate)

	if err := h.repository.DeleteShiftTemplate(st.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.invalidateStationCoverage(st.StationID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "template deleted", nil)
}
