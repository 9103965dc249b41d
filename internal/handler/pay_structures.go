package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func (h *Handler) GetAllWorkerTypes(w http.ResponseWriter, r *http.Request) {
	workerTypes, err := h.repository.GetAllWorkerTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker types fetched", workerTypes)
}

func (h *Handler) CreateWorkerType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                    string  `json:"name" validate:"required"`
		OvertimeMultiplier      float64 `json:"overtimeMultiplier" validate:"required,gte=1"`
		WeeklyOvertimeThreshold int     `json:"weeklyOvertimeThreshold" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	wt := &domain.WorkerType{
		Name:                    req.Name,
		OvertimeMultiplier:      req.OvertimeMultiplier,
		WeeklyOvertimeThreshold: req.WeeklyOvertimeThreshold,
	}

	if err := h.repository.CreateWorkerType(wt); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "worker_types_name_key":
			h.badRequest(w, r, errors.New("worker type name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker type created", wt)
}

func (h *Handler) UpdateWorkerType(w http.ResponseWriter, r *http.Request) {
	workerTypeID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid worker type ID")
		return
	}

	wt, err := h.repository.GetWorkerTypeByID(workerTypeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "worker type not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		Name                    *string  `json:"name"`
		OvertimeMultiplier      *float64 `json:"overtimeMultiplier" validate:"omitempty,gte=1"`
		WeeklyOvertimeThreshold *int     `json:"weeklyOvertimeThreshold" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		wt.Name = *req.Name
	}
	if req.OvertimeMultiplier != nil {
		wt.OvertimeMultiplier = *req.OvertimeMultiplier
	}
	if req.WeeklyOvertimeThreshold != nil {
		wt.WeeklyOvertimeThreshold = *req.WeeklyOvertimeThreshold
	}

	if err := h.repository.UpdateWorkerType(wt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker type updated", wt)
}

func (h *Handler) DeleteWorkerType(w http.ResponseWriter, r *http.Request) {
	workerTypeID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid worker type ID")
		return
	}

	if err := h.repository.DeleteWorkerType(workerTypeID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker type deleted", nil)
}

func (h *Handler) GetAllPayComponents(w http.ResponseWriter, r *http.Request) {
	components, err := h.repository.GetAllPayComponents()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pay components fetched", components)
}

func (h *Handler) CreatePayComponent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code" validate:"required"`
		Name     string `json:"name" validate:"required"`
		Type     string `json:"type" validate:"required,oneof=earning deduction"`
		Method   string `json:"method" validate:"required,oneof=fixed hourly percentage"`
		Amount   int64  `json:"amount" validate:"gte=0"`
		Rate     int32  `json:"rate" validate:"gte=0,lte=10000"`
		Currency string `json:"currency" validate:"omitempty,len=3"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Method == string(domain.MethodPercentage) && req.Rate == 0 {
		h.badRequest(w, r, errors.New("percentage components need a rate"))
		return
	}
	if req.Method != string(domain.MethodPercentage) && req.Currency == "" {
		h.badRequest(w, r, errors.New("fixed and hourly components need a currency"))
		return
	}

	c := &domain.PayComponent{
		Code:     req.Code,
		Name:     req.Name,
		Type:     domain.ComponentType(req.Type),
		Method:   domain.ComponentMethod(req.Method),
		Amount:   req.Amount,
		Rate:     req.Rate,
		Currency: req.Currency,
	}

	if err := h.repository.CreatePayComponent(c); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "pay_components_code_key":
			h.badRequest(w, r, errors.New("component code already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "pay component created", c)
}

func (h *Handler) UpdatePayComponent(w http.ResponseWriter, r *http.Request) {
	componentID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid component ID")
		return
	}

	c, err := h.repository.GetPayComponentByID(componentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "pay component not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Amount   *int64  `json:"amount" validate:"omitempty,gte=0"`
		Rate     *int32  `json:"rate" validate:"omitempty,gte=0,lte=10000"`
		Currency *string `json:"currency" validate:"omitempty,len=3"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Amount != nil {
		c.Amount = *req.Amount
	}
	if req.Rate != nil {
		c.Rate = *req.Rate
	}
	if req.Currency != nil {
		c.Currency = *req.Currency
	}

	if err := h.repository.UpdatePayComponent(c); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "pay component updated", c)
}

func (h *Handler) DeletePayComponent(w http.ResponseWriter, r *http.Request) {
	componentID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid component ID")
		return
	}

	if err := h.repository.DeletePayComponent(componentID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pay component deleted", nil)
}

func (h *Handler) GetAllPayStructures(w http.ResponseWriter, r *http.Request) {
	structures, err := h.repository.GetAllPayStructures()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pay structures fetched", structures)
}

func (h *Handler) CreatePayStructure(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name" validate:"required"`
		WorkerTypeID int64   `json:"workerTypeID" validate:"required"`
		ComponentIDs []int64 `json:"componentIDs" validate:"required,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ps := &domain.PayStructure{
		Name:         req.Name,
		WorkerTypeID: req.WorkerTypeID,
	}

	if err := h.repository.CreatePayStructure(ps, req.ComponentIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "pay_structures_worker_type_id_key":
			h.badRequest(w, r, errors.New("this worker type already has a pay structure"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "pay structure created", ps)
}

func (h *Handler) GetPayStructure(w http.ResponseWriter, r *http.Request) {
	structureID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid structure ID")
		return
	}

	ps, err := h.repository.GetPayStructureByID(structureID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "pay structure not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "pay structure fetched", ps)
}

func (h *Handler) DeletePayStructure(w http.ResponseWriter, r *http.Request) {
	structureID, err := h.idParam(r)
	if err != nil {
		h.errorResponse(w, r, "invalid structure ID")
		return
	}

	if err := h.repository.DeletePayStructure(structureID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pay structure deleted", nil)
}
