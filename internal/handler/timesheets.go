package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/payroll"
)

// GenerateTimesheet rebuilds a worker's timesheet for a period from their
// shifts. Regenerating replaces any earlier timesheet for the same period.
func (h *Handler) GenerateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID    int64  `json:"workerID" validate:"required"`
		PeriodStart string `json:"periodStart" validate:"required"`
		PeriodEnd   string `json:"periodEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		h.errorResponse(w, r, "invalid period start")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		h.errorResponse(w, r, "invalid period end")
		return
	}
	if periodEnd.Before(periodStart) {
		h.errorResponse(w, r, "period end must not be before period start")
		return
	}

	shifts, err := h.repository.GetWorkerShiftsInRange(req.WorkerID, periodStart, periodEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ts := payroll.BuildTimesheet(req.WorkerID, periodStart, periodEnd, shifts)

	if err := h.repository.CreateTimesheet(ts); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "timesheet generated", ts)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	workerID, err := strconv.ParseInt(r.URL.Query().Get("workerID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid worker ID")
		return
	}

	periodStart, err := time.Parse("2006-01-02", r.URL.Query().Get("periodStart"))
	if err != nil {
		h.errorResponse(w, r, "invalid period start")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", r.URL.Query().Get("periodEnd"))
	if err != nil {
		h.errorResponse(w, r, "invalid period end")
		return
	}

	ts, err := h.repository.GetTimesheet(workerID, periodStart, periodEnd)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "timesheet not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "timesheet fetched", ts)
}

func (h *Handler) ApproveTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID    int64  `json:"workerID" validate:"required"`
		PeriodStart string `json:"periodStart" validate:"required"`
		PeriodEnd   string `json:"periodEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		h.errorResponse(w, r, "invalid period start")
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		h.errorResponse(w, r, "invalid period end")
		return
	}

	ts, err := h.repository.GetTimesheet(req.WorkerID, periodStart, periodEnd)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "timesheet not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if ts.Status == domain.TimesheetStatusApproved {
		h.errorResponse(w, r, "timesheet is already approved")
		return
	}

	ts.Status = domain.TimesheetStatusApproved

	if err := h.repository.ApproveTimesheet(ts); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "approve failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "timesheet approved", ts)
}
