package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/paylinq/workforce/backend/internal/cache"
	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/roster"
)

// invalidateCoverage drops the cached coverage of a station for one day,
// at every interval clients may have requested.
func (h *Handler) invalidateCoverage(stationID int64, day time.Time) error {
	date := day.Format("2006-01-02")
	keys := []cache.Key{
		cache.CoverageKey(stationID, date, 15),
		cache.CoverageKey(stationID, date, 30),
		cache.CoverageKey(stationID, date, 60),
	}
	return h.cache.Delete(keys...)
}

// invalidateStationCoverage drops every cached coverage day for a station.
// Template changes affect the required roles of all days at once, so the
// per-day invalidation is not enough there.
func (h *Handler) invalidateStationCoverage(stationID int64) error {
	return h.cache.DeletePrefix(cache.CoveragePrefix(stationID))
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	from, err := time.Parse("2006-01-02", fromParam)
	if err != nil {
		h.errorResponse(w, r, "invalid from date")
		return
	}
	to, err := time.Parse("2006-01-02", toParam)
	if err != nil {
		h.errorResponse(w, r, "invalid to date")
		return
	}

	var stationID int64
	if param := r.URL.Query().Get("stationID"); param != "" {
		stationID, err = strconv.ParseInt(param, 10, 64)
		if err != nil {
			h.errorResponse(w, r, "invalid station ID")
			return
		}
	}

	shifts, err := h.repository.GetShiftsInRange(from, to, stationID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts fetched", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StationID int64  `json:"stationID" validate:"required"`
		WorkerID  int64  `json:"workerID" validate:"required"`
		ShiftDate string `json:"shiftDate" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shiftDate, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		h.errorResponse(w, r, "invalid shift date")
		return
	}

	if err := roster.ValidateShiftWindow(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		StationID: req.StationID,
		WorkerID:  req.WorkerID,
		ShiftDate: shiftDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    domain.ShiftStatusScheduled,
	}

	// a worker cannot hold two overlapping shifts on the same day
	existing, err := h.repository.GetWorkerShiftsInRange(req.WorkerID, shiftDate, shiftDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflict := roster.FindConflict(shift, existing); conflict != nil {
		h.errorResponse(w, r, fmt.Sprintf("the worker already has a shift from %s to %s on this day", conflict.StartTime, conflict.EndTime))
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.invalidateCoverage(shift.StationID, shift.ShiftDate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID *int64  `json:"workerID"`
		Status   *string `json:"status" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if req.WorkerID != nil {
		shift.WorkerID = *req.WorkerID
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.invalidateCoverage(shift.StationID, shift.ShiftDate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

// UpdateShiftTime repositions a shift on the calendar, the backend half of
// dragging a shift card to a new slot.
func (h *Handler) UpdateShiftTime(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftDate string `json:"shiftDate" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shiftDate, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		h.errorResponse(w, r, "invalid shift date")
		return
	}

	if err := roster.ValidateShiftWindow(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	oldDate := shift.ShiftDate

	shift.ShiftDate = shiftDate
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime

	existing, err := h.repository.GetWorkerShiftsInRange(shift.WorkerID, shiftDate, shiftDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflict := roster.FindConflict(shift, existing); conflict != nil {
		h.errorResponse(w, r, fmt.Sprintf("the worker already has a shift from %s to %s on this day", conflict.StartTime, conflict.EndTime))
		return
	}

	if err := h.repository.UpdateShiftTime(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the shift was modified by someone else, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.invalidateCoverage(shift.StationID, oldDate); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !roster.SameDay(oldDate, shift.ShiftDate) {
		if err := h.invalidateCoverage(shift.StationID, shift.ShiftDate); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "shift moved", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.invalidateCoverage(shift.StationID, shift.ShiftDate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}
