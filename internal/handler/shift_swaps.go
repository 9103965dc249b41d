package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/roster"
)

func (h *Handler) GetAllShiftSwaps(w http.ResponseWriter, r *http.Request) {
	status := domain.SwapStatus(r.URL.Query().Get("status"))

	swaps, err := h.repository.GetAllShiftSwaps(status)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap requests fetched", swaps)
}

func (h *Handler) RequestShiftSwap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftID        int64  `json:"shiftID" validate:"required"`
		TargetWorkerID int64  `json:"targetWorkerID" validate:"required"`
		Reason         string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.Worker)

	shift, err := h.repository.GetShiftByID(req.ShiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if shift.WorkerID != myInfo.ID {
		h.errorResponse(w, r, "you can only swap your own shifts")
		return
	}
	if shift.Status == domain.ShiftStatusCancelled || shift.Status == domain.ShiftStatusCompleted {
		h.errorResponse(w, r, "this shift can no longer be swapped")
		return
	}
	if req.TargetWorkerID == myInfo.ID {
		h.errorResponse(w, r, "you cannot swap a shift to yourself")
		return
	}

	// the target must be free during the shift window
	targetShifts, err := h.repository.GetWorkerShiftsInRange(req.TargetWorkerID, shift.ShiftDate, shift.ShiftDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	candidate := &domain.Shift{
		WorkerID:  req.TargetWorkerID,
		ShiftDate: shift.ShiftDate,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
	}
	if conflict := roster.FindConflict(candidate, targetShifts); conflict != nil {
		h.errorResponse(w, r, "the target worker already has a shift during this window")
		return
	}

	swap := &domain.ShiftSwap{
		ShiftID:            req.ShiftID,
		RequestingWorkerID: myInfo.ID,
		TargetWorkerID:     req.TargetWorkerID,
		Reason:             req.Reason,
		Status:             domain.SwapStatusPending,
	}

	if err := h.repository.CreateShiftSwap(swap); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap requested", swap)
}

func (h *Handler) GetShiftSwap(w http.ResponseWriter, r *http.Request) {
	swap := r.Context().Value(ShiftSwapCtx).(*domain.ShiftSwap)
	h.successResponse(w, r, "swap request fetched", swap)
}

// swapDecisionMail builds the decision notification for one of the workers
// involved in a swap.
func swapDecisionMail(to *domain.Worker, shift *domain.Shift, status domain.SwapStatus) domain.MailMessage {
	return domain.MailMessage{
		Type: "swap_decision",
		To:   to.Email,
		Data: domain.SwapDecisionMailData{
			FullName:  to.FullName,
			ShiftDate: shift.ShiftDate.Format("2006-01-02"),
			StartTime: roster.FormatTime(shift.StartTime),
			EndTime:   roster.FormatTime(shift.EndTime),
			Decision:  string(status),
		},
	}
}

func (h *Handler) DecideShiftSwap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approve bool `json:"approve"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	swap := r.Context().Value(ShiftSwapCtx).(*domain.ShiftSwap)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Worker)

	if swap.Status != domain.SwapStatusPending {
		h.errorResponse(w, r, "this swap request has already been decided")
		return
	}

	shift, err := h.repository.GetShiftByID(swap.ShiftID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.Approve {
		// the target may have picked up a shift since the request was made
		targetShifts, err := h.repository.GetWorkerShiftsInRange(swap.TargetWorkerID, shift.ShiftDate, shift.ShiftDate)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		candidate := &domain.Shift{
			WorkerID:  swap.TargetWorkerID,
			ShiftDate: shift.ShiftDate,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
		}
		if conflict := roster.FindConflict(candidate, targetShifts); conflict != nil {
			h.errorResponse(w, r, "the target worker now has a conflicting shift, the swap cannot be approved")
			return
		}
	}

	now := time.Now()
	swap.DecidedBy = &myInfo.ID
	swap.DecidedAt = &now
	if req.Approve {
		swap.Status = domain.SwapStatusApproved
	} else {
		swap.Status = domain.SwapStatusRejected
	}

	if err := h.repository.DecideShiftSwap(swap); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "decide failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if swap.Status == domain.SwapStatusApproved {
		if err := h.invalidateCoverage(shift.StationID, shift.ShiftDate); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	requester, err := h.repository.GetWorkerByID(swap.RequestingWorkerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(swapDecisionMail(requester, shift, swap.Status)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// on approval the target worker gains the shift and must hear about it
	if swap.Status == domain.SwapStatusApproved {
		target, err := h.repository.GetWorkerByID(swap.TargetWorkerID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if err := h.publishMail(swapDecisionMail(target, shift, swap.Status)); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "swap request decided", swap)
}

func (h *Handler) CancelShiftSwap(w http.ResponseWriter, r *http.Request) {
	swap := r.Context().Value(ShiftSwapCtx).(*domain.ShiftSwap)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Worker)

	if swap.RequestingWorkerID != myInfo.ID {
		h.errorResponse(w, r, "you can only cancel your own swap requests")
		return
	}
	if swap.Status != domain.SwapStatusPending {
		h.errorResponse(w, r, "only pending swap requests can be cancelled")
		return
	}

	now := time.Now()
	swap.Status = domain.SwapStatusCancelled
	swap.DecidedBy = &myInfo.ID
	swap.DecidedAt = &now

	if err := h.repository.DecideShiftSwap(swap); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cancel failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "swap request cancelled", swap)
}
