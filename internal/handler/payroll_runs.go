package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/paylinq/workforce/backend/internal/currency"
	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/payroll"
)

func (h *Handler) GetAllPayrollRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.repository.GetAllPayrollRuns()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll runs fetched", runs)
}

func (h *Handler) CreatePayrollRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required"`
		PeriodStart string `json:"periodStart" validate:"required"`
		PeriodEnd   string `json:"periodEnd" validate:"required"`
		Currency    string `json:"currency" validate:"required,len=3"`
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

	run := &domain.PayrollRun{
		Name:        req.Name,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Currency:    req.Currency,
		Status:      domain.PayrollRunStatusDraft,
	}

	if err := h.repository.CreatePayrollRun(run); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll run created", run)
}

func (h *Handler) GetPayrollRun(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(PayrollRunCtx).(*domain.PayrollRun)
	h.successResponse(w, r, "payroll run fetched", run)
}

func (h *Handler) TransitionPayrollRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to" validate:"required,oneof=draft processing review approved paid cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	run := r.Context().Value(PayrollRunCtx).(*domain.PayrollRun)

	if err := payroll.Transition(run, domain.PayrollRunStatus(req.To)); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdatePayrollRunStatus(run); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the run was modified by someone else, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if run.Status == domain.PayrollRunStatusPaid {
		if err := h.notifyPayslips(run); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "payroll run transitioned", run)
}

// notifyPayslips mails every worker in a paid run their net amount.
func (h *Handler) notifyPayslips(run *domain.PayrollRun) error {
	entries, err := h.repository.GetPayrollEntries(run.ID)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		worker, err := h.repository.GetWorkerByID(entry.WorkerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return err
		}

		mailMessage := domain.MailMessage{
			Type: "payslip_ready",
			To:   worker.Email,
			Data: domain.PayslipReadyMailData{
				FullName:  worker.FullName,
				RunName:   run.Name,
				NetAmount: fmt.Sprintf("%d.%02d", entry.NetAmount/100, entry.NetAmount%100),
				Currency:  run.Currency,
			},
		}

		if err := h.publishMail(mailMessage); err != nil {
			return err
		}
	}
	return nil
}

// CalculatePayrollRun computes an entry for every active worker with a
// timesheet in the run period, then parks the run in review. Recalculating
// a draft run replaces its previous entries.
func (h *Handler) CalculatePayrollRun(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(PayrollRunCtx).(*domain.PayrollRun)

	if run.Status != domain.PayrollRunStatusDraft {
		h.errorResponse(w, r, "only draft runs can be calculated")
		return
	}

	if err := payroll.Transition(run, domain.PayrollRunStatusProcessing); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.repository.UpdatePayrollRunStatus(run); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the run was modified by someone else, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	rates, err := h.repository.GetLatestCurrencyRates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	engine := payroll.NewEngine(currency.NewConverter(rates), h.config.Payroll.OvertimeWeeklyMinutes)

	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries := make([]*domain.PayrollEntry, 0)
	for _, worker := range workers {
		if !worker.IsActive {
			continue
		}

		ts, err := h.repository.GetTimesheet(worker.ID, run.PeriodStart, run.PeriodEnd)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			h.internalServerError(w, r, err)
			return
		}

		in := payroll.WorkerInput{
			Worker:    worker,
			Timesheet: ts,
		}

		if worker.WorkerTypeID != nil {
			wt, err := h.repository.GetWorkerTypeByID(*worker.WorkerTypeID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				h.internalServerError(w, r, err)
				return
			}
			in.WorkerType = wt

			structure, err := h.repository.GetPayStructureForWorkerType(*worker.WorkerTypeID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				h.internalServerError(w, r, err)
				return
			}
			in.Structure = structure
		}

		entry, err := engine.Calculate(run, in)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		entries = append(entries, entry)
	}

	if err := h.repository.ReplacePayrollEntries(run.ID, entries); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := payroll.Transition(run, domain.PayrollRunStatusReview); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.repository.UpdatePayrollRunStatus(run); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "the run was modified by someone else, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "payroll run calculated", entries)
}

func (h *Handler) GetPayrollRunEntries(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(PayrollRunCtx).(*domain.PayrollRun)

	entries, err := h.repository.GetPayrollEntries(run.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll entries fetched", entries)
}

func (h *Handler) DeletePayrollRun(w http.ResponseWriter, r *http.Request) {
	run := r.Context().Value(PayrollRunCtx).(*domain.PayrollRun)

	if run.Status != domain.PayrollRunStatusDraft && run.Status != domain.PayrollRunStatusCancelled {
		h.errorResponse(w, r, "only draft or cancelled runs can be deleted")
		return
	}

	if err := h.repository.DeletePayrollRun(run.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll run deleted", nil)
}
