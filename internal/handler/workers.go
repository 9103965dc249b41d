package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/utils"
)

func (h *Handler) GetAllWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "workers fetched", workers)
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username     string   `json:"username" validate:"required"`
		FullName     string   `json:"fullName" validate:"required"`
		Email        string   `json:"email" validate:"required,email"`
		AccountRole  string   `json:"accountRole" validate:"required,oneof=admin manager staff"`
		JobRoles     []string `json:"jobRoles"`
		WorkerTypeID *int64   `json:"workerTypeID"`
		HourlyRate   int64    `json:"hourlyRate" validate:"gte=0"`
		Currency     string   `json:"currency" validate:"required,len=3"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// new workers get a generated password and receive it by mail
	password := utils.GenerateRandomPassword(h.config.NewWorker.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	worker := &domain.Worker{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		AccountRole:  domain.AccountRole(req.AccountRole),
		JobRoles:     req.JobRoles,
		WorkerTypeID: req.WorkerTypeID,
		HourlyRate:   req.HourlyRate,
		Currency:     req.Currency,
	}

	if err := h.repository.CreateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "workers_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			case pgErr.ConstraintName == "workers_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: "create_worker",
		To:   worker.Email,
		Data: domain.CreateWorkerMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker created", worker)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.successResponse(w, r, "worker fetched", worker)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName     *string   `json:"fullName"`
		Email        *string   `json:"email" validate:"omitempty,email"`
		AccountRole  *string   `json:"accountRole" validate:"omitempty,oneof=admin manager staff"`
		JobRoles     *[]string `json:"jobRoles"`
		WorkerTypeID *int64    `json:"workerTypeID"`
		HourlyRate   *int64    `json:"hourlyRate" validate:"omitempty,gte=0"`
		Currency     *string   `json:"currency" validate:"omitempty,len=3"`
		IsActive     *bool     `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if req.FullName != nil {
		worker.FullName = *req.FullName
	}
	if req.Email != nil {
		worker.Email = *req.Email
	}
	if req.AccountRole != nil {
		worker.AccountRole = domain.AccountRole(*req.AccountRole)
	}
	if req.JobRoles != nil {
		worker.JobRoles = *req.JobRoles
	}
	if req.WorkerTypeID != nil {
		worker.WorkerTypeID = req.WorkerTypeID
	}
	if req.HourlyRate != nil {
		worker.HourlyRate = *req.HourlyRate
	}
	if req.Currency != nil {
		worker.Currency = *req.Currency
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "workers_email_key":
				h.badRequest(w, r, errors.New("email already exists"))
			case pgErr.ConstraintName == "workers_username_key":
				h.badRequest(w, r, errors.New("username already exists"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "worker updated", worker)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if err := h.repository.DeleteWorker(worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "worker deleted", nil)
}
