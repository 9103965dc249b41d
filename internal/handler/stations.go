package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func (h *Handler) GetAllStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.repository.GetAllStations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "stations fetched", stations)
}

func (h *Handler) CreateStation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Location string `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	station := &domain.Station{
		Name:     req.Name,
		Location: req.Location,
	}

	if err := h.repository.CreateStation(station); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "stations_name_key":
			h.badRequest(w, r, errors.New("station name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "station created", station)
}

func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	station := r.Context().Value(StationCtx).(*domain.Station)
	h.successResponse(w, r, "station fetched", station)
}

func (h *Handler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	station := r.Context().Value(StationCtx).(*domain.Station)

	if req.Name != nil {
		station.Name = *req.Name
	}
	if req.Location != nil {
		station.Location = *req.Location
	}

	if err := h.repository.UpdateStation(station); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "stations_name_key":
			h.badRequest(w, r, errors.New("station name already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "station updated", station)
}

func (h *Handler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	station := r.Context().Value(StationCtx).(*domain.Station)

	if err := h.repository.DeleteStation(station.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "station deleted", nil)
}
