package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/paylinq/workforce/backend/internal/cache"
	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/roster"
)

// GetStationCoverage reports how well a station's roster covers one day,
// slot by slot. Results are cached until a shift on that day changes.
func (h *Handler) GetStationCoverage(w http.ResponseWriter, r *http.Request) {
	station := r.Context().Value(StationCtx).(*domain.Station)

	dateParam := r.URL.Query().Get("date")
	day, err := time.Parse("2006-01-02", dateParam)
	if err != nil {
		h.errorResponse(w, r, "invalid date")
		return
	}

	interval := h.config.Coverage.IntervalMinutes
	if param := r.URL.Query().Get("interval"); param != "" {
		interval, err = strconv.Atoi(param)
		if err != nil || (interval != 15 && interval != 30 && interval != 60) {
			h.errorResponse(w, r, "interval must be 15, 30 or 60")
			return
		}
	}

	grouped := r.URL.Query().Get("grouped") == "true"

	key := cache.CoverageKey(station.ID, day.Format("2006-01-02"), interval)

	var results []roster.CoverageResult
	found, err := h.cache.GetJSON(key, &results)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !found {
		shifts, err := h.repository.GetShiftsInRange(day, day, station.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		workerRoles, err := h.repository.JobRolesByWorkerID()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		// stations without a template have no required roles, every
		// slot then reports full coverage
		var requiredRoles []string
		template, err := h.repository.GetStationTemplate(station.ID)
		switch {
		case err == nil:
			requiredRoles = template.RequiredRoles
		case errors.Is(err, sql.ErrNoRows):
		default:
			h.internalServerError(w, r, err)
			return
		}

		results = roster.BuildDayCoverage(day, station.ID, interval, shifts, workerRoles, requiredRoles)

		expiration := time.Duration(h.config.Coverage.CacheExpiration) * time.Second
		if err := h.cache.SetJSON(key, results, expiration); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	if grouped {
		h.successResponse(w, r, "coverage fetched", roster.GroupCoverage(results, interval))
		return
	}

	h.successResponse(w, r, "coverage fetched", results)
}
