package handler

import (
	"net/http"
	"time"

	"github.com/paylinq/workforce/backend/internal/cache"
	"github.com/paylinq/workforce/backend/internal/domain"
)

func (h *Handler) GetCurrencyRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.repository.GetLatestCurrencyRates()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "currency rates fetched", rates)
}

// RefreshCurrencyRates pulls fresh FX rates from the provider and stores
// them. Rates are also cached so repeated refreshes within the cache window
// do not hammer the provider.
func (h *Handler) RefreshCurrencyRates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Base    string   `json:"base" validate:"required,len=3"`
		Symbols []string `json:"symbols" validate:"required,min=1,dive,len=3"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	key := cache.RatesKey(req.Base)

	var rates []*domain.CurrencyRate
	found, err := h.cache.GetJSON(key, &rates)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if !found {
		rates, err = h.fxClient.FetchRates(r.Context(), req.Base, req.Symbols)
		if err != nil {
			h.errorResponse(w, r, "the rate provider is unavailable, please retry later")
			return
		}

		if err := h.repository.UpsertCurrencyRates(rates); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		expiration := time.Duration(h.config.FX.CacheExpiration) * time.Second
		if err := h.cache.SetJSON(key, rates, expiration); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "currency rates refreshed", rates)
}
