package repository

import (
	"github.com/paylinq/workforce/backend/internal/domain"
)

// UpsertCurrencyRates stores a batch of freshly fetched rates, replacing any
// existing rate for the same pair and timestamp.
func (r *Repository) UpsertCurrencyRates(rates []*domain.CurrencyRate) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO currency_rates (base, quote, rate, as_of)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (base, quote, as_of) DO UPDATE SET rate = EXCLUDED.rate
		RETURNING id, created_at
	`

	for _, rate := range rates {
		args := []any{rate.Base, rate.Quote, rate.Rate, rate.AsOf}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&rate.ID, &rate.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetLatestCurrencyRates returns the most recent rate per currency pair.
func (r *Repository) GetLatestCurrencyRates() ([]*domain.CurrencyRate, error) {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		SELECT DISTINCT ON (base, quote) id, base, quote, rate, as_of, created_at
		FROM currency_rates
		ORDER BY base, quote, as_of DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make([]*domain.CurrencyRate, 0)
	for rows.Next() {
		rate := &domain.CurrencyRate{}
		if err := rows.Scan(&rate.ID, &rate.Base, &rate.Quote, &rate.Rate, &rate.AsOf, &rate.CreatedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	return rates, rows.Err()
}
