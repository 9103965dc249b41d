package domain

import "time"

// CurrencyRate holds the units of Quote bought by one unit of Base,
// scaled by 1e6 to avoid floating point drift in payroll math.
type CurrencyRate struct {
	ID        int64     `json:"id"`
	Base      string    `json:"base"`
	Quote     string    `json:"quote"`
	Rate      int64     `json:"rate"` // micro-units
	AsOf      time.Time `json:"asOf"`
	CreatedAt time.Time `json:"createdAt"`
}

const RateScale = 1_000_000
