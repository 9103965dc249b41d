// Package currency stores and applies foreign exchange rates for payroll.
package currency

import (
	"fmt"

	"github.com/paylinq/workforce/backend/internal/domain"
)

type pair struct {
	base, quote string
}

// Converter converts minor-unit amounts between currencies using a fixed
// snapshot of rates. Build one per calculation so a payroll run sees a single
// consistent rate table.
type Converter struct {
	rates map[pair]int64
}

func NewConverter(rates []*domain.CurrencyRate) *Converter {
	c := &Converter{rates: make(map[pair]int64, len(rates))}
	for _, r := range rates {
		c.rates[pair{r.Base, r.Quote}] = r.Rate
	}
	return c
}

// Convert returns amount expressed in the target currency. A direct rate is
// preferred; the inverse rate is used when only the opposite direction is
// stored.
func (c *Converter) Convert(amount int64, from, to string) (int64, error) {
	if from == to || from == "" || to == "" {
		return amount, nil
	}

	if rate, ok := c.rates[pair{from, to}]; ok {
		return amount * rate / domain.RateScale, nil
	}
	if rate, ok := c.rates[pair{to, from}]; ok && rate != 0 {
		return amount * domain.RateScale / rate, nil
	}

	return 0, fmt.Errorf("no exchange rate for %s/%s", from, to)
}
