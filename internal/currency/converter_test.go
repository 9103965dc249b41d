package currency

import (
	"testing"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func TestConvert(t *testing.T) {
	conv := NewConverter([]*domain.CurrencyRate{
		{Base: "USD", Quote: "EUR", Rate: 900_000}, // 1 USD = 0.90 EUR
	})

	got, err := conv.Convert(10_000, "USD", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	if got != 9_000 {
		t.Errorf("USD->EUR: got %d, want 9000", got)
	}

	// inverse direction uses the reciprocal of the stored rate
	got, err = conv.Convert(9_000, "EUR", "USD")
	if err != nil {
		t.Fatal(err)
	}
	if got != 10_000 {
		t.Errorf("EUR->USD: got %d, want 10000", got)
	}
}

func TestConvert_SameCurrency(t *testing.T) {
	conv := NewConverter(nil)
	got, err := conv.Convert(1234, "USD", "USD")
	if err != nil || got != 1234 {
		t.Errorf("identity conversion: got %d, err %v", got, err)
	}
}

func TestConvert_MissingRate(t *testing.T) {
	conv := NewConverter(nil)
	if _, err := conv.Convert(100, "USD", "JPY"); err == nil {
		t.Error("expected error for missing rate")
	}
}
