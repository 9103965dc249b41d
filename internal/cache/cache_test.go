package cache

import (
	"strings"
	"testing"
)

func TestKeyString(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{CoverageKey(5, "2026-03-02", 15), "coverage:5:2026-03-02:15"},
		{RatesKey("USD"), "fx_rates:USD"},
		{OTPKey("jdoe", "reset_password"), "otp:jdoe:reset_password"},
		{Key{Resource: "bare"}, "bare"},
	}

	for _, c := range cases {
		if got := c.key.String(); got != c.want {
			t.Errorf("%+v -> %q, want %q", c.key, got, c.want)
		}
	}
}

func TestCoveragePrefixCoversCoverageKeys(t *testing.T) {
	prefix := CoveragePrefix(5).String() + ":"

	// every coverage key of the station must fall under the scan pattern
	for _, interval := range []int{15, 30, 60} {
		key := CoverageKey(5, "2026-03-02", interval).String()
		if !strings.HasPrefix(key, prefix) {
			t.Errorf("%q not under prefix %q", key, prefix)
		}
	}

	other := CoverageKey(51, "2026-03-02", 15).String()
	if strings.HasPrefix(other, prefix) {
		t.Errorf("%q of another station matches prefix %q", other, prefix)
	}
}
