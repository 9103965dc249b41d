package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchRates_RetriesOnServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, DefaultRetryPolicy(1, time.Millisecond))
	rates, err := client.FetchRates(context.Background(), "USD", []string{"EUR"})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
	if len(rates) != 1 || rates[0].Quote != "EUR" || rates[0].Rate != 900_000 {
		t.Errorf("unexpected rates: %+v", rates)
	}
}

func TestFetchRates_DoesNotRetryAuthErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", time.Second, DefaultRetryPolicy(3, time.Millisecond))
	if _, err := client.FetchRates(context.Background(), "USD", []string{"EUR"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("auth error retried: %d calls", calls)
	}
}

func TestFetchRates_SendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("base") != "USD" {
			t.Errorf("base query = %q", r.URL.Query().Get("base"))
		}
		w.Write([]byte(`{"base":"USD","rates":{}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second, DefaultRetryPolicy(0, 0))
	if _, err := client.FetchRates(context.Background(), "USD", []string{"EUR"}); err != nil {
		t.Fatal(err)
	}
}
