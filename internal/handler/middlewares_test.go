package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID(t *testing.T) {
	h := &Handler{}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDCtxKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.requestID(next).ServeHTTP(rec, req)

	if seen == "" {
		t.Fatal("no request ID in context")
	}
	// the response header must carry the same ID the logs will show
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("header %q, context %q", got, seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec = httptest.NewRecorder()
	h.requestID(next).ServeHTTP(rec, req)

	if seen != "upstream-id" {
		t.Errorf("client-supplied ID replaced with %q", seen)
	}
}
