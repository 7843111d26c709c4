package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"facilitydesk/internal/apperr"
	"facilitydesk/internal/domain/complaint"
	"facilitydesk/internal/domain/resolution"

	"github.com/labstack/echo/v4"
)

func TestHealth(t *testing.T) {
	e := echo.New()
	h := NewHandler("dev")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Service string `json:"service"`
		Env     string `json:"env"`
		Status  string `json:"status"`
		Time    string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	if body.Status != "ok" {
		t.Fatalf(`status = %q, want "ok"`, body.Status)
	}
	if body.Service != "facilitydesk" || body.Env != "dev" {
		t.Fatalf("service/env = %q/%q", body.Service, body.Env)
	}
	if _, err := time.Parse(time.RFC3339Nano, body.Time); err != nil {
		t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest},
		{complaint.ErrDuplicateRecent, http.StatusTooManyRequests},
		{apperr.Unauthorized("who are you"), http.StatusUnauthorized},
		{apperr.Forbidden("not yours"), http.StatusForbidden},
		{complaint.ErrNotFound, http.StatusNotFound},
		{resolution.ErrInvalidTransition, http.StatusConflict},
		{apperr.Dependency("push down", nil), http.StatusBadGateway},
		{errDummy{}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type errDummy struct{}

func (errDummy) Error() string { return "boom" }
