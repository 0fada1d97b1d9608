package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func readiness(t *testing.T, production bool, checks map[string]Checker) (int, readinessResponse, string) {
	t.Helper()
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

	if err := NewReadinessHandler(checks, production).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp, rec.Body.String()
}

func TestReadiness_AllHealthy(t *testing.T) {
	code, resp, _ := readiness(t, true, map[string]Checker{
		"mongo": func(context.Context) error { return nil },
	})
	if code != http.StatusOK || resp.Status != "ok" || resp.Dependencies["mongo"].Status != "ok" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}
}

func TestReadiness_DegradedShowsCauseOutsideProduction(t *testing.T) {
	checks := map[string]Checker{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("dial tcp 10.0.0.7:6379: connection refused") },
	}

	code, resp, _ := readiness(t, false, checks)
	if code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}
	if got := resp.Dependencies["redis"]; got.Status != "unhealthy" || !strings.Contains(got.Error, "connection refused") {
		t.Fatalf("redis status = %+v", got)
	}
}

func TestReadiness_DegradedHidesCauseInProduction(t *testing.T) {
	code, resp, body := readiness(t, true, map[string]Checker{
		"redis": func(context.Context) error { return errors.New("dial tcp 10.0.0.7:6379: connection refused") },
	})
	if code != http.StatusServiceUnavailable || resp.Dependencies["redis"].Status != "unhealthy" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}
	if strings.Contains(body, "10.0.0.7") || resp.Dependencies["redis"].Error != "" {
		t.Fatalf("production response leaks ping error: %s", body)
	}
}

func TestLiveness(t *testing.T) {
	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler(time.Now().Add(-time.Minute)).Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp livenessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "ok" || resp.Uptime < 60 {
		t.Fatalf("unexpected liveness %+v", resp)
	}
}
