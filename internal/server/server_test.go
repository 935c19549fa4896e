package server_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/config"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/server"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
	"github.com/jsp1440/orchid-continuum-sub004/internal/testutil"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	database := testutil.NewTestDatabase(t)
	engine := services.NewEngine(catalog.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	return server.New(
		config.Config{APIToken: "test-token", Port: "0"},
		engine,
		repository.NewOrchidRepository(database),
		repository.NewCalendarRepository(database),
	).Handler()
}

func TestServer_HealthIsPublic(t *testing.T) {
	handler := newTestServer(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestServer_APIRequiresToken(t *testing.T) {
	handler := newTestServer(t)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer test-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/orchids", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)
			if recorder.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, recorder.Code)
			}
		})
	}
}

func TestServer_EndToEnd(t *testing.T) {
	handler := newTestServer(t)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		request := httptest.NewRequest(method, path, reader)
		request.Header.Set("Authorization", "Bearer test-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	recorder := send(http.MethodGet, "/api/genera", "")
	if !strings.Contains(recorder.Body.String(), "Phalaenopsis") {
		t.Fatalf("expected Phalaenopsis in genera, got %s", recorder.Body.String())
	}

	recorder = send(http.MethodPost, "/api/orchids", `{"name": "Bathroom Paph", "genus": "Paphiopedilum", "growth_stage": "mature_blooming"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var orchid struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &orchid); err != nil {
		t.Fatalf("decoding orchid: %v", err)
	}

	recorder = send(http.MethodPost, "/api/orchids/"+orchid.ID+"/calendars",
		`{"start_date": "2025-01-01", "end_date": "2025-01-31", "preferences": {"skill_level": "beginner", "max_daily_minutes": 20}}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var calendar struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &calendar); err != nil {
		t.Fatalf("decoding calendar: %v", err)
	}

	recorder = send(http.MethodGet, "/api/calendars/"+calendar.ID+"/export/ics", "")
	if recorder.Code != http.StatusOK || !strings.HasPrefix(recorder.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("unexpected ics export %d: %.40s", recorder.Code, recorder.Body.String())
	}
}
