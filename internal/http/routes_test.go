package httpapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/episodarr/internal/http/dto"
	"github.com/cesargomez89/episodarr/internal/logger"
)

type fakeNotifier struct {
	calls []string
	sent  bool
}

func (f *fakeNotifier) record(call string) bool {
	f.calls = append(f.calls, call)
	return f.sent
}

func (f *fakeNotifier) NotifySnatch(ctx context.Context, epName string) bool {
	return f.record("snatch:" + epName)
}

func (f *fakeNotifier) NotifyDownload(ctx context.Context, epName string) bool {
	return f.record("download:" + epName)
}

func (f *fakeNotifier) NotifySubtitleDownload(ctx context.Context, epName, lang string) bool {
	return f.record("subtitle:" + epName + ":" + lang)
}

func (f *fakeNotifier) NotifyUpdate(ctx context.Context, newVersion string) bool {
	return f.record("update:" + newVersion)
}

func (f *fakeNotifier) NotifyLogin(ctx context.Context, ipAddress string) bool {
	return f.record("login:" + ipAddress)
}

func (f *fakeNotifier) Test(ctx context.Context) bool {
	return f.record("test")
}

func newTestRouter(n Notifier) http.Handler {
	r := chi.NewRouter()
	NewHandler(n, logger.Discard()).RegisterRoutes(r)
	return r
}

func TestNotifyRoutes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
		wantCall string
	}{
		{name: "test", path: "/api/notify/test", body: "", wantCode: http.StatusOK, wantCall: "test"},
		{name: "snatch", path: "/api/notify/snatch", body: `{"name":"Show - S04E02"}`, wantCode: http.StatusOK, wantCall: "snatch:Show - S04E02"},
		{name: "download", path: "/api/notify/download", body: `{"name":"Show - S04E02"}`, wantCode: http.StatusOK, wantCall: "download:Show - S04E02"},
		{name: "subtitle", path: "/api/notify/subtitle", body: `{"name":"Show - S04E02","lang":"en"}`, wantCode: http.StatusOK, wantCall: "subtitle:Show - S04E02:en"},
		{name: "update", path: "/api/notify/update", body: `{"version":"abc123"}`, wantCode: http.StatusOK, wantCall: "update:abc123"},
		{name: "update without body", path: "/api/notify/update", body: "", wantCode: http.StatusOK, wantCall: "update:"},
		{name: "login", path: "/api/notify/login", body: `{"ip":"10.0.0.1"}`, wantCode: http.StatusOK, wantCall: "login:10.0.0.1"},
		{name: "unknown event", path: "/api/notify/fax", body: `{}`, wantCode: http.StatusNotFound},
		{name: "missing name", path: "/api/notify/download", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "bad json", path: "/api/notify/download", body: `{`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{sent: true}
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			newTestRouter(n).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("Expected status %d, got %d (%s)", tt.wantCode, rec.Code, rec.Body.String())
			}
			if tt.wantCall == "" {
				if len(n.calls) != 0 {
					t.Errorf("Expected no notifier calls, got %v", n.calls)
				}
				return
			}
			if len(n.calls) != 1 || n.calls[0] != tt.wantCall {
				t.Errorf("Expected call %q, got %v", tt.wantCall, n.calls)
			}

			var resp dto.NotifyResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if !resp.Sent {
				t.Error("Expected sent to be true")
			}
		})
	}
}

func TestNotifyReportsNotSent(t *testing.T) {
	n := &fakeNotifier{sent: false}
	req := httptest.NewRequest(http.MethodPost, "/api/notify/test", nil)
	rec := httptest.NewRecorder()

	newTestRouter(n).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sent":false`) {
		t.Errorf("Expected sent false, got %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	newTestRouter(&fakeNotifier{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}
}
