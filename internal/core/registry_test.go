package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubFeature struct {
	*BaseFeature
	initErr error
	routes  []Route
}

func (f *stubFeature) Init(ctx context.Context) error {
	if f.initErr != nil {
		return f.initErr
	}
	return f.BaseFeature.Init(ctx)
}

func (f *stubFeature) Routes() []Route {
	return f.routes
}

func newStubFeature(logger *Logger, name string, enabled bool, paths ...string) *stubFeature {
	routes := make([]Route, 0, len(paths))
	for _, p := range paths {
		routes = append(routes, Route{Method: http.MethodGet, Path: p, Handler: func(http.ResponseWriter, *http.Request) {}})
	}
	return &stubFeature{
		BaseFeature: NewBaseFeature(name, name+" feature", enabled, logger),
		routes:      routes,
	}
}

func TestRegistry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)
	registry := NewRegistry(logger)

	if err := registry.Register(newStubFeature(logger, "news", true, "/api/news")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(newStubFeature(logger, "diagnostics", false, "/test")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := registry.Register(newStubFeature(logger, "news", true)); err == nil {
		t.Error("Expected duplicate registration to fail")
	}

	features := registry.List()
	if len(features) != 2 || features[0].Name() != "diagnostics" || features[1].Name() != "news" {
		t.Errorf("Expected features sorted by name, got %v", features)
	}

	routes := registry.GetAllRoutes()
	if len(routes) != 1 || routes[0].Path != "/api/news" {
		t.Errorf("Expected only enabled feature routes, got %+v", routes)
	}

	if err := registry.InitAll(context.Background()); err != nil {
		t.Fatalf("InitAll failed: %v", err)
	}
	if !strings.Contains(buf.String(), "feature=news") {
		t.Errorf("Expected feature-tagged log line, got %q", buf.String())
	}

	status := registry.GetFeatureStatus()
	if status["diagnostics"].Enabled || !status["news"].Enabled {
		t.Errorf("Unexpected feature status: %+v", status)
	}
}

func TestRegistryInitAllWrapsErrors(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelInfo)
	registry := NewRegistry(logger)

	feature := newStubFeature(logger, "broken", true)
	feature.initErr = errors.New("boom")
	if err := registry.Register(feature); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := registry.InitAll(context.Background())
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != ErrCodeFeature {
		t.Fatalf("Expected feature error, got %v", err)
	}
	if !errors.Is(err, feature.initErr) {
		t.Error("Expected the original error to be wrapped")
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{NewValidationError("bad limit", nil), http.StatusBadRequest, ErrCodeValidation},
		{NewNotFoundError("missing", nil), http.StatusNotFound, ErrCodeNotFound},
		{NewMethodNotAllowedError("POST not supported"), http.StatusMethodNotAllowed, ErrCodeMethod},
		{errors.New("plain"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		HandleError(rec, tt.err)

		if rec.Code != tt.wantStatus {
			t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
		}

		var body struct {
			Error   AppError `json:"error"`
			Success bool     `json:"success"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode error body: %v", err)
		}
		if body.Success || body.Error.Code != tt.wantCode {
			t.Errorf("Unexpected error body: %+v", body)
		}
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelInfo)
	featureLogger := logger.ForFeature("news")

	featureLogger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected debug to be filtered, got %q", buf.String())
	}

	logger.SetLevel(slog.LevelDebug)
	featureLogger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected debug output after SetLevel, got %q", buf.String())
	}
}
