package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"afyatoto/ml"
)

func TestHealthHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(handleHealth)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := `{"status":"ok"}`
	if rr.Body.String() != expected+"\n" && rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestIndexLinksToDashboard(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDashboardRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/dashboard/") {
		t.Fatal("expected landing page to link to /dashboard/")
	}
	if !strings.Contains(w.Body.String(), "Afya Toto") {
		t.Fatal("expected landing page title")
	}
}

func TestHandleFeaturesEmptyTable(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetFeatureTable(ml.NewFeatureTable(nil))
	defer SetFeatureTable(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := payload["error"]; !ok {
		t.Fatalf("expected error field, got %v", payload)
	}
}

func TestHandleFeaturesLoadedTable(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)
	SetFeatureTable(ml.NewFeatureTable([]ml.ImportanceRow{
		{Target: "Under5", Feature: "A", Importance: 0.9},
		{Target: "Under5", Feature: "B", Importance: 0.5},
		{Target: "Infant", Feature: "C", Importance: 0.7},
	}))
	defer SetFeatureTable(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/features", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	var payload map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 targets, got %v", payload)
	}
	if len(payload["Under5"]) != 2 || payload["Under5"][0] != "A" {
		t.Fatalf("unexpected Under5 features: %v", payload["Under5"])
	}
	if len(payload["Under5"]) > topFeatureCount {
		t.Fatalf("expected at most %d features", topFeatureCount)
	}
}

func TestHandlePredictionsWithoutHistory(t *testing.T) {
	mux := http.NewServeMux()
	RegisterHandlers(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/predictions", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["count"].(float64) != 0 {
		t.Fatalf("expected empty history, got %v", payload)
	}
}
