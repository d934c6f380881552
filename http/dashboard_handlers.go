package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// RegisterDashboardRoutes registers the landing page, the interactive UI and
// its server-side callback.
func RegisterDashboardRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /dashboard/", handleDashboardPage)
	mux.HandleFunc("POST /api/dashboard/predict", handleDashboardPredict)
	mux.HandleFunc("GET /api/ws/dashboard", handleDashboardFeed)
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(landingHTML))
}

func handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	page := strings.ReplaceAll(dashboardHTML, "__MODE__", uiMode)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func handleDashboardFeed(w http.ResponseWriter, r *http.Request) {
	if feed == nil {
		http.Error(w, `{"error":"prediction feed not available"}`, http.StatusServiceUnavailable)
		return
	}
	feed.HandleWebSocket(w, r)
}

// dashboardPredictRequest carries the dropdown selections per target.
type dashboardPredictRequest struct {
	Selections map[string][]string `json:"selections"`
}

// handleDashboardPredict backs the dashboard's predict button. In echo mode
// it renders the raw selections as text without calling the model; in chart
// mode it invokes the primary model and returns the bar color and icon.
func handleDashboardPredict(w http.ResponseWriter, r *http.Request) {
	var req dashboardPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	switch uiMode {
	case ModeEcho:
		respondJSON(w, echoResponse(req.Selections))
	default:
		respondJSON(w, chartResponse(req.Selections))
	}
}

func echoResponse(selections map[string][]string) map[string]interface{} {
	total := 0
	for _, features := range selections {
		total += len(features)
	}
	if total == 0 {
		return map[string]interface{}{
			"mode":    ModeEcho,
			"message": "ℹ️ Select features first.",
		}
	}

	parts := make([]string, 0, len(selections))
	for _, target := range selectionOrder(selections) {
		parts = append(parts, fmt.Sprintf("%s=[%s]", target, strings.Join(selections[target], ", ")))
	}
	return map[string]interface{}{
		"mode":    ModeEcho,
		"message": "✅ Selected features: " + strings.Join(parts, "; "),
	}
}

func chartResponse(selections map[string][]string) map[string]interface{} {
	model, ok := lookupModel(defaultTarget)
	if !ok {
		return map[string]interface{}{
			"mode":    ModeChart,
			"message": modelNotLoaded,
		}
	}

	// Selected features enter the model as unit indicators.
	features := make(map[string]float64)
	for _, selected := range selections {
		for _, feature := range selected {
			features[feature] = 1.0
		}
	}

	risk, err := model.Predict(features)
	if err != nil {
		logger.Errorf("dashboard prediction failed: %v", err)
		return map[string]interface{}{
			"mode":    ModeChart,
			"message": "prediction failed",
		}
	}

	color, icon := "green", "✅"
	if risk > 0.5 {
		color, icon = "red", "⚠️"
	}

	recordPrediction(defaultTarget, risk, "dashboard")

	return map[string]interface{}{
		"mode":       ModeChart,
		"target":     defaultTarget,
		"prediction": risk,
		"color":      color,
		"icon":       icon,
	}
}

// selectionOrder lists selection targets in the feature table's order, with
// unknown targets appended alphabetically.
func selectionOrder(selections map[string][]string) []string {
	order := make([]string, 0, len(selections))
	seen := make(map[string]bool)

	if featureTable != nil {
		for _, target := range featureTable.Targets() {
			if _, ok := selections[target]; ok {
				order = append(order, target)
				seen[target] = true
			}
		}
	}

	rest := make([]string, 0)
	for target := range selections {
		if !seen[target] {
			rest = append(rest, target)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
