package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"afyatoto/db"
	"afyatoto/ml"
	"afyatoto/monitoring"
	"go.uber.org/zap"
)

// UI modes: echo renders the raw selections as text; chart invokes the model
// and renders a colored risk bar.
const (
	ModeEcho  = "echo"
	ModeChart = "chart"
)

// defaultTarget keys the model invoked by /api/predict, matching the
// artifact's primary outcome.
const defaultTarget = "Under5"

// topFeatureCount is how many features /api/features returns per target.
const topFeatureCount = 20

// modelNotLoaded is the documented sentinel returned when no model is
// configured for the requested target.
const modelNotLoaded = "Model not loaded"

var (
	logger       = zap.NewNop().Sugar()
	modelSet     *ml.ModelSet
	featureTable *ml.FeatureTable
	feed         *monitoring.PredictionFeed
	uiMode       = ModeChart
)

// SetLogger installs the package logger.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		logger = l
	}
}

// SetModelSet installs the loaded models. Artifacts are immutable after
// startup, so handlers read these without synchronization.
func SetModelSet(set *ml.ModelSet) {
	modelSet = set
}

// SetFeatureTable installs the loaded feature-importance table.
func SetFeatureTable(table *ml.FeatureTable) {
	featureTable = table
}

// SetPredictionFeed installs the live dashboard feed.
func SetPredictionFeed(f *monitoring.PredictionFeed) {
	feed = f
}

// SetUIMode selects the dashboard behavior, echo or chart.
func SetUIMode(mode string) {
	if mode == ModeEcho || mode == ModeChart {
		uiMode = mode
	}
}

// RegisterHandlers registers the JSON API routes.
func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/features", handleFeatures)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/debug", handleDebug)
	mux.HandleFunc("GET /api/predictions", handlePredictions)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleFeatures maps each known target to its top features by importance.
func handleFeatures(w http.ResponseWriter, r *http.Request) {
	if featureTable.Empty() {
		respondJSON(w, map[string]string{"error": "feature importances table is empty"})
		return
	}

	result := make(map[string][]string)
	for _, target := range featureTable.Targets() {
		result[target] = featureTable.TopFeatures(target, topFeatureCount)
	}
	respondJSON(w, result)
}

// handlePredict invokes the primary model on a JSON feature vector.
func handlePredict(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	model, ok := lookupModel(defaultTarget)
	if !ok {
		respondJSON(w, map[string]interface{}{"prediction": modelNotLoaded})
		return
	}

	risk, err := model.Predict(coerceFeatures(raw))
	if err != nil {
		logger.Errorf("prediction failed: %v", err)
		respondJSON(w, map[string]interface{}{"prediction": "prediction failed"})
		return
	}

	recordPrediction(defaultTarget, risk, "api")
	respondJSON(w, map[string]interface{}{"prediction": risk})
}

// handleDebug reports artifact load state, table shape and sample rows.
func handleDebug(w http.ResponseWriter, r *http.Request) {
	shape := []int{0, 0}
	if !featureTable.Empty() {
		shape = []int{featureTable.Len(), len(featureTable.Columns())}
	}

	respondJSON(w, map[string]interface{}{
		"model_loaded":                modelSet != nil && modelSet.Len() > 0,
		"features_loaded":             !featureTable.Empty(),
		"feature_importances_shape":   shape,
		"feature_importances_columns": featureTable.Columns(),
		"available_targets":           featureTable.Targets(),
		"sample_rows":                 featureTable.Sample(5),
	})
}

// handlePredictions returns the recent prediction history.
func handlePredictions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	records, err := db.RecentPredictions(limit)
	if err != nil {
		logger.Debugf("prediction history unavailable: %v", err)
		records = []db.PredictionRecord{}
	}

	respondJSON(w, map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	})
}

// lookupModel resolves a target against the installed model set.
func lookupModel(target string) (ml.RiskModel, bool) {
	if modelSet == nil {
		return nil, false
	}
	return modelSet.For(target)
}

// coerceFeatures keeps the numeric fields of an arbitrary JSON object.
// Feature names are not validated against the model's training schema;
// unknown names simply contribute nothing to the score.
func coerceFeatures(raw map[string]interface{}) map[string]float64 {
	features := make(map[string]float64, len(raw))
	for name, value := range raw {
		if v, ok := value.(float64); ok {
			features[name] = v
		}
	}
	return features
}

// recordPrediction logs the result to history and the live feed, best effort.
func recordPrediction(target string, risk float64, mode string) {
	if err := db.SavePrediction(target, risk, mode); err != nil {
		logger.Debugf("failed to record prediction: %v", err)
	}
	if feed != nil {
		if err := feed.Publish(monitoring.PredictionEvent{Target: target, Risk: risk, Mode: mode}); err != nil {
			logger.Debugf("failed to publish prediction event: %v", err)
		}
	}
}

// respondJSON writes a JSON response body.
func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("failed to encode JSON: %v", err)
	}
}
