// Command make_artifacts writes sample model and feature-importance artifacts
// in the service's wire format, for local development without the file host.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"afyatoto/ml"
)

func main() {
	modelPath := flag.String("model_path", "final_model.json", "model output path")
	featuresPath := flag.String("features_path", "feature_importances.json", "feature importances output path")
	flag.Parse()

	if err := writeJSON(*modelPath, sampleModels()); err != nil {
		log.Fatalf("failed to write model: %v", err)
	}
	if err := writeJSON(*featuresPath, sampleImportances()); err != nil {
		log.Fatalf("failed to write feature importances: %v", err)
	}

	fmt.Printf("artifacts written to %s and %s\n", *modelPath, *featuresPath)
}

func sampleModels() map[string]interface{} {
	return map[string]interface{}{
		"targets": map[string]*ml.LinearScorer{
			"Under5": {
				Bias: -1.2,
				Weights: map[string]float64{
					"maternal_age":        -0.05,
					"birth_weight_low":    0.9,
					"antenatal_visits":    -0.3,
					"rural_residence":     0.4,
					"mother_no_education": 0.7,
				},
			},
			"Infant": {
				Bias: -1.5,
				Weights: map[string]float64{
					"birth_weight_low":   1.1,
					"preceding_interval": -0.2,
					"antenatal_visits":   -0.35,
				},
			},
			"Neonatal": {
				Bias: -1.8,
				Weights: map[string]float64{
					"birth_weight_low": 1.3,
					"delivery_at_home": 0.6,
					"multiple_birth":   0.8,
				},
			},
		},
	}
}

func sampleImportances() []ml.ImportanceRow {
	return []ml.ImportanceRow{
		{Target: "Under5", Feature: "birth_weight_low", Importance: 0.31},
		{Target: "Under5", Feature: "mother_no_education", Importance: 0.22},
		{Target: "Under5", Feature: "rural_residence", Importance: 0.14},
		{Target: "Under5", Feature: "antenatal_visits", Importance: 0.12},
		{Target: "Under5", Feature: "maternal_age", Importance: 0.08},
		{Target: "Infant", Feature: "birth_weight_low", Importance: 0.35},
		{Target: "Infant", Feature: "antenatal_visits", Importance: 0.17},
		{Target: "Infant", Feature: "preceding_interval", Importance: 0.11},
		{Target: "Neonatal", Feature: "birth_weight_low", Importance: 0.42},
		{Target: "Neonatal", Feature: "multiple_birth", Importance: 0.19},
		{Target: "Neonatal", Feature: "delivery_at_home", Importance: 0.15},
	}
}

func writeJSON(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
