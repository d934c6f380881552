package ml

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
)

// modelFile is the serialized model artifact: one scorer per outcome target.
type modelFile struct {
	Targets map[string]*LinearScorer `json:"targets"`
}

// LoadModelSet deserializes the model artifact at path. On any failure it
// returns an empty set together with the error so the caller can log it and
// keep serving in a degraded state.
func LoadModelSet(path string) (*ModelSet, error) {
	set := NewModelSet()

	payload, err := os.ReadFile(path)
	if err != nil {
		return set, err
	}

	var mf modelFile
	if err := json.Unmarshal(payload, &mf); err != nil {
		return set, err
	}
	if len(mf.Targets) == 0 {
		return set, errors.New("model file defines no targets")
	}

	targets := make([]string, 0, len(mf.Targets))
	for target := range mf.Targets {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		scorer := mf.Targets[target]
		if scorer == nil {
			return NewModelSet(), errors.New("model file has a null scorer for target " + target)
		}
		set.Put(target, scorer)
	}
	return set, nil
}

// LoadFeatureTable deserializes the feature-importance artifact at path.
// On any failure it returns an empty table together with the error.
func LoadFeatureTable(path string) (*FeatureTable, error) {
	empty := NewFeatureTable(nil)

	payload, err := os.ReadFile(path)
	if err != nil {
		return empty, err
	}

	var rows []ImportanceRow
	if err := json.Unmarshal(payload, &rows); err != nil {
		return empty, err
	}

	for _, row := range rows {
		if row.Target == "" || row.Feature == "" {
			return empty, errors.New("feature importance row missing target or feature")
		}
	}
	return NewFeatureTable(rows), nil
}
