package ml

import (
	"math"
	"sort"

	"golang.org/x/text/cases"
)

// RiskModel scores a feature vector as a mortality risk in [0, 1].
// The model is an externally trained artifact; callers treat it as opaque.
type RiskModel interface {
	Predict(features map[string]float64) (float64, error)
}

// LinearScorer is the on-disk model shape: a logistic score over a bias and
// per-feature weights. Features absent from the weight map contribute zero.
type LinearScorer struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

func (s *LinearScorer) Predict(features map[string]float64) (float64, error) {
	z := s.Bias
	for name, value := range features {
		if w, ok := s.Weights[name]; ok {
			z += w * value
		}
	}
	return 1.0 / (1.0 + math.Exp(-z)), nil
}

// ModelSet maps outcome targets to their trained models. Lookups are
// case-insensitive; a missing target reports false instead of substituting
// a default model.
type ModelSet struct {
	models map[string]RiskModel
	names  map[string]string // folded key -> display name
}

func NewModelSet() *ModelSet {
	return &ModelSet{
		models: make(map[string]RiskModel),
		names:  make(map[string]string),
	}
}

// Put registers a model for a target, replacing any previous one.
func (s *ModelSet) Put(target string, model RiskModel) {
	key := foldKey(target)
	s.models[key] = model
	s.names[key] = target
}

// For returns the model configured for target, or false when none is.
func (s *ModelSet) For(target string) (RiskModel, bool) {
	model, ok := s.models[foldKey(target)]
	return model, ok
}

// Len reports how many targets have a configured model.
func (s *ModelSet) Len() int {
	return len(s.models)
}

// Targets lists the configured target names in sorted order.
func (s *ModelSet) Targets() []string {
	targets := make([]string, 0, len(s.names))
	for _, name := range s.names {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	return targets
}

// foldKey case-folds a target name for comparison.
func foldKey(s string) string {
	return cases.Fold().String(s)
}
