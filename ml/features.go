package ml

import (
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ImportanceRow is one row of the feature-importance table: how much a single
// input feature contributed to the trained model for one outcome target.
type ImportanceRow struct {
	Target     string  `json:"target"`
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureTable holds the loaded feature-importance table. It is immutable
// after construction, so reads need no synchronization.
type FeatureTable struct {
	rows    []ImportanceRow
	folded  []string // folded Target per row
	targets []string // first-appearance order
	top     *lru.Cache[string, []string]
}

const topCacheSize = 128

// NewFeatureTable builds a table from rows, preserving their order.
func NewFeatureTable(rows []ImportanceRow) *FeatureTable {
	t := &FeatureTable{
		rows:   rows,
		folded: make([]string, len(rows)),
	}
	t.top, _ = lru.New[string, []string](topCacheSize)

	seen := make(map[string]bool)
	for i, row := range rows {
		key := foldKey(row.Target)
		t.folded[i] = key
		if !seen[key] {
			seen[key] = true
			t.targets = append(t.targets, row.Target)
		}
	}
	return t
}

// Empty reports whether the table holds no rows.
func (t *FeatureTable) Empty() bool {
	return t == nil || len(t.rows) == 0
}

// Len returns the number of rows.
func (t *FeatureTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Columns names the table's columns, present even when the table is empty.
func (t *FeatureTable) Columns() []string {
	return []string{"Target", "Feature", "Importance"}
}

// Targets lists the distinct target names in first-appearance order.
func (t *FeatureTable) Targets() []string {
	if t == nil || len(t.targets) == 0 {
		return []string{}
	}
	return append([]string(nil), t.targets...)
}

// Sample returns up to n rows from the head of the table.
func (t *FeatureTable) Sample(n int) []ImportanceRow {
	if t == nil || n <= 0 {
		return []ImportanceRow{}
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return append([]ImportanceRow(nil), t.rows[:n]...)
}

// TopFeatures returns the names of the n highest-importance features for a
// target. The target match is case-insensitive; ties on importance are broken
// by ascending feature name so the ordering is deterministic. An unknown
// target or an empty table yields an empty slice, never an error.
func (t *FeatureTable) TopFeatures(target string, n int) []string {
	if t.Empty() || n <= 0 {
		return []string{}
	}

	key := foldKey(target)
	cacheKey := key + "|" + strconv.Itoa(n)
	if cached, ok := t.top.Get(cacheKey); ok {
		return cached
	}

	matched := make([]ImportanceRow, 0)
	for i, row := range t.rows {
		if t.folded[i] == key {
			matched = append(matched, row)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Importance != matched[j].Importance {
			return matched[i].Importance > matched[j].Importance
		}
		return matched[i].Feature < matched[j].Feature
	})

	if n > len(matched) {
		n = len(matched)
	}
	features := make([]string, n)
	for i := 0; i < n; i++ {
		features[i] = matched[i].Feature
	}

	t.top.Add(cacheKey, features)
	return features
}
