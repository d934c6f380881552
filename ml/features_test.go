package ml

import (
	"reflect"
	"testing"
)

func scenarioTable() *FeatureTable {
	return NewFeatureTable([]ImportanceRow{
		{Target: "Under5", Feature: "A", Importance: 0.9},
		{Target: "Under5", Feature: "B", Importance: 0.5},
		{Target: "Infant", Feature: "C", Importance: 0.7},
	})
}

func TestTopFeaturesScenario(t *testing.T) {
	table := scenarioTable()

	got := table.TopFeatures("under5", 1)
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("expected [A], got %v", got)
	}

	got = table.TopFeatures("Neonatal", 5)
	if len(got) != 0 {
		t.Fatalf("expected empty result for unknown target, got %v", got)
	}
}

func TestTopFeaturesCaseInsensitive(t *testing.T) {
	table := scenarioTable()

	upper := table.TopFeatures("Under5", 10)
	lower := table.TopFeatures("under5", 10)
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("expected identical results, got %v and %v", upper, lower)
	}
}

func TestTopFeaturesDescendingAndTruncated(t *testing.T) {
	table := NewFeatureTable([]ImportanceRow{
		{Target: "Under5", Feature: "low", Importance: 0.1},
		{Target: "Under5", Feature: "high", Importance: 0.9},
		{Target: "Under5", Feature: "mid", Importance: 0.5},
	})

	got := table.TopFeatures("Under5", 2)
	if !reflect.DeepEqual(got, []string{"high", "mid"}) {
		t.Fatalf("expected [high mid], got %v", got)
	}

	all := table.TopFeatures("Under5", 10)
	if len(all) != 3 {
		t.Fatalf("expected all 3 matches when n exceeds them, got %v", all)
	}
}

func TestTopFeaturesTieBreakIsLexicographic(t *testing.T) {
	table := NewFeatureTable([]ImportanceRow{
		{Target: "Under5", Feature: "zeta", Importance: 0.5},
		{Target: "Under5", Feature: "alpha", Importance: 0.5},
		{Target: "Under5", Feature: "mike", Importance: 0.5},
	})

	got := table.TopFeatures("Under5", 3)
	if !reflect.DeepEqual(got, []string{"alpha", "mike", "zeta"}) {
		t.Fatalf("expected lexicographic tie-break, got %v", got)
	}
}

func TestTopFeaturesEmptyTable(t *testing.T) {
	table := NewFeatureTable(nil)

	if got := table.TopFeatures("Under5", 5); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if !table.Empty() {
		t.Fatal("expected table to be empty")
	}
}

func TestTargetsFirstAppearanceOrder(t *testing.T) {
	table := NewFeatureTable([]ImportanceRow{
		{Target: "Neonatal", Feature: "A", Importance: 0.1},
		{Target: "Under5", Feature: "B", Importance: 0.2},
		{Target: "neonatal", Feature: "C", Importance: 0.3},
		{Target: "Infant", Feature: "D", Importance: 0.4},
	})

	got := table.Targets()
	want := []string{"Neonatal", "Under5", "Infant"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSampleBounds(t *testing.T) {
	table := scenarioTable()

	if got := table.Sample(5); len(got) != 3 {
		t.Fatalf("expected 3 sample rows, got %d", len(got))
	}
	if got := table.Sample(2); len(got) != 2 {
		t.Fatalf("expected 2 sample rows, got %d", len(got))
	}
}
