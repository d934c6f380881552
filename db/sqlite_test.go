package db

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	dbPath := "./test.db"
	if err := InitDB(dbPath); err != nil {
		os.Exit(1)
	}

	code := m.Run()

	Close()
	os.Remove(dbPath)
	os.Exit(code)
}

func TestSaveAndRecentPredictions(t *testing.T) {
	if err := SavePrediction("Under5", 0.73, "api"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SavePrediction("Under5", 0.41, "dashboard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := RecentPredictions(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) < 2 {
		t.Fatalf("expected at least 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].Risk != 0.41 || records[0].Mode != "dashboard" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
}

func TestSavePredictionRequiresTarget(t *testing.T) {
	if err := SavePrediction("", 0.5, "api"); err == nil {
		t.Fatal("expected error for empty target")
	}
}

func TestRecentPredictionsLimit(t *testing.T) {
	for i := 0; i < 5; i++ {
		if err := SavePrediction("Infant", float64(i)/10, "api"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := RecentPredictions(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}
