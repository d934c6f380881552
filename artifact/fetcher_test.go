package artifact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureLocalDownloadsMissingFile(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"targets":{}}`))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "final_model.json")

	downloaded, err := EnsureLocal(context.Background(), server.Client(), server.URL, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !downloaded {
		t.Fatal("expected a download")
	}
	payload, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("expected file at dest: %v", err)
	}
	if string(payload) != `{"targets":{}}` {
		t.Fatalf("unexpected file content: %s", payload)
	}
	if hits != 1 {
		t.Fatalf("expected 1 request, got %d", hits)
	}
}

func TestEnsureLocalSkipsExistingFile(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "final_model.json")
	if err := os.WriteFile(dest, []byte("cached"), 0o600); err != nil {
		t.Fatal(err)
	}

	downloaded, err := EnsureLocal(context.Background(), server.Client(), server.URL, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if downloaded {
		t.Fatal("expected cached file to be kept")
	}
	if hits != 0 {
		t.Fatalf("expected no requests, got %d", hits)
	}
	payload, _ := os.ReadFile(dest)
	if string(payload) != "cached" {
		t.Fatalf("expected cached content to survive, got %s", payload)
	}
}

func TestEnsureLocalPropagatesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "final_model.json")

	if _, err := EnsureLocal(context.Background(), server.Client(), server.URL, dest); err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("expected no file after failed download")
	}
}

func TestFileURL(t *testing.T) {
	got := FileURL("https://drive.google.com/uc", "abc123")
	want := "https://drive.google.com/uc?export=download&id=abc123"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
