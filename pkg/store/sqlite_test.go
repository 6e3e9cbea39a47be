package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "resultados.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	defer s.Close()

	testResultStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "resultados.db")
	ctx := context.Background()

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	if err := s.Save(ctx, sampleResult("Arte", 8, 0)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite() reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.History(ctx, "Arte", 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 || got[0].Score != 8 {
		t.Errorf("Expected persisted Arte result, got %+v", got)
	}
}

func TestSQLiteStoreClosedErrors(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "resultados.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	s.Close()

	err = s.Save(context.Background(), sampleResult("Arte", 8, 0))
	if err == nil || !strings.HasPrefix(err.Error(), "error guardando resultado") {
		t.Errorf("Expected 'error guardando resultado', got %v", err)
	}
	if _, err := s.History(context.Background(), "", 10); err == nil || !strings.HasPrefix(err.Error(), "error obteniendo historial") {
		t.Errorf("Expected 'error obteniendo historial', got %v", err)
	}
}
