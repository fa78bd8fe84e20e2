package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStore_ReadsGeneratorOutput(t *testing.T) {
	dir := t.TempDir()
	content := `[
  {"id": 3, "name": "Harfangs", "division": "L'Entrepôt du Hockey", "points": 9, "poc_rating": 1003.5},
  {"id": "4", "name": "Titans", "division": "Hockey Experts", "points": 7, "fair_play_points": 2}
]`
	if err := os.WriteFile(filepath.Join(dir, "teams_season.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	teams, err := s.LoadTeams(context.Background(), false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("Expected 2 teams, got %d", len(teams))
	}
	if teams[0].ID != "3" || teams[1].ID != "4" {
		t.Errorf("Expected ids 3 and 4, got %s and %s", teams[0].ID, teams[1].ID)
	}
	if teams[0].POCRating == nil || *teams[0].POCRating != 1003.5 {
		t.Error("Expected rating to be read")
	}
	if teams[1].FairPlayPoints == nil || *teams[1].FairPlayPoints != 2 {
		t.Error("Expected fair play points to be read")
	}

	if _, err := s.LoadTeams(context.Background(), true); err == nil {
		t.Error("Expected error for missing teams.json")
	}
}

func TestFileStore_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "teams.json"), []byte(`{"oops"`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, _ := NewFileStore(dir)
	if _, err := s.LoadTeams(context.Background(), true); err == nil {
		t.Error("Expected decode error")
	}
}

func TestNewFileStore_Validation(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("Expected error for empty dir")
	}
	if _, err := NewFileStore(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing dir")
	}
}
