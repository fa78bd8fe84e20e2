package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"lheq-stats/internal/model"
)

func sampleTeams() []model.TeamRecord {
	return []model.TeamRecord{
		{
			ID:               "12",
			Name:             "Lynx",
			Division:         "Hockey Experts",
			GamesPlayed:      10,
			Wins:             6,
			Losses:           3,
			Ties:             1,
			OvertimeLosses:   model.IntPtr(1),
			Points:           13,
			FairPlayPoints:   model.IntPtr(0),
			GoalsFor:         41,
			GoalsAgainst:     30,
			GoalDifferential: 11,
			HomeWins:         4,
			AwayWins:         2,
			POCRating:        model.FloatPtr(1012.4),
			LocalLogo:        model.StringPtr("assets/logos/12.png"),
		},
		{
			ID:       "7",
			Name:     "Castors",
			Division: "Sports Rousseau",
			Points:   4,
		},
	}
}

// exerciseStore checks the round trip every writable store must support.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if err := s.ReplaceTeams(ctx, model.DatasetAll, sampleTeams()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := s.ReplaceTeams(ctx, model.DatasetSeason, sampleTeams()[1:]); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	all, err := s.LoadTeams(ctx, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !reflect.DeepEqual(all, sampleTeams()) {
		t.Errorf("Expected %+v, got %+v", sampleTeams(), all)
	}

	season, err := s.LoadTeams(ctx, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(season) != 1 || season[0].Name != "Castors" {
		t.Errorf("Expected season set [Castors], got %+v", season)
	}
	if season[0].POCRating != nil || season[0].FairPlayPoints != nil {
		t.Error("Expected absent optional fields to stay absent")
	}

	if err := s.ReplaceTeams(ctx, model.DatasetAll, nil); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	all, err = s.LoadTeams(ctx, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected empty data set, got %d teams", len(all))
	}

	if err := s.ReplaceTeams(ctx, model.Dataset("playoffs"), nil); !errors.Is(err, ErrUnknownDataset) {
		t.Errorf("Expected ErrUnknownDataset, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(false))
}

func TestMemoryStore_Seeded(t *testing.T) {
	s := NewMemoryStore(true)

	all, err := s.LoadTeams(context.Background(), true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	season, err := s.LoadTeams(context.Background(), false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) == 0 || len(all) != len(season) {
		t.Fatalf("Expected the same teams in both sets, got %d and %d", len(all), len(season))
	}
	divisions := map[string]bool{}
	for i := range all {
		divisions[all[i].Division] = true
		if all[i].GamesPlayed <= season[i].GamesPlayed {
			t.Errorf("Expected tournament games on top of the season for %s", all[i].Name)
		}
	}
	if len(divisions) != 3 {
		t.Errorf("Expected 3 seeded divisions, got %d", len(divisions))
	}
}

func TestMemoryStore_LoadReturnsCopies(t *testing.T) {
	s := NewMemoryStore(false)
	ctx := context.Background()
	_ = s.ReplaceTeams(ctx, model.DatasetAll, sampleTeams())

	first, _ := s.LoadTeams(ctx, true)
	first[0].Name = "changed"
	*first[0].POCRating = 0

	second, _ := s.LoadTeams(ctx, true)
	if second[0].Name != "Lynx" || *second[0].POCRating != 1012.4 {
		t.Error("Expected stored teams to be unaffected by caller edits")
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryStore(false).LoadTeams(ctx, true); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
