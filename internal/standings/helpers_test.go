package standings

import (
	"context"
	"sync"

	"lheq-stats/internal/model"
)

func record(id, name, division string, points int, rating *float64, goalDiff int) model.TeamRecord {
	return model.TeamRecord{
		ID:               model.TeamID(id),
		Name:             name,
		Division:         division,
		Points:           points,
		GoalDifferential: goalDiff,
		POCRating:        rating,
	}
}

func sampleRecords() []model.TeamRecord {
	return []model.TeamRecord{
		record("1", "Lynx", "Hockey Experts", 10, model.FloatPtr(1012), 4),
		record("2", "Aigles", "Hockey Experts", 14, model.FloatPtr(1020), 9),
		record("3", "Castors", "Sports Rousseau", 6, nil, -3),
		record("4", "Loups", "L'Entrepôt du Hockey", 12, model.FloatPtr(995), 1),
		record("5", "Ours", "Sports Rousseau", 9, model.FloatPtr(1004), 2),
		record("6", "Renards", "Ligue Printemps", 11, model.FloatPtr(1030), 7),
	}
}

func names(ranked []RankedTeam) []string {
	out := make([]string, 0, len(ranked))
	for _, team := range ranked {
		out = append(out, team.Name)
	}
	return out
}

// MockDataSource is a DataSource whose behavior is set per test.
type MockDataSource struct {
	mu            sync.Mutex
	calls         int
	LoadTeamsFunc func(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error)
}

func (m *MockDataSource) LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.LoadTeamsFunc != nil {
		return m.LoadTeamsFunc(ctx, includeTournaments)
	}
	return sampleRecords(), nil
}

func (m *MockDataSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
