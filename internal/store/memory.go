package store

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"lheq-stats/internal/model"
)

type MemoryStore struct {
	mu    sync.RWMutex
	teams map[model.Dataset][]model.TeamRecord
}

// NewMemoryStore returns an empty store, or one filled with demo standings
// when seed is set.
func NewMemoryStore(seed bool) *MemoryStore {
	s := &MemoryStore{
		teams: make(map[model.Dataset][]model.TeamRecord),
	}
	if seed {
		seedData(s)
	}

	return s
}

func (s *MemoryStore) LoadTeams(ctx context.Context, includeTournaments bool) ([]model.TeamRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneTeams(s.teams[model.DatasetFor(includeTournaments)]), nil
}

func (s *MemoryStore) ReplaceTeams(ctx context.Context, dataset model.Dataset, teams []model.TeamRecord) error {
	if err := checkDataset(dataset); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams[dataset] = cloneTeams(teams)
	return nil
}

var seedTeamNames = map[string][]string{
	"L'Entrepôt du Hockey": {"Lynx", "Boucaniers", "Carcajous", "Harfangs", "Remparts"},
	"Hockey Experts":       {"Aigles", "Mustangs", "Titans", "Voltigeurs", "Cobras", "Draveurs"},
	"Sports Rousseau":      {"Castors", "Ours", "Loups", "Huskies", "Faucons"},
}

var seedDivisionOrder = []string{"L'Entrepôt du Hockey", "Hockey Experts", "Sports Rousseau"}

// seedData fills both data sets with the same teams. The season set is the
// tournament set minus tournament games, so its numbers are lower.
func seedData(s *MemoryStore) {
	rng := rand.New(rand.NewSource(42))

	id := 100
	for _, division := range seedDivisionOrder {
		for _, name := range seedTeamNames[division] {
			id++
			season := seedTeam(rng, id, name, division, 12)
			all := season.Clone()
			addTournamentGames(rng, &all, 2+rng.Intn(4))
			s.teams[model.DatasetSeason] = append(s.teams[model.DatasetSeason], season)
			s.teams[model.DatasetAll] = append(s.teams[model.DatasetAll], all)
		}
	}
}

func seedTeam(rng *rand.Rand, id int, name, division string, games int) model.TeamRecord {
	team := model.TeamRecord{
		ID:       model.TeamID(fmt.Sprint(id)),
		Name:     name,
		Division: division,
	}
	if rng.Intn(5) > 0 {
		team.LocalLogo = model.StringPtr(fmt.Sprintf("assets/logos/%d.png", id))
	}
	for g := 0; g < games; g++ {
		playSeedGame(rng, &team, g%2 == 0)
	}
	team.FairPlayPoints = model.IntPtr(rng.Intn(4))
	team.PenaltyMinutes = rng.Intn(60)
	if rng.Intn(6) > 0 {
		rating := 960 + rng.Float64()*80
		team.POCRating = model.FloatPtr(float64(int(rating*10)) / 10)
		if rng.Intn(3) == 0 {
			team.POCAdjusted = model.FloatPtr(*team.POCRating + float64(rng.Intn(11)-5))
		}
	}
	return team
}

func addTournamentGames(rng *rand.Rand, team *model.TeamRecord, games int) {
	for g := 0; g < games; g++ {
		playSeedGame(rng, team, g%2 == 1)
	}
	if team.POCRating != nil {
		team.POCRating = model.FloatPtr(*team.POCRating + float64(rng.Intn(7)-3))
	}
	if team.FairPlayPoints != nil {
		team.FairPlayPoints = model.IntPtr(*team.FairPlayPoints + rng.Intn(2))
	}
}

func playSeedGame(rng *rand.Rand, team *model.TeamRecord, home bool) {
	goalsFor := rng.Intn(7)
	goalsAgainst := rng.Intn(7)
	team.GamesPlayed++
	team.GoalsFor += goalsFor
	team.GoalsAgainst += goalsAgainst
	team.GoalDifferential = team.GoalsFor - team.GoalsAgainst

	switch {
	case goalsFor > goalsAgainst:
		team.Wins++
		team.Points += 2
		if home {
			team.HomeWins++
		} else {
			team.AwayWins++
		}
	case goalsFor == goalsAgainst:
		team.Ties++
		team.Points++
		if home {
			team.HomeTies++
		} else {
			team.AwayTies++
		}
	default:
		team.Losses++
		if home {
			team.HomeLosses++
		} else {
			team.AwayLosses++
		}
		if goalsAgainst-goalsFor == 1 && rng.Intn(2) == 0 {
			if team.OvertimeLosses == nil {
				team.OvertimeLosses = model.IntPtr(0)
			}
			*team.OvertimeLosses++
			team.Points++
		}
	}
}
