package standings

import (
	"time"

	"github.com/google/uuid"
	"lheq-stats/internal/model"
)

// DefaultDivisions are the divisions shown on the dashboard.
var DefaultDivisions = []string{
	"L'Entrepôt du Hockey",
	"Hockey Experts",
	"Sports Rousseau",
}

// Snapshot is the complete ranked result of one reload or filter change.
// It is never modified after it has been built.
type Snapshot struct {
	ID                 string
	Request            uint64
	IncludeTournaments bool
	Filter             string
	LoadedAt           time.Time

	Records         []model.TeamRecord
	Teams           []NormalizedTeam
	Ranked          []RankedTeam
	Divisions       map[string][]RankedTeam
	DivisionNames   []string
	Listing         []RankedTeam
	DivisionOptions []string
}

// BuildSnapshot derives every ranked view from the raw records.
func BuildSnapshot(records []model.TeamRecord, includeTournaments bool, divisions []string, division string) *Snapshot {
	teams := NormalizeAll(records)
	ranked := RankAll(teams)
	names := append([]string(nil), divisions...)
	return &Snapshot{
		ID:                 uuid.NewString(),
		IncludeTournaments: includeTournaments,
		Filter:             division,
		LoadedAt:           time.Now(),
		Records:            records,
		Teams:              teams,
		Ranked:             ranked,
		Divisions:          Group(teams, names),
		DivisionNames:      names,
		Listing:            FilterDivision(ranked, division),
		DivisionOptions:    DivisionOptions(teams),
	}
}

// WithDivision returns a new snapshot over the same records with another
// listing filter.
func (s *Snapshot) WithDivision(division string) *Snapshot {
	next := BuildSnapshot(s.Records, s.IncludeTournaments, s.DivisionNames, division)
	next.LoadedAt = s.LoadedAt
	return next
}

func (s *Snapshot) Division(name string) []RankedTeam {
	return s.Divisions[name]
}
