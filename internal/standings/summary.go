package standings

import "fmt"

// TeamSummary is the flat JSON form of a ranked team.
type TeamSummary struct {
	Position         int     `json:"position"`
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Division         string  `json:"division"`
	GamesPlayed      int     `json:"games_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	OvertimeLosses   int     `json:"overtime_losses"`
	Ties             int     `json:"ties"`
	Points           int     `json:"points"`
	FairPlayPoints   int     `json:"fair_play_points"`
	TotalPoints      int     `json:"total_points"`
	Rating           float64 `json:"rating"`
	GoalsFor         int     `json:"goals_for"`
	GoalsAgainst     int     `json:"goals_against"`
	GoalDifferential int     `json:"goal_differential"`
	PenaltyMinutes   int     `json:"penalty_minutes"`
	HomeRecord       string  `json:"home_record"`
	AwayRecord       string  `json:"away_record"`
	Logo             string  `json:"logo,omitempty"`
}

type DivisionSummary struct {
	Name  string        `json:"name"`
	Teams []TeamSummary `json:"teams"`
}

func Summarize(teams []RankedTeam) []TeamSummary {
	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		s := TeamSummary{
			Position:         t.Position,
			ID:               string(t.ID),
			Name:             t.Name,
			Division:         t.Division,
			GamesPlayed:      t.GamesPlayed,
			Wins:             t.Wins,
			Losses:           t.Losses,
			OvertimeLosses:   t.OvertimeLossValue,
			Ties:             t.Ties,
			Points:           t.Points,
			FairPlayPoints:   t.FairPlayValue,
			TotalPoints:      t.TotalPointsValue,
			Rating:           t.EffectiveRating,
			GoalsFor:         t.GoalsFor,
			GoalsAgainst:     t.GoalsAgainst,
			GoalDifferential: t.GoalDifferential,
			PenaltyMinutes:   t.PenaltyMinutes,
			HomeRecord:       Record(t.HomeWins, t.HomeLosses, t.HomeTies),
			AwayRecord:       Record(t.AwayWins, t.AwayLosses, t.AwayTies),
		}
		if t.LocalLogo != nil {
			s.Logo = *t.LocalLogo
		}
		out = append(out, s)
	}
	return out
}

// SummarizeDivisions keeps the snapshot's division order.
func (s *Snapshot) SummarizeDivisions() []DivisionSummary {
	out := make([]DivisionSummary, 0, len(s.DivisionNames))
	for _, name := range s.DivisionNames {
		out = append(out, DivisionSummary{Name: name, Teams: Summarize(s.Division(name))})
	}
	return out
}

// Record formats a wins-losses-ties line.
func Record(wins, losses, ties int) string {
	return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
}
