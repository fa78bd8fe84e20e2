package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type Dataset string

const (
	DatasetAll    Dataset = "all"
	DatasetSeason Dataset = "season"
)

func DatasetFor(includeTournaments bool) Dataset {
	if includeTournaments {
		return DatasetAll
	}
	return DatasetSeason
}

func (d Dataset) IncludesTournaments() bool {
	return d == DatasetAll
}

func (d Dataset) Valid() bool {
	return d == DatasetAll || d == DatasetSeason
}

// FileName is the name the stats generator writes the data set under.
func (d Dataset) FileName() string {
	if d == DatasetSeason {
		return "teams_season.json"
	}
	return "teams.json"
}

// TeamID accepts both JSON numbers and strings; the generator has emitted both.
type TeamID string

func (id *TeamID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TeamID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("team id: %w", err)
	}
	*id = TeamID(n.String())
	return nil
}

func (id TeamID) String() string {
	return string(id)
}

// TeamRecord is one team as published by a data source. Pointer fields are
// optional in the source data: nil means absent, a zero value is a real zero.
type TeamRecord struct {
	ID               TeamID   `json:"id"`
	Name             string   `json:"name"`
	Division         string   `json:"division"`
	GamesPlayed      int      `json:"games_played"`
	Wins             int      `json:"wins"`
	Losses           int      `json:"losses"`
	Ties             int      `json:"ties"`
	OvertimeLosses   *int     `json:"overtime_losses,omitempty"`
	Points           int      `json:"points"`
	FairPlayPoints   *int     `json:"fair_play_points,omitempty"`
	TotalPoints      *int     `json:"total_points,omitempty"`
	GoalsFor         int      `json:"goals_for"`
	GoalsAgainst     int      `json:"goals_against"`
	GoalDifferential int      `json:"goal_differential"`
	PenaltyMinutes   int      `json:"penalty_minutes"`
	HomeWins         int      `json:"home_wins"`
	HomeLosses       int      `json:"home_losses"`
	HomeTies         int      `json:"home_ties"`
	AwayWins         int      `json:"away_wins"`
	AwayLosses       int      `json:"away_losses"`
	AwayTies         int      `json:"away_ties"`
	POCRating        *float64 `json:"poc_rating,omitempty"`
	POCAdjusted      *float64 `json:"poc_adjusted,omitempty"`
	LocalLogo        *string  `json:"local_logo,omitempty"`
}

// Clone returns a copy that shares no optional values with t.
func (t TeamRecord) Clone() TeamRecord {
	out := t
	out.OvertimeLosses = cloneInt(t.OvertimeLosses)
	out.FairPlayPoints = cloneInt(t.FairPlayPoints)
	out.TotalPoints = cloneInt(t.TotalPoints)
	out.POCRating = cloneFloat(t.POCRating)
	out.POCAdjusted = cloneFloat(t.POCAdjusted)
	if t.LocalLogo != nil {
		out.LocalLogo = StringPtr(*t.LocalLogo)
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return IntPtr(*v)
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return FloatPtr(*v)
}

func IntPtr(v int) *int {
	return &v
}

func FloatPtr(v float64) *float64 {
	return &v
}

func StringPtr(v string) *string {
	return &v
}
