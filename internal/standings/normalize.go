package standings

import "lheq-stats/internal/model"

// BaselineRating is the neutral rating given to teams without rating data.
const BaselineRating = 1000.0

type NormalizedTeam struct {
	model.TeamRecord
	EffectiveRating   float64
	TotalPointsValue  int
	FairPlayValue     int
	OvertimeLossValue int
	// Order is the index of the record in the data source result.
	Order int
}

type RankedTeam struct {
	NormalizedTeam
	Position int
}

func Normalize(raw model.TeamRecord, order int) NormalizedTeam {
	team := NormalizedTeam{
		TeamRecord:      raw,
		EffectiveRating: BaselineRating,
		Order:           order,
	}
	switch {
	case raw.POCAdjusted != nil:
		team.EffectiveRating = *raw.POCAdjusted
	case raw.POCRating != nil:
		team.EffectiveRating = *raw.POCRating
	}
	if raw.FairPlayPoints != nil {
		team.FairPlayValue = *raw.FairPlayPoints
	}
	if raw.OvertimeLosses != nil {
		team.OvertimeLossValue = *raw.OvertimeLosses
	}
	if raw.TotalPoints != nil {
		team.TotalPointsValue = *raw.TotalPoints
	} else {
		team.TotalPointsValue = raw.Points + team.FairPlayValue
	}
	return team
}

func NormalizeAll(records []model.TeamRecord) []NormalizedTeam {
	teams := make([]NormalizedTeam, 0, len(records))
	for i, rec := range records {
		teams = append(teams, Normalize(rec, i))
	}
	return teams
}
