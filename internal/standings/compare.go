package standings

import "sort"

// Compare orders teams for every ranked view: effective rating, total points
// and goal differential, all descending, then source order and id.
// A negative result means a ranks ahead of b.
func Compare(a, b NormalizedTeam) int {
	if c := descending(a.EffectiveRating, b.EffectiveRating); c != 0 {
		return c
	}
	if c := descending(float64(a.TotalPointsValue), float64(b.TotalPointsValue)); c != 0 {
		return c
	}
	if c := descending(float64(a.GoalDifferential), float64(b.GoalDifferential)); c != 0 {
		return c
	}
	switch {
	case a.Order < b.Order:
		return -1
	case a.Order > b.Order:
		return 1
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// Rank sorts a copy of teams and assigns 1-based positions.
func Rank(teams []NormalizedTeam) []RankedTeam {
	sorted := make([]NormalizedTeam, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) < 0
	})
	ranked := make([]RankedTeam, 0, len(sorted))
	for i, team := range sorted {
		ranked = append(ranked, RankedTeam{NormalizedTeam: team, Position: i + 1})
	}
	return ranked
}

// Rerank drops existing positions and ranks the teams again.
func Rerank(ranked []RankedTeam) []RankedTeam {
	teams := make([]NormalizedTeam, 0, len(ranked))
	for _, team := range ranked {
		teams = append(teams, team.NormalizedTeam)
	}
	return Rank(teams)
}
