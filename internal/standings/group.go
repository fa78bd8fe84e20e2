package standings

import "sort"

// Group ranks each named division independently. Teams outside the named
// divisions are dropped; every named division gets an entry, even when empty.
func Group(teams []NormalizedTeam, divisions []string) map[string][]RankedTeam {
	buckets := make(map[string][]NormalizedTeam, len(divisions))
	for _, division := range divisions {
		buckets[division] = []NormalizedTeam{}
	}
	for _, team := range teams {
		bucket, ok := buckets[team.Division]
		if !ok {
			continue
		}
		buckets[team.Division] = append(bucket, team)
	}
	grouped := make(map[string][]RankedTeam, len(buckets))
	for division, members := range buckets {
		grouped[division] = Rank(members)
	}
	return grouped
}

func RankAll(teams []NormalizedTeam) []RankedTeam {
	return Rank(teams)
}

// DivisionOptions lists the distinct division names present in teams, sorted.
// Callers pass the full data set so an active filter never shrinks the options.
func DivisionOptions(teams []NormalizedTeam) []string {
	seen := map[string]bool{}
	options := []string{}
	for _, team := range teams {
		if team.Division == "" || seen[team.Division] {
			continue
		}
		seen[team.Division] = true
		options = append(options, team.Division)
	}
	sort.Strings(options)
	return options
}

// FilterDivision keeps the teams of one division and renumbers them from 1.
// An empty division keeps everything.
func FilterDivision(ranked []RankedTeam, division string) []RankedTeam {
	filtered := make([]RankedTeam, 0, len(ranked))
	for _, team := range ranked {
		if division != "" && team.Division != division {
			continue
		}
		team.Position = len(filtered) + 1
		filtered = append(filtered, team)
	}
	return filtered
}

// DetailTarget is the identifier a team-detail page is keyed by.
func DetailTarget(team RankedTeam) string {
	return team.ID.String()
}
