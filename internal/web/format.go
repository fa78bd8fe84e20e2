package web

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"lheq-stats/internal/standings"
)

const (
	defaultLogo   = "assets/logos/default.png"
	nameMaxLength = 20
)

func formatRating(rating float64) string {
	return fmt.Sprintf("%.1f", rating)
}

func ratingClass(rating float64) string {
	switch {
	case rating > standings.BaselineRating:
		return "positive"
	case rating < standings.BaselineRating:
		return "negative"
	}
	return ""
}

func formatDiff(diff int) string {
	if diff > 0 {
		return fmt.Sprintf("+%d", diff)
	}
	return fmt.Sprint(diff)
}

// diffClass counts an even differential as positive.
func diffClass(diff int) string {
	if diff >= 0 {
		return "positive"
	}
	return "negative"
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= nameMaxLength {
		return name
	}
	return string([]rune(name)[:nameMaxLength]) + "..."
}

func logoURL(team standings.RankedTeam) string {
	logo := defaultLogo
	if team.LocalLogo != nil && strings.TrimSpace(*team.LocalLogo) != "" {
		logo = strings.TrimSpace(*team.LocalLogo)
	}
	if strings.HasPrefix(logo, "http://") || strings.HasPrefix(logo, "https://") {
		return logo
	}
	return "/static/" + strings.TrimPrefix(logo, "/")
}

func detailURL(pattern string, team standings.RankedTeam) string {
	return fmt.Sprintf(pattern, standings.DetailTarget(team))
}
