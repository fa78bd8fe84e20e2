package web

import (
	"testing"

	"lheq-stats/internal/model"
	"lheq-stats/internal/standings"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		rating    float64
		wantText  string
		wantClass string
	}{
		{rating: 1012.46, wantText: "1012.5", wantClass: "positive"},
		{rating: 1000, wantText: "1000.0", wantClass: ""},
		{rating: 987.04, wantText: "987.0", wantClass: "negative"},
	}
	for _, tt := range tests {
		if got := formatRating(tt.rating); got != tt.wantText {
			t.Errorf("Expected %s, got %s", tt.wantText, got)
		}
		if got := ratingClass(tt.rating); got != tt.wantClass {
			t.Errorf("Expected class %q for %v, got %q", tt.wantClass, tt.rating, got)
		}
	}
}

func TestFormatDiff(t *testing.T) {
	tests := []struct {
		diff      int
		wantText  string
		wantClass string
	}{
		{diff: 4, wantText: "+4", wantClass: "positive"},
		{diff: 0, wantText: "0", wantClass: "positive"},
		{diff: -3, wantText: "-3", wantClass: "negative"},
	}
	for _, tt := range tests {
		if got := formatDiff(tt.diff); got != tt.wantText {
			t.Errorf("Expected %s, got %s", tt.wantText, got)
		}
		if got := diffClass(tt.diff); got != tt.wantClass {
			t.Errorf("Expected class %s for %d, got %s", tt.wantClass, tt.diff, got)
		}
	}
}

func TestTruncateName(t *testing.T) {
	tests := map[string]string{
		"Lynx":                            "Lynx",
		"Exactement vingt car":            "Exactement vingt car",
		"Les Voltigeurs de Drummondville": "Les Voltigeurs de Dr...",
		"Équipe des Éperviers Économes":   "Équipe des Éperviers...",
	}
	for in, want := range tests {
		if got := truncateName(in); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestLogoURL(t *testing.T) {
	team := func(logo *string) standings.RankedTeam {
		return standings.RankedTeam{NormalizedTeam: standings.NormalizedTeam{TeamRecord: model.TeamRecord{LocalLogo: logo}}}
	}
	tests := []struct {
		name string
		logo *string
		want string
	}{
		{name: "absent", want: "/static/assets/logos/default.png"},
		{name: "blank", logo: model.StringPtr(" "), want: "/static/assets/logos/default.png"},
		{name: "relative", logo: model.StringPtr("assets/logos/12.png"), want: "/static/assets/logos/12.png"},
		{name: "absolute", logo: model.StringPtr("https://cdn.example.com/12.png"), want: "https://cdn.example.com/12.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logoURL(team(tt.logo)); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDetailURL(t *testing.T) {
	team := standings.RankedTeam{NormalizedTeam: standings.NormalizedTeam{TeamRecord: model.TeamRecord{ID: "42"}}}
	if got := detailURL("team-detail.html?id=%s", team); got != "team-detail.html?id=42" {
		t.Errorf("Unexpected url %s", got)
	}
}
