package standings

import (
	"testing"

	"lheq-stats/internal/model"
)

func TestSummarize(t *testing.T) {
	rec := record("9", "Titans", "Hockey Experts", 8, nil, -2)
	rec.HomeWins, rec.HomeLosses, rec.HomeTies = 3, 1, 0
	rec.AwayWins, rec.AwayLosses, rec.AwayTies = 1, 2, 1
	rec.LocalLogo = model.StringPtr("assets/logos/9.png")

	got := Summarize(RankAll(NormalizeAll([]model.TeamRecord{rec})))

	if len(got) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(got))
	}
	s := got[0]
	if s.Position != 1 || s.ID != "9" || s.Rating != BaselineRating || s.TotalPoints != 8 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.HomeRecord != "3-1-0" || s.AwayRecord != "1-2-1" {
		t.Errorf("Unexpected records %s / %s", s.HomeRecord, s.AwayRecord)
	}
	if s.Logo != "assets/logos/9.png" {
		t.Errorf("Unexpected logo %q", s.Logo)
	}
}

func TestSnapshot_SummarizeDivisions(t *testing.T) {
	snap := BuildSnapshot(sampleRecords(), true, DefaultDivisions, "")

	got := snap.SummarizeDivisions()

	if len(got) != 3 {
		t.Fatalf("Expected 3 divisions, got %d", len(got))
	}
	for i, division := range got {
		if division.Name != DefaultDivisions[i] {
			t.Errorf("Expected %s at %d, got %s", DefaultDivisions[i], i, division.Name)
		}
	}
	if len(got[1].Teams) != 2 || got[1].Teams[0].Name != "Aigles" {
		t.Errorf("Unexpected Hockey Experts teams %+v", got[1].Teams)
	}
}
