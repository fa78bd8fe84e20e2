package standings

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"lheq-stats/internal/model"
)

func TestRank_RatingTieBrokenByTotalPoints(t *testing.T) {
	teams := NormalizeAll([]model.TeamRecord{
		record("a", "A", "", 10, model.FloatPtr(1010), 5),
		record("b", "B", "", 12, model.FloatPtr(1010), 3),
	})

	ranked := Rank(teams)

	if got := names(ranked); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("Expected [B A], got %v", got)
	}
	if ranked[0].Position != 1 || ranked[1].Position != 2 {
		t.Errorf("Expected positions 1 and 2, got %d and %d", ranked[0].Position, ranked[1].Position)
	}
}

func TestCompare_Chain(t *testing.T) {
	tests := []struct {
		name string
		a    model.TeamRecord
		b    model.TeamRecord
		want int
	}{
		{
			name: "higher rating first",
			a:    record("a", "A", "", 5, model.FloatPtr(1001), 0),
			b:    record("b", "B", "", 20, model.FloatPtr(999), 10),
			want: -1,
		},
		{
			name: "missing rating is baseline",
			a:    record("a", "A", "", 5, nil, 0),
			b:    record("b", "B", "", 5, model.FloatPtr(999.9), 0),
			want: -1,
		},
		{
			name: "total points break rating tie",
			a:    record("a", "A", "", 5, nil, 9),
			b:    record("b", "B", "", 6, nil, 0),
			want: 1,
		},
		{
			name: "goal differential breaks points tie",
			a:    record("a", "A", "", 6, nil, 2),
			b:    record("b", "B", "", 6, nil, -1),
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Normalize(tt.a, 0)
			b := Normalize(tt.b, 1)
			if got := Compare(a, b); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
			if got := Compare(b, a); got != -tt.want {
				t.Errorf("Expected reversed comparison %d, got %d", -tt.want, got)
			}
		})
	}
}

func TestCompare_FullTieFallsBackToSourceOrder(t *testing.T) {
	a := Normalize(record("z", "Z", "", 6, nil, 0), 0)
	b := Normalize(record("a", "A", "", 6, nil, 0), 1)

	if Compare(a, b) != -1 {
		t.Error("Expected earlier source record to rank first")
	}
	if Compare(a, a) != 0 {
		t.Error("Expected a team to compare equal to itself")
	}
}

func randomTeams(n int, seed int64) []NormalizedTeam {
	rng := rand.New(rand.NewSource(seed))
	records := make([]model.TeamRecord, 0, n)
	for i := 0; i < n; i++ {
		var rating *float64
		if rng.Intn(3) > 0 {
			rating = model.FloatPtr(float64(995 + rng.Intn(3)*5))
		}
		records = append(records, record(fmt.Sprint(i), fmt.Sprintf("T%d", i), "", rng.Intn(4), rating, rng.Intn(3)-1))
	}
	return NormalizeAll(records)
}

func TestCompare_StrictTotalOrder(t *testing.T) {
	teams := randomTeams(24, 7)

	for _, a := range teams {
		if Compare(a, a) != 0 {
			t.Fatalf("Expected %s to equal itself", a.Name)
		}
		for _, b := range teams {
			ab, ba := Compare(a, b), Compare(b, a)
			if ab != -ba {
				t.Fatalf("Antisymmetry broken for %s/%s: %d vs %d", a.Name, b.Name, ab, ba)
			}
			if a.Order != b.Order && ab == 0 {
				t.Fatalf("Expected distinct teams %s/%s to be ordered", a.Name, b.Name)
			}
			if Compare(a, b) != ab {
				t.Fatalf("Inconsistent repeated comparison for %s/%s", a.Name, b.Name)
			}
			for _, c := range teams {
				if ab < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Fatalf("Transitivity broken for %s < %s < %s", a.Name, b.Name, c.Name)
				}
			}
		}
	}
}

func TestRank_Idempotent(t *testing.T) {
	first := Rank(randomTeams(30, 11))
	second := Rerank(first)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected re-ranking to keep positions, got %v then %v", names(first), names(second))
	}
}

func TestRank_DeterministicAcrossRuns(t *testing.T) {
	a := Rank(randomTeams(30, 5))
	b := Rank(randomTeams(30, 5))
	if !reflect.DeepEqual(names(a), names(b)) {
		t.Errorf("Expected identical order for identical input")
	}
}

func TestRank_DoesNotReorderInput(t *testing.T) {
	teams := NormalizeAll(sampleRecords())
	Rank(teams)
	for i, team := range teams {
		if team.Order != i {
			t.Fatalf("Expected input slice to keep its order")
		}
	}
}
