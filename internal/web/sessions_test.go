package web

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"lheq-stats/internal/grid"
)

func TestSessions_Expire(t *testing.T) {
	logger, _ := test.NewNullLogger()
	registry := grid.NewRegistry(logger)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(10*time.Minute, func(id string) *Session {
		return &Session{ID: id, Grids: registry.Scope(id)}
	}, logger)
	sessions.now = func() time.Time { return now }

	sess := sessions.Create()
	table := &grid.Table{ID: "t", Columns: []grid.Column{{Key: "a"}}, Rows: []grid.Row{{Key: "1", Cells: []grid.Cell{{Text: "1"}}}}}
	if err := sess.Grids.Attach("dashboard", []*grid.Table{table}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	now = now.Add(9 * time.Minute)
	if _, ok := sessions.Get(sess.ID); !ok {
		t.Fatal("Expected the session to be alive")
	}

	now = now.Add(11 * time.Minute)
	if _, ok := sessions.Get(sess.ID); ok {
		t.Error("Expected the session to expire")
	}
	if sessions.Len() != 0 {
		t.Errorf("Expected no sessions, got %d", sessions.Len())
	}
	if registry.LiveTotal() != 0 {
		t.Errorf("Expected expired session grids to be destroyed, got %d", registry.LiveTotal())
	}
}

func TestSessions_UnknownID(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sessions := NewSessions(time.Minute, func(id string) *Session { return &Session{ID: id} }, logger)

	if _, ok := sessions.Get("missing"); ok {
		t.Error("Expected unknown session id to be rejected")
	}
}

func TestParseCheckbox(t *testing.T) {
	for value, want := range map[string]bool{"on": true, "true": true, "1": true, "": false, "off": false, "false": false} {
		if got := parseCheckbox(value); got != want {
			t.Errorf("Expected %v for %q, got %v", want, value, got)
		}
	}
}
