package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lheq-stats/internal/standings"
)

type standingsResponse struct {
	Snapshot           string                      `json:"snapshot"`
	IncludeTournaments bool                        `json:"include_tournaments"`
	LoadedAt           time.Time                   `json:"loaded_at"`
	Divisions          []standings.DivisionSummary `json:"divisions"`
}

type teamsResponse struct {
	Snapshot           string                  `json:"snapshot"`
	IncludeTournaments bool                    `json:"include_tournaments"`
	Division           string                  `json:"division"`
	DivisionOptions    []string                `json:"division_options"`
	Teams              []standings.TeamSummary `json:"teams"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleAPIStandings(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.apiSnapshot(w, r, "")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, standingsResponse{
		Snapshot:           snap.ID,
		IncludeTournaments: snap.IncludeTournaments,
		LoadedAt:           snap.LoadedAt,
		Divisions:          snap.SummarizeDivisions(),
	})
}

func (s *Server) handleAPITeams(w http.ResponseWriter, r *http.Request) {
	division := strings.TrimSpace(r.URL.Query().Get("division"))
	snap, ok := s.apiSnapshot(w, r, division)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, teamsResponse{
		Snapshot:           snap.ID,
		IncludeTournaments: snap.IncludeTournaments,
		Division:           snap.Filter,
		DivisionOptions:    snap.DivisionOptions,
		Teams:              standings.Summarize(snap.Listing),
	})
}

// apiSnapshot loads a fresh snapshot for the query's tournament setting. API
// calls do not touch any session.
func (s *Server) apiSnapshot(w http.ResponseWriter, r *http.Request, division string) (*standings.Snapshot, bool) {
	include := s.opts.IncludeTournaments
	if raw := r.URL.Query().Get("include_tournaments"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "include_tournaments must be a boolean"})
			return nil, false
		}
		include = parsed
	}

	vm := standings.NewViewModel(s.source, s.opts.Divisions, s.logger)
	snap, err := vm.Reload(r.Context(), include)
	if err == nil && division != "" {
		snap, err = vm.Refilter(division)
	}
	if err != nil {
		var dsErr *standings.DataSourceError
		status := http.StatusInternalServerError
		if errors.As(err, &dsErr) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: msgLoadErrorTitle, Message: loadErrorMessage(viewDashboard)})
		return nil, false
	}
	return snap, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
