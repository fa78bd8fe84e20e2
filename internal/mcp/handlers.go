package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"lheq-stats/internal/standings"
)

// StandingsArgs are the arguments shared by the standings tools.
type StandingsArgs struct {
	IncludeTournaments bool   `json:"include_tournaments"`
	Division           string `json:"division,omitempty"`
}

type TeamArgs struct {
	IncludeTournaments bool   `json:"include_tournaments"`
	TeamID             string `json:"team_id"`
}

// Response wraps every tool result.
type Response struct {
	Snapshot           string    `json:"snapshot"`
	IncludeTournaments bool      `json:"include_tournaments"`
	LoadedAt           time.Time `json:"loaded_at"`
	Summary            string    `json:"summary"`
	Data               any       `json:"data"`
}

type DivisionList struct {
	Configured []string `json:"configured"`
	Present    []string `json:"present"`
}

type TeamDetail struct {
	standings.TeamSummary
	OverallRank  int `json:"overall_rank"`
	OverallSize  int `json:"overall_size"`
	DivisionRank int `json:"division_rank"`
	DivisionSize int `json:"division_size"`
}

// StandingsHandler answers the standings tools. Every call loads a fresh
// snapshot from the data source.
type StandingsHandler struct {
	source             standings.DataSource
	divisions          []string
	includeTournaments bool
	logger             *logrus.Logger
}

func NewStandingsHandler(source standings.DataSource, divisions []string, includeTournaments bool, logger *logrus.Logger) *StandingsHandler {
	if len(divisions) == 0 {
		divisions = standings.DefaultDivisions
	}
	return &StandingsHandler{
		source:             source,
		divisions:          divisions,
		includeTournaments: includeTournaments,
		logger:             logger,
	}
}

func includeTournamentsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Count tournament games in addition to the regular season (default: true)",
		"required":    false,
	}
}

func (h *StandingsHandler) GetDivisionStandingsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_division_standings",
		Description: "Get the ranked standings of each configured division, ordered by POC rating, total points and goal differential",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"include_tournaments": includeTournamentsProperty(),
				"division": map[string]interface{}{
					"type":        "string",
					"description": "Only return this division",
					"required":    false,
				},
			},
		},
	}
}

func (h *StandingsHandler) ListTeamsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_teams",
		Description: "List every team ranked league-wide, optionally filtered to one division",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"include_tournaments": includeTournamentsProperty(),
				"division": map[string]interface{}{
					"type":        "string",
					"description": "Division filter; empty for all divisions",
					"required":    false,
				},
			},
		},
	}
}

func (h *StandingsHandler) ListDivisionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_divisions",
		Description: "List the configured divisions and the divisions present in the data",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"include_tournaments": includeTournamentsProperty(),
			},
		},
	}
}

func (h *StandingsHandler) GetTeamTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_team",
		Description: "Get one team's statistics with its league-wide and division rank",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"include_tournaments": includeTournamentsProperty(),
				"team_id": map[string]interface{}{
					"type":        "string",
					"description": "The team identifier",
					"required":    true,
				},
			},
		},
	}
}

func (h *StandingsHandler) Tools() []mcp.Tool {
	return []mcp.Tool{
		h.GetDivisionStandingsTool(),
		h.ListTeamsTool(),
		h.ListDivisionsTool(),
		h.GetTeamTool(),
	}
}

func (h *StandingsHandler) HandleGetDivisionStandings(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	parsed, err := h.parseStandingsArgs(args)
	if err != nil {
		return nil, err
	}
	snap, err := h.load(ctx, parsed.IncludeTournaments, "")
	if err != nil {
		return loadFailed(err), nil
	}

	divisions := snap.SummarizeDivisions()
	if parsed.Division != "" {
		var picked []standings.DivisionSummary
		for _, d := range divisions {
			if d.Name == parsed.Division {
				picked = append(picked, d)
			}
		}
		if len(picked) == 0 {
			return errorResult(fmt.Sprintf("Unknown division %q. Configured divisions: %s", parsed.Division, strings.Join(h.divisions, ", "))), nil
		}
		divisions = picked
	}

	teams := 0
	for _, d := range divisions {
		teams += len(d.Teams)
	}
	return h.respond(snap, fmt.Sprintf("%d division(s), %d team(s)", len(divisions), teams), divisions)
}

func (h *StandingsHandler) HandleListTeams(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	parsed, err := h.parseStandingsArgs(args)
	if err != nil {
		return nil, err
	}
	snap, err := h.load(ctx, parsed.IncludeTournaments, parsed.Division)
	if err != nil {
		return loadFailed(err), nil
	}

	scope := "all divisions"
	if snap.Filter != "" {
		scope = snap.Filter
	}
	return h.respond(snap, fmt.Sprintf("%d team(s) in %s", len(snap.Listing), scope), standings.Summarize(snap.Listing))
}

func (h *StandingsHandler) HandleListDivisions(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	include, err := h.parseInclude(args)
	if err != nil {
		return nil, err
	}
	snap, err := h.load(ctx, include, "")
	if err != nil {
		return loadFailed(err), nil
	}
	list := DivisionList{Configured: h.divisions, Present: snap.DivisionOptions}
	return h.respond(snap, fmt.Sprintf("%d configured, %d present", len(list.Configured), len(list.Present)), list)
}

func (h *StandingsHandler) HandleGetTeam(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	include, err := h.parseInclude(args)
	if err != nil {
		return nil, err
	}
	teamID, ok := args["team_id"].(string)
	if !ok || strings.TrimSpace(teamID) == "" {
		return nil, fmt.Errorf("team_id is required and must be a string")
	}
	snap, err := h.load(ctx, include, "")
	if err != nil {
		return loadFailed(err), nil
	}

	for _, team := range snap.Ranked {
		if string(team.ID) != teamID {
			continue
		}
		detail := TeamDetail{
			TeamSummary: standings.Summarize([]standings.RankedTeam{team})[0],
			OverallRank: team.Position,
			OverallSize: len(snap.Ranked),
		}
		division := standings.FilterDivision(snap.Ranked, team.Division)
		detail.DivisionSize = len(division)
		for _, t := range division {
			if t.Order == team.Order {
				detail.DivisionRank = t.Position
			}
		}
		return h.respond(snap, fmt.Sprintf("%s, rank %d of %d", team.Name, detail.OverallRank, detail.OverallSize), detail)
	}
	return errorResult(fmt.Sprintf("Team %q not found", teamID)), nil
}

func (h *StandingsHandler) load(ctx context.Context, include bool, division string) (*standings.Snapshot, error) {
	vm := standings.NewViewModel(h.source, h.divisions, h.logger)
	snap, err := vm.Reload(ctx, include)
	if err != nil {
		h.logger.WithError(err).WithField("include_tournaments", include).Error("Failed to load standings")
		return nil, err
	}
	if division != "" {
		return vm.Refilter(division)
	}
	return snap, nil
}

func (h *StandingsHandler) respond(snap *standings.Snapshot, summary string, data any) (*mcp.CallToolResult, error) {
	text, err := formatJSONResponse(Response{
		Snapshot:           snap.ID,
		IncludeTournaments: snap.IncludeTournaments,
		LoadedAt:           snap.LoadedAt,
		Summary:            summary,
		Data:               data,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to format response")
		return errorResult(fmt.Sprintf("Error formatting response: %s", err.Error())), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Type: "text", Text: text},
		},
	}, nil
}

func (h *StandingsHandler) parseStandingsArgs(args map[string]interface{}) (StandingsArgs, error) {
	include, err := h.parseInclude(args)
	if err != nil {
		return StandingsArgs{}, err
	}
	parsed := StandingsArgs{IncludeTournaments: include}
	if raw, ok := args["division"]; ok && raw != nil {
		division, ok := raw.(string)
		if !ok {
			return StandingsArgs{}, fmt.Errorf("division must be a string")
		}
		parsed.Division = strings.TrimSpace(division)
	}
	return parsed, nil
}

// parseInclude accepts a JSON boolean or its string form.
func (h *StandingsHandler) parseInclude(args map[string]interface{}) (bool, error) {
	raw, ok := args["include_tournaments"]
	if !ok || raw == nil {
		return h.includeTournaments, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		include, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("include_tournaments must be a boolean")
		}
		return include, nil
	}
	return false, fmt.Errorf("include_tournaments must be a boolean")
}

func loadFailed(err error) *mcp.CallToolResult {
	return errorResult(fmt.Sprintf("Failed to load team statistics: %s", err.Error()))
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Type: "text", Text: text},
		},
		IsError: true,
	}
}

func formatJSONResponse(response interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(jsonBytes), nil
}
