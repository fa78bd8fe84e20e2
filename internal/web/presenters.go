package web

import (
	"fmt"
	"sync"

	"lheq-stats/internal/grid"
	"lheq-stats/internal/standings"
)

const (
	viewDashboard = "dashboard"
	viewTeams     = "teams"

	listingTableID = "teams-table"
	ratingColumn   = "poc"
)

// rendered is the output of the last Build or ShowError.
type rendered struct {
	mu     sync.RWMutex
	tables []*grid.Table
	err    error
	snap   *standings.Snapshot
}

func (r *rendered) set(snap *standings.Snapshot, tables []*grid.Table, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	r.tables = tables
	r.err = err
}

func (r *rendered) get() ([]*grid.Table, *standings.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables, r.snap, r.err
}

// DashboardPresenter renders one standings table per configured division.
type DashboardPresenter struct {
	detailPattern string
	out           rendered
}

func NewDashboardPresenter(detailPattern string) *DashboardPresenter {
	return &DashboardPresenter{detailPattern: detailPattern}
}

func (p *DashboardPresenter) Name() string { return viewDashboard }

func (p *DashboardPresenter) Build(snap *standings.Snapshot) []*grid.Table {
	tables := make([]*grid.Table, 0, len(snap.DivisionNames))
	for i, division := range snap.DivisionNames {
		table := &grid.Table{
			ID:          fmt.Sprintf("division-%d", i+1),
			Caption:     division,
			Columns:     standingsColumns(false),
			Placeholder: msgNoTeams,
			DefaultSort: grid.SortKey{Column: ratingColumn, Dir: grid.Desc},
		}
		for _, team := range snap.Division(division) {
			table.Rows = append(table.Rows, p.row(team))
		}
		tables = append(tables, table)
	}
	p.out.set(snap, tables, nil)
	return tables
}

func (p *DashboardPresenter) row(team standings.RankedTeam) grid.Row {
	href := detailURL(p.detailPattern, team)
	cells := []grid.Cell{
		{Text: fmt.Sprint(team.Position), Order: float64(team.Position)},
		{Text: truncateName(team.Name), Href: href, Image: logoURL(team), Class: "team-link"},
	}
	cells = append(cells, statCells(team)...)
	return grid.Row{Key: string(team.ID), Cells: cells}
}

func (p *DashboardPresenter) ShowError(err error) {
	p.out.set(nil, nil, err)
}

func (p *DashboardPresenter) Output() ([]*grid.Table, *standings.Snapshot, error) {
	return p.out.get()
}

// ListingPresenter renders the filtered list of every team.
type ListingPresenter struct {
	detailPattern string
	out           rendered
}

func NewListingPresenter(detailPattern string) *ListingPresenter {
	return &ListingPresenter{detailPattern: detailPattern}
}

func (p *ListingPresenter) Name() string { return viewTeams }

func (p *ListingPresenter) Build(snap *standings.Snapshot) []*grid.Table {
	table := &grid.Table{
		ID:          listingTableID,
		Columns:     standingsColumns(true),
		Placeholder: msgNoTeams,
		DefaultSort: grid.SortKey{Column: ratingColumn, Dir: grid.Desc},
	}
	for _, team := range snap.Listing {
		table.Rows = append(table.Rows, p.row(team))
	}
	tables := []*grid.Table{table}
	p.out.set(snap, tables, nil)
	return tables
}

func (p *ListingPresenter) row(team standings.RankedTeam) grid.Row {
	cells := []grid.Cell{
		{Text: fmt.Sprint(team.Position), Order: float64(team.Position)},
		{Text: team.Name, Image: logoURL(team), Strong: true},
	}
	cells = append(cells, statCells(team)...)
	cells = append(cells,
		grid.Cell{Text: fmt.Sprint(team.PenaltyMinutes), Order: float64(team.PenaltyMinutes)},
		grid.Cell{
			Text: standings.Record(team.HomeWins, team.HomeLosses, team.HomeTies),
			Sub:  standings.Record(team.AwayWins, team.AwayLosses, team.AwayTies),
		},
	)
	return grid.Row{
		Key:   string(team.ID),
		Href:  detailURL(p.detailPattern, team),
		Title: rowTitle(team.Name),
		Cells: cells,
	}
}

func (p *ListingPresenter) ShowError(err error) {
	p.out.set(nil, nil, err)
}

func (p *ListingPresenter) Output() ([]*grid.Table, *standings.Snapshot, error) {
	return p.out.get()
}

func standingsColumns(listing bool) []grid.Column {
	columns := []grid.Column{
		{Key: "position", Label: "#"},
		{Key: "team", Label: "Équipe", Class: "team"},
		{Key: "gp", Label: "PJ", Orderable: true, Numeric: true},
		{Key: "w", Label: "V", Orderable: true, Numeric: true},
		{Key: "l", Label: "D", Orderable: true, Numeric: true},
		{Key: "otl", Label: "DP", Orderable: true, Numeric: true},
		{Key: "t", Label: "N", Orderable: true, Numeric: true},
		{Key: "pts", Label: "PTS", Orderable: true, Numeric: true},
		{Key: "fp", Label: "FP", Orderable: true, Numeric: true},
		{Key: "total", Label: "TOT", Orderable: true, Numeric: true},
		{Key: ratingColumn, Label: "~POC", Orderable: true, Numeric: true},
		{Key: "gf", Label: "BP", Orderable: true, Numeric: true},
		{Key: "ga", Label: "BC", Orderable: true, Numeric: true},
		{Key: "diff", Label: "DIFF", Orderable: true, Numeric: true},
	}
	if listing {
		columns = append(columns,
			grid.Column{Key: "pim", Label: "PUN", Orderable: true, Numeric: true},
			grid.Column{Key: "home_away", Label: "DOM/EXT", Orderable: true, Class: "home-away"},
		)
	}
	return columns
}

func statCells(team standings.RankedTeam) []grid.Cell {
	num := func(v int) grid.Cell {
		return grid.Cell{Text: fmt.Sprint(v), Order: float64(v)}
	}
	points := num(team.Points)
	points.Strong = true
	total := num(team.TotalPointsValue)
	total.Strong = true
	return []grid.Cell{
		num(team.GamesPlayed),
		num(team.Wins),
		num(team.Losses),
		num(team.OvertimeLossValue),
		num(team.Ties),
		points,
		num(team.FairPlayValue),
		total,
		{
			Text:   formatRating(team.EffectiveRating),
			Class:  ratingClass(team.EffectiveRating),
			Strong: true,
			Order:  team.EffectiveRating,
		},
		num(team.GoalsFor),
		num(team.GoalsAgainst),
		{
			Text:  formatDiff(team.GoalDifferential),
			Class: diffClass(team.GoalDifferential),
			Order: float64(team.GoalDifferential),
		},
	}
}
