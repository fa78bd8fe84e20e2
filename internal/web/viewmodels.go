package web

import (
	"net/url"
	"time"

	"lheq-stats/internal/grid"
	"lheq-stats/internal/standings"
)

type BaseView struct {
	Title              string
	Active             string
	IncludeTournaments bool
	LoadedAt           time.Time
	Snapshot           string
	Notice             string
}

type ErrorView struct {
	Title   string
	Message string
}

type HeaderView struct {
	Label     string
	Class     string
	Orderable bool
	URL       string
	Sorted    bool
	Dir       grid.Direction
}

type TableView struct {
	ID          string
	Owner       string
	Caption     string
	Headers     []HeaderView
	Rows        []grid.Row
	Placeholder string
	Colspan     int
	Live        bool
	Page        grid.Page
	Paged       bool
}

type DashboardView struct {
	BaseView
	Tables []TableView
	Error  *ErrorView
}

type DivisionOption struct {
	Value    string
	Label    string
	Selected bool
}

type TeamsView struct {
	BaseView
	Table     *TableView
	Divisions []DivisionOption
	Filter    string
	Count     int
	Error     *ErrorView
}

type TeamDetailView struct {
	BaseView
	Team          standings.TeamSummary
	Logo          string
	RatingClass   string
	RatingText    string
	DiffText      string
	DiffClass     string
	DivisionRank  int
	DivisionSize  int
	OverallRank   int
	OverallSize   int
	NotFound      bool
	NotFoundTitle string
}

func tableView(scope *grid.Scope, owner string, table *grid.Table) TableView {
	inst, live := scope.Instance(owner, table.ID)
	if live {
		table = inst.Table()
	}
	view := TableView{
		ID:          table.ID,
		Owner:       owner,
		Caption:     table.Caption,
		Placeholder: table.Placeholder,
		Colspan:     len(table.Columns),
		Live:        live,
		Rows:        table.Rows,
	}
	sortKey := table.DefaultSort
	if live {
		view.Rows = inst.Rows()
		sortKey = inst.SortKey()
		view.Page = inst.Page()
		view.Paged = table.PageSize > 0 && view.Page.Total > 1
	}
	for _, col := range table.Columns {
		header := HeaderView{Label: col.Label, Class: col.Class, Orderable: col.Orderable && live}
		if header.Orderable {
			header.Sorted = sortKey.Column == col.Key
			next := grid.Desc
			if header.Sorted {
				header.Dir = sortKey.Dir
				if sortKey.Dir == grid.Desc {
					next = grid.Asc
				}
			}
			header.URL = gridURL(owner, table.ID, col.Key, next)
		}
		view.Headers = append(view.Headers, header)
	}
	return view
}

func gridURL(owner, tableID, column string, dir grid.Direction) string {
	q := url.Values{}
	q.Set("sort", column)
	q.Set("dir", string(dir))
	return "/grid/" + url.PathEscape(owner) + "/" + url.PathEscape(tableID) + "?" + q.Encode()
}

func divisionOptions(snap *standings.Snapshot, selected string) []DivisionOption {
	options := []DivisionOption{{Value: "", Label: msgAllDivisions, Selected: selected == ""}}
	if snap == nil {
		return options
	}
	for _, name := range snap.DivisionOptions {
		options = append(options, DivisionOption{Value: name, Label: name, Selected: name == selected})
	}
	return options
}

func baseView(title, active string, status standings.Status) BaseView {
	view := BaseView{
		Title:              title,
		Active:             active,
		IncludeTournaments: status.IncludeTournaments,
	}
	if snap := status.Snapshot; snap != nil {
		view.IncludeTournaments = snap.IncludeTournaments
		view.LoadedAt = snap.LoadedAt
		view.Snapshot = snap.ID
	}
	return view
}
