package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"lheq-stats/internal/grid"
	"lheq-stats/internal/standings"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = sess.Start(r.Context())
	s.renderDashboard(w, r, sess)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, sess *Session) {
	view := s.dashboardView(sess)
	view.Notice = flashMessage(r.URL.Query().Get("notice"))
	var err error
	if isHTMX(r) {
		err = s.templates.RenderPartial(w, http.StatusOK, "dashboard_content.html", view)
	} else {
		err = s.templates.Render(w, http.StatusOK, "dashboard.html", view)
	}
	if err != nil {
		s.renderFailure(w, err)
	}
}

func (s *Server) dashboardView(sess *Session) DashboardView {
	var view DashboardView
	sess.Coordinator.Read(func(status standings.Status) {
		view.BaseView = baseView("Tableau de bord", viewDashboard, status)
		tables, _, err := sess.Dashboard.Output()
		if err != nil {
			view.Error = &ErrorView{Title: msgLoadErrorTitle, Message: loadErrorMessage(viewDashboard)}
			return
		}
		for _, table := range tables {
			view.Tables = append(view.Tables, tableView(sess.Grids, viewDashboard, table))
		}
	})
	return view
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = sess.Start(r.Context())

	q := r.URL.Query()
	if q.Has("division") {
		division := strings.TrimSpace(q.Get("division"))
		if division != sess.Coordinator.Filter() {
			s.applyFilter(r, sess, division)
		}
	}
	if inst, ok := sess.Grids.Instance(viewTeams, listingTableID); ok {
		if column := q.Get("sort"); column != "" {
			if err := inst.Sort(column, grid.ParseDirection(q.Get("dir"))); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			inst.SetPage(page)
		}
	}
	s.renderTeams(w, r, sess)
}

func (s *Server) renderTeams(w http.ResponseWriter, r *http.Request, sess *Session) {
	view := s.teamsView(sess)
	view.Notice = flashMessage(r.URL.Query().Get("notice"))
	var err error
	if isHTMX(r) {
		err = s.templates.RenderPartial(w, http.StatusOK, "teams_content.html", view)
	} else {
		err = s.templates.Render(w, http.StatusOK, "teams.html", view)
	}
	if err != nil {
		s.renderFailure(w, err)
	}
}

// teamsView shows the filter the displayed table was grouped with, which lags
// the requested one while a fetch is still in flight.
func (s *Server) teamsView(sess *Session) TeamsView {
	var view TeamsView
	sess.Coordinator.Read(func(status standings.Status) {
		filter := status.Filter
		if status.Snapshot != nil {
			filter = status.Snapshot.Filter
		}
		view.BaseView = baseView("Équipes", viewTeams, status)
		view.Filter = filter
		tables, snap, err := sess.Listing.Output()
		view.Divisions = divisionOptions(snap, filter)
		if err != nil {
			view.Error = &ErrorView{Title: msgLoadErrorTitle, Message: loadErrorMessage(viewTeams)}
			return
		}
		if len(tables) > 0 {
			table := tableView(sess.Grids, viewTeams, tables[0])
			view.Table = &table
			view.Count = len(tables[0].Rows)
		}
	})
	return view
}

// applyFilter regroups the standings and waits for a fetch that was already
// in flight, so the page renders the table for the requested division.
func (s *Server) applyFilter(r *http.Request, sess *Session, division string) {
	ctx := context.WithoutCancel(r.Context())
	if err := sess.Coordinator.SetDivisionFilter(ctx, division); err != nil && !errors.Is(err, standings.ErrSuperseded) {
		s.logger.WithError(err).Warn("Division filter failed")
	}
	if err := sess.Coordinator.Wait(r.Context()); err != nil {
		s.logger.WithError(err).Debug("Stopped waiting for standings")
	}
}

func (s *Server) handleTeamsFilter(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	division := strings.TrimSpace(r.PostFormValue("division"))
	s.applyFilter(r, sess, division)
	if !isHTMX(r) {
		http.Redirect(w, r, withNotice(teamsURL(division), noticeFilterApplied), http.StatusSeeOther)
		return
	}
	setPushURL(w, teamsURL(division))
	s.renderTeams(w, r, sess)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	include := parseCheckbox(r.PostFormValue("include_tournaments"))
	view := r.PostFormValue("view")

	// The initial load is skipped so it cannot supersede the toggle.
	sess.startOnce.Do(func() {})
	err := sess.Coordinator.SetIncludeTournaments(context.WithoutCancel(r.Context()), include)
	if err != nil && !errors.Is(err, standings.ErrSuperseded) {
		s.logger.WithError(err).WithField("include_tournaments", include).Warn("Toggle failed")
	}

	target := "/"
	if view == viewTeams {
		target = "/teams"
	}
	if !isHTMX(r) {
		notice := noticeTournamentsExcluded
		if include {
			notice = noticeTournamentsIncluded
		}
		http.Redirect(w, r, withNotice(target, notice), http.StatusSeeOther)
		return
	}
	if view == viewTeams {
		s.renderTeams(w, r, sess)
		return
	}
	s.renderDashboard(w, r, sess)
}

// handleGrid applies a sort or page change to one live table and renders it.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	owner := chi.URLParam(r, "owner")
	tableID := chi.URLParam(r, "tableID")

	inst, ok := sess.Grids.Instance(owner, tableID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	if column := q.Get("sort"); column != "" {
		if err := inst.Sort(column, grid.ParseDirection(q.Get("dir"))); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, grid.ErrDestroyed) {
				status = http.StatusConflict
			}
			http.Error(w, err.Error(), status)
			return
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		inst.SetPage(page)
	}

	if !isHTMX(r) {
		target := "/"
		if owner == viewTeams {
			target = "/teams"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	view := tableView(sess.Grids, owner, inst.Table())
	if err := s.templates.RenderPartial(w, http.StatusOK, "grid_table.html", view); err != nil {
		s.renderFailure(w, err)
	}
}

func (s *Server) handleTeamDetail(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	_ = sess.Start(r.Context())
	teamID := chi.URLParam(r, "teamID")

	var view TeamDetailView
	code := http.StatusOK
	sess.Coordinator.Read(func(status standings.Status) {
		view.BaseView = baseView("Équipe", viewTeams, status)
		if found, ok := findTeam(status.Snapshot, teamID); ok {
			fillTeamDetail(&view, status.Snapshot, found)
			return
		}
		view.NotFound = true
		view.NotFoundTitle = msgTeamNotFound
		code = http.StatusNotFound
	})
	if err := s.templates.Render(w, code, "team.html", view); err != nil {
		s.renderFailure(w, err)
	}
}

func findTeam(snap *standings.Snapshot, id string) (standings.RankedTeam, bool) {
	if snap == nil {
		return standings.RankedTeam{}, false
	}
	for _, team := range snap.Ranked {
		if string(team.ID) == id {
			return team, true
		}
	}
	return standings.RankedTeam{}, false
}

func fillTeamDetail(view *TeamDetailView, snap *standings.Snapshot, team standings.RankedTeam) {
	summary := standings.Summarize([]standings.RankedTeam{team})[0]
	view.Title = team.Name
	view.Team = summary
	view.Logo = logoURL(team)
	view.RatingText = formatRating(team.EffectiveRating)
	view.RatingClass = ratingClass(team.EffectiveRating)
	view.DiffText = formatDiff(team.GoalDifferential)
	view.DiffClass = diffClass(team.GoalDifferential)
	view.OverallRank = team.Position
	view.OverallSize = len(snap.Ranked)

	division := standings.FilterDivision(snap.Ranked, team.Division)
	view.DivisionSize = len(division)
	for _, t := range division {
		if t.ID == team.ID && t.Order == team.Order {
			view.DivisionRank = t.Position
			break
		}
	}
}

func (s *Server) renderFailure(w http.ResponseWriter, err error) {
	s.logger.WithError(err).Error("Template render failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func teamsURL(division string) string {
	if division == "" {
		return "/teams"
	}
	return "/teams?division=" + url.QueryEscape(division)
}
