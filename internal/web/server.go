package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"lheq-stats/internal/grid"
	"lheq-stats/internal/standings"
)

type Options struct {
	Divisions          []string
	IncludeTournaments bool
	TeamDetailURL      string
	SessionTTL         time.Duration
}

type Server struct {
	source    standings.DataSource
	templates *Templates
	logger    *logrus.Logger
	opts      Options
	grids     *grid.Registry
	sessions  *Sessions
}

func NewServer(source standings.DataSource, templates *Templates, logger *logrus.Logger, opts Options) *Server {
	if len(opts.Divisions) == 0 {
		opts.Divisions = standings.DefaultDivisions
	}
	if opts.TeamDetailURL == "" {
		opts.TeamDetailURL = "/teams/%s"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	s := &Server{
		source:    source,
		templates: templates,
		logger:    logger,
		opts:      opts,
		grids:     grid.NewRegistry(logger),
	}
	s.sessions = NewSessions(opts.SessionTTL, s.newSession, logger)
	return s
}

func (s *Server) newSession(id string) *Session {
	dashboard := NewDashboardPresenter(s.opts.TeamDetailURL)
	listing := NewListingPresenter(s.opts.TeamDetailURL)
	scope := s.grids.Scope(id)
	vm := standings.NewViewModel(s.source, s.opts.Divisions, s.logger)
	return &Session{
		ID:          id,
		Coordinator: standings.NewCoordinator(vm, scope, s.logger, s.opts.IncludeTournaments, dashboard, listing),
		Dashboard:   dashboard,
		Listing:     listing,
		Grids:       scope,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))
	r.Use(func(next http.Handler) http.Handler {
		return WithSession(s.sessions, s.opts.SessionTTL, next)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleDashboard)
	r.Get("/teams", s.handleTeams)
	r.Get("/teams/{teamID}", s.handleTeamDetail)
	r.Post("/teams/filter", s.handleTeamsFilter)
	r.Post("/toggle", s.handleToggle)
	r.Get("/grid/{owner}/{tableID}", s.handleGrid)

	r.Route("/api", func(r chi.Router) {
		r.Get("/standings", s.handleAPIStandings)
		r.Get("/teams", s.handleAPITeams)
	})

	return r
}
