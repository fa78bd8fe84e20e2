package main

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"lheq-stats/internal/config"
	"lheq-stats/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

//go:embed templates/* templates/partials/* static/css/* static/assets/logos/*
var content embed.FS

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger := cfg.NewLogger()

	templates, err := web.NewTemplates(content)
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse templates")
	}
	teams, err := config.OpenStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open team store")
	}
	server := web.NewServer(teams, templates, logger, web.Options{
		Divisions:          cfg.Divisions,
		IncludeTournaments: cfg.IncludeTournaments,
		TeamDetailURL:      cfg.TeamDetailURL,
		SessionTTL:         cfg.SessionTTL,
	})
	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		logger.WithError(err).Fatal("Failed to open static files")
	}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if cfg.Lambda {
		logger.Info("Starting in Lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	logger.WithField("addr", cfg.Addr).Info("Starting HTTP server")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("HTTP server stopped")
	}
}
