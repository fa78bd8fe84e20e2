package web

import (
	"net/url"
	"strings"
)

const (
	noticeTournamentsIncluded = "tournaments_included"
	noticeTournamentsExcluded = "tournaments_excluded"
	noticeFilterApplied       = "filter_applied"
)

// flashMessage is shown once after a form post without htmx redirects back.
func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case noticeTournamentsIncluded:
		return "Les matchs de tournoi sont inclus."
	case noticeTournamentsExcluded:
		return "Saison régulière seulement."
	case noticeFilterApplied:
		return "Filtre de division appliqué."
	}
	return ""
}

func withNotice(target, notice string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
