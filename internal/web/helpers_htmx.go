package web

import (
	"net/http"
	"strings"
)

func isHTMX(r *http.Request) bool {
	return strings.ToLower(r.Header.Get("HX-Request")) == "true"
}

// setPushURL makes htmx record url in the browser history after a swap.
func setPushURL(w http.ResponseWriter, url string) {
	w.Header().Set("HX-Push-Url", url)
}
