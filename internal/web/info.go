package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/erazemk/stockroom/internal/store"
)

// InfoPage handles GET /info.
func (s *Server) InfoPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "info.html", &struct {
		PageData
	}{
		PageData: s.page(r, "Privacy & Security", TabPrivacy),
	})
}

// ThemeSubmit handles POST /theme. It flips dark mode for the session and
// returns to the page the toggle was pressed on.
func (s *Server) ThemeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := GetSession(r.Context())
	prefs := sess.Preferences.Toggled()
	if err := store.SetPreferences(r.Context(), s.DB, sess.ID, prefs); err != nil {
		slog.Error("failed to store preferences", "session", sess.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, localPath(r.FormValue("return")), http.StatusSeeOther)
}

// localPath returns back if it names a page on this site, and "/" otherwise.
// Browsers treat a leading "//" or "/\" as another host.
func localPath(back string) string {
	if !strings.HasPrefix(back, "/") || strings.HasPrefix(back, "//") || strings.HasPrefix(back, "/\\") {
		return "/"
	}
	if u, err := url.Parse(back); err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return back
}
