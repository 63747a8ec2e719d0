package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/stockroom/internal/controller"
	"github.com/erazemk/stockroom/internal/model"
	"github.com/erazemk/stockroom/internal/store"
)

// recentActivity is how many activity entries the Home tab shows.
const recentActivity = 10

// ListPage handles GET /. Every visit clears the search and reloads the
// full collection.
func (s *Server) ListPage(w http.ResponseWriter, r *http.Request) {
	l := s.screen(r).List
	l.Reset()
	l.Activate(r.Context())
	s.renderList(w, r, l)
}

// ListSearchSubmit handles POST /search.
func (s *Server) ListSearchSubmit(w http.ResponseWriter, r *http.Request) {
	l := s.screen(r).List
	l.Search(r.Context(), r.FormValue("q"))
	s.renderList(w, r, l)
}

// ListResetSubmit handles POST /reset.
func (s *Server) ListResetSubmit(w http.ResponseWriter, r *http.Request) {
	l := s.screen(r).List
	l.Reset()
	s.renderList(w, r, l)
}

func (s *Server) renderList(w http.ResponseWriter, r *http.Request, l *controller.List) {
	var activity []model.Activity
	var err error
	if sess := GetSession(r.Context()); sess != nil {
		activity, err = store.ListActivity(r.Context(), s.DB, sess.ID, recentActivity)
	}
	if err != nil {
		slog.Error("failed to list activity", "error", err)
	}

	s.Templates.Render(w, "list.html", &struct {
		PageData
		controller.ListState
		Activity []model.Activity
	}{
		PageData:  s.page(r, "Inventory", TabHome),
		ListState: l.State(),
		Activity:  activity,
	})
}
