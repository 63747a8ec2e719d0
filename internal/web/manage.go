package web

import (
	"context"
	"net/http"

	"github.com/erazemk/stockroom/internal/controller"
	"github.com/erazemk/stockroom/internal/model"
)

// formConfirmer answers a confirmation prompt from the submitted "confirm"
// field. Without an answer the controller keeps the action pending and the
// page shows a confirmation dialog that resubmits it.
type formConfirmer string

func (f formConfirmer) Confirm(context.Context, string) (bool, error) {
	switch f {
	case "":
		return false, controller.ErrConfirmationPending
	case "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ManagePage handles GET /manage.
func (s *Server) ManagePage(w http.ResponseWriter, r *http.Request) {
	s.renderManage(w, r, s.screen(r).Manage)
}

// ManageSearchSubmit handles POST /manage/search.
func (s *Server) ManageSearchSubmit(w http.ResponseWriter, r *http.Request) {
	m := s.screen(r).Manage
	m.Search(r.Context(), r.FormValue("name"))
	s.renderManage(w, r, m)
}

// ManageUpdateSubmit handles POST /manage/update.
func (s *Server) ManageUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	m := s.screen(r).Manage
	f := model.RecordFormFromValues(r.FormValue)
	m.Update(r.Context(), f, formConfirmer(r.FormValue("confirm")))
	s.renderManage(w, r, m)
}

// ManageDeleteSubmit handles POST /manage/delete.
func (s *Server) ManageDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	m := s.screen(r).Manage
	m.Delete(r.Context(), r.FormValue("delete_name"), formConfirmer(r.FormValue("confirm")))
	s.renderManage(w, r, m)
}

func (s *Server) renderManage(w http.ResponseWriter, r *http.Request, m *controller.Manage) {
	s.Templates.Render(w, "manage.html", &struct {
		PageData
		controller.ManageState
	}{
		PageData:    s.page(r, "Update or delete", TabManage),
		ManageState: m.State(),
	})
}
