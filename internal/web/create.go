package web

import (
	"net/http"

	"github.com/erazemk/stockroom/internal/controller"
)

// CreatePage handles GET /add.
func (s *Server) CreatePage(w http.ResponseWriter, r *http.Request) {
	c := s.screen(r).Create
	c.LoadFeatured(r.Context())
	s.renderCreate(w, r, c)
}

// CreateSubmit handles POST /add.
func (s *Server) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	c := s.screen(r).Create
	c.SubmitForm(r.Context(), r.FormValue)
	s.renderCreate(w, r, c)
}

func (s *Server) renderCreate(w http.ResponseWriter, r *http.Request, c *controller.Create) {
	s.Templates.Render(w, "create.html", &struct {
		PageData
		controller.CreateState
	}{
		PageData:    s.page(r, "Add item", TabAdd),
		CreateState: c.State(),
	})
}
