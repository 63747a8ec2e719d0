package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/stockroom/internal/controller"
	webembed "github.com/erazemk/stockroom/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, secret string, inv controller.Inventory) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		Secret:    secret,
		Inventory: inv,
		Screens:   NewScreens(db, inv),
	}

	mux := http.NewServeMux()
	session := SessionMiddleware(secret, db)
	page := func(h http.HandlerFunc) http.Handler { return session(h) }

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	mux.Handle("GET /{$}", page(s.ListPage))
	mux.Handle("POST /search", page(s.ListSearchSubmit))
	mux.Handle("POST /reset", page(s.ListResetSubmit))

	mux.Handle("GET /add", page(s.CreatePage))
	mux.Handle("POST /add", page(s.CreateSubmit))

	mux.Handle("GET /manage", page(s.ManagePage))
	mux.Handle("POST /manage/search", page(s.ManageSearchSubmit))
	mux.Handle("POST /manage/update", page(s.ManageUpdateSubmit))
	mux.Handle("POST /manage/delete", page(s.ManageDeleteSubmit))

	mux.Handle("GET /info", page(s.InfoPage))
	mux.Handle("POST /theme", page(s.ThemeSubmit))

	return mux, nil
}

// screen returns the view controllers of the request's session.
func (s *Server) screen(r *http.Request) *Screen {
	return s.Screens.Get(GetSession(r.Context()).ID)
}
