package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/erazemk/stockroom/internal/controller"
	"github.com/erazemk/stockroom/internal/model"
	webembed "github.com/erazemk/stockroom/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(p model.Price) string {
			return "$" + p.StringFixed(2)
		},
		"yesNo": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
		"categories":    func() []model.Category { return model.Categories },
		"stockStatuses": func() []model.StockStatus { return model.StockStatuses },
		"deref": func(p *int) string {
			if p == nil {
				return ""
			}
			return fmt.Sprint(*p)
		},
		"derefPrice": func(p *decimal.Decimal) string {
			if p == nil {
				return ""
			}
			return p.String()
		},
		"actionName": func(action string) string {
			switch action {
			case model.ActionCreate:
				return "Added"
			case model.ActionUpdate:
				return "Updated"
			case model.ActionDelete:
				return "Deleted"
			default:
				return action
			}
		},
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"list.html",
		"create.html",
		"manage.html",
		"info.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// Tabs of the page shell.
const (
	TabHome    = "home"
	TabAdd     = "add"
	TabManage  = "manage"
	TabPrivacy = "privacy"
)

// tabPaths maps each tab to the page that shows it.
var tabPaths = map[string]string{
	TabHome:    "/",
	TabAdd:     "/add",
	TabManage:  "/manage",
	TabPrivacy: "/info",
}

// PageData is the base data passed to all templates. Path is the GET route
// of the current tab; Help opens the page's help dialog.
type PageData struct {
	Title string
	Tab   string
	Path  string
	Prefs model.Preferences
	Help  bool
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Templates *Templates
	Secret    string
	Inventory controller.Inventory
	Screens   *Screens
}

// page builds the base page data for the request.
func (s *Server) page(r *http.Request, title, tab string) PageData {
	pd := PageData{
		Title: title,
		Tab:   tab,
		Path:  tabPaths[tab],
		Help:  r.URL.Query().Get("help") == "1",
	}
	if sess := GetSession(r.Context()); sess != nil {
		pd.Prefs = sess.Preferences
	}
	return pd
}
