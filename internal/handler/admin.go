package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// AdminHandler serves the single-page admin UI. The page itself is public;
// everything it does goes through the token-gated /api/admin routes.
//
// TEMPLATE COMPOSITION:
// base.html defines the page shell with a {{template "content" .}}
// placeholder and admin.html fills it with {{define "content"}}. Both are
// embedded in the binary and parsed once at startup.
type AdminHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewAdminHandler(logger *slog.Logger) (*AdminHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/admin.html")
	if err != nil {
		return nil, err
	}
	return &AdminHandler{templates: tmpl, logger: logger}, nil
}

// HandleAdmin handles GET /admin.
func (h *AdminHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title": "Our Gallery · Admin",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "base", data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
