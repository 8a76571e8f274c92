package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.log(r).Error("cannot render page", slog.String("page", name), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type confirmedData struct {
	Reference string
}

// handleConfirmed is the page the form navigates to after a successful
// submit. The reference is shown only when it parses as one of ours.
func (s *Server) handleConfirmed(w http.ResponseWriter, r *http.Request) {
	var data confirmedData
	if ref, err := uuid.Parse(r.URL.Query().Get("ref")); err == nil {
		data.Reference = ref.String()
	}
	s.render(w, r, "booking_confirmed.html", data)
}
