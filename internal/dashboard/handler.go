package dashboard

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type card struct {
	ID           string
	Name         string
	BusinessType string
	Location     string
	AssignedTeam string
	Package      string
	Amount       string
}

type page struct {
	Title     string
	Total     string
	Cards     []card
	ModalOpen bool
	Alert     string
	Form      SponsorForm
	Teams     []string
	Packages  []string
}

// Handler serves the server-rendered dashboard. Every request gets its own
// View, so browser sessions never share state.
type Handler struct {
	api       API
	formatter *Formatter
	title     string
	logger    *slog.Logger
	tmpl      *template.Template
}

// NewHandler parses the embedded templates.
func NewHandler(api API, formatter *Formatter, title string, logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:       api,
		formatter: formatter,
		title:     title,
		logger:    logger,
		tmpl:      tmpl,
	}, nil
}

// Routes mounts the dashboard pages on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Index)
	r.Post("/dashboard/sponsors", h.Create)
	r.Post("/dashboard/sponsors/{id}/delete", h.Delete)
}

// Index renders the list. ?modal=open shows the create form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	view := NewView(h.api, h.logger)
	if r.URL.Query().Get("modal") == "open" {
		view.OpenModal()
	}

	// A failed fetch is already logged by the view; render what we have.
	_ = view.Fetch(r.Context())
	h.render(w, http.StatusOK, view)
}

// Create handles the modal form submission.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := SponsorForm{
		Name:         r.PostForm.Get("name"),
		Amount:       r.PostForm.Get("amount"),
		BusinessType: r.PostForm.Get("businessType"),
		Location:     r.PostForm.Get("location"),
		AssignedTeam: r.PostForm.Get("assignedTeam"),
		Package:      r.PostForm.Get("package"),
	}

	view := NewView(h.api, h.logger)
	view.OpenModal()

	if err := view.Submit(r.Context(), form); err != nil {
		// Modal stays open with the entered values
		_ = view.Fetch(r.Context())
		h.render(w, http.StatusOK, view)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete handles the per-card delete button.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	view := NewView(h.api, h.logger)
	_ = view.Delete(r.Context(), chi.URLParam(r, "id"))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, status int, view *View) {
	sponsors := view.Sponsors()
	cards := make([]card, 0, len(sponsors))
	for _, s := range sponsors {
		cards = append(cards, card{
			ID:           s.ID,
			Name:         s.Name,
			BusinessType: s.BusinessType,
			Location:     s.Location,
			AssignedTeam: s.AssignedTeam,
			Package:      s.Package,
			Amount:       h.formatter.Format(float64(s.Amount)),
		})
	}

	data := page{
		Title:     h.title,
		Total:     h.formatter.Format(view.Total()),
		Cards:     cards,
		ModalOpen: view.ModalOpen(),
		Alert:     view.Alert(),
		Form:      view.Form(),
		Teams:     domain.Teams,
		Packages:  domain.Packages,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.logger.Error("Failed to render dashboard", "error", err)
	}
}
