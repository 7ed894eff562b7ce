package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/service"
)

// SponsorHandler обрабатывает эндпоинты спонсоров
type SponsorHandler struct {
	sponsorService *service.SponsorService
	logger         *slog.Logger
}

// NewSponsorHandler создает новый SponsorHandler
func NewSponsorHandler(sponsorService *service.SponsorService, logger *slog.Logger) *SponsorHandler {
	return &SponsorHandler{
		sponsorService: sponsorService,
		logger:         logger,
	}
}

// CreateSponsor обрабатывает POST /sponsors
func (h *SponsorHandler) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req domain.SponsorInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	sponsor, err := h.sponsorService.CreateSponsor(r.Context(), req)
	if err != nil {
		HandleError(w, r, h.logger, "create_sponsor", err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, Response{
		Success: true,
		Message: "Sponsor created successfully",
		Data:    sponsor,
	})
}

// ListSponsors обрабатывает GET /sponsors
func (h *SponsorHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := h.sponsorService.ListSponsors(r.Context())
	if err != nil {
		HandleError(w, r, h.logger, "list_sponsors", err)
		return
	}

	// Пустой список отдаем как [], а не null
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	count := len(sponsors)

	RespondWithJSON(w, r, http.StatusOK, Response{
		Success: true,
		Count:   &count,
		Data:    sponsors,
	})
}

// DeleteSponsor обрабатывает DELETE /sponsors/{id}
func (h *SponsorHandler) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.sponsorService.DeleteSponsor(r.Context(), id); err != nil {
		HandleError(w, r, h.logger, "delete_sponsor", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: "Sponsor deleted successfully",
	})
}
