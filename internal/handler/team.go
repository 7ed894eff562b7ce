package handler

import (
	"net/http"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// ReferenceData справочники для формы добавления спонсора
type ReferenceData struct {
	Teams    []string `json:"teams"`
	Packages []string `json:"packages"`
}

// GetTeams обрабатывает GET /teams
func GetTeams(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, Response{
		Success: true,
		Data: ReferenceData{
			Teams:    domain.Teams,
			Packages: domain.Packages,
		},
	})
}
