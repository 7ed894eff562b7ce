package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Pre-submission guards. Each one blocks the create call and is shown to
// the user as an alert.
var (
	ErrTeamRequired    = errors.New("assigned team is required")
	ErrPackageRequired = errors.New("package is required")
)

var alertMessages = map[error]string{
	ErrTeamRequired:    "Please select a team",
	ErrPackageRequired: "Please select a package",
}

func checkForm(form SponsorForm) error {
	switch {
	case form.AssignedTeam == "":
		return ErrTeamRequired
	case form.Package == "":
		return ErrPackageRequired
	}
	return nil
}

// API is the part of the sponsor REST API the view drives.
type API interface {
	ListSponsors(ctx context.Context) ([]Sponsor, error)
	CreateSponsor(ctx context.Context, form SponsorForm) (*Sponsor, error)
	DeleteSponsor(ctx context.Context, id string) error
}

// View holds the state of one dashboard instance: the last fetched list,
// the loading flag and whether the "Add Sponsor" modal is open.
//
// Loading goes Idle -> Loading -> Idle around every API call. The list only
// changes after a successful fetch.
type View struct {
	api    API
	logger *slog.Logger

	mu        sync.RWMutex
	loading   bool
	modalOpen bool
	alert     string
	form      SponsorForm
	sponsors  []Sponsor
}

// NewView creates a view in the Idle / ModalClosed state with an empty list.
func NewView(api API, logger *slog.Logger) *View {
	return &View{api: api, logger: logger}
}

// Loading reports whether an API call is in flight.
func (v *View) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

// ModalOpen reports whether the create modal is shown.
func (v *View) ModalOpen() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.modalOpen
}

// Alert returns the message of the last failed guard, if any.
func (v *View) Alert() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.alert
}

// Form returns the values currently held by the modal form.
func (v *View) Form() SponsorForm {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.form
}

// Sponsors returns a copy of the last fetched list.
func (v *View) Sponsors() []Sponsor {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Sponsor, len(v.sponsors))
	copy(out, v.sponsors)
	return out
}

// Total is recomputed from the current list on every call.
func (v *View) Total() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return TotalAmount(v.sponsors)
}

// OpenModal shows the create form.
func (v *View) OpenModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modalOpen = true
}

// CloseModal hides the create form and clears any alert.
func (v *View) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modalOpen = false
	v.alert = ""
}

func (v *View) setLoading(loading bool) {
	v.mu.Lock()
	v.loading = loading
	v.mu.Unlock()
}

// Fetch reloads the sponsor list. On failure the previous list is kept.
func (v *View) Fetch(ctx context.Context) error {
	v.setLoading(true)
	defer v.setLoading(false)

	return v.fetch(ctx)
}

func (v *View) fetch(ctx context.Context) error {
	sponsors, err := v.api.ListSponsors(ctx)
	if err != nil {
		v.logger.Error("Error fetching sponsors", "error", err)
		return err
	}

	v.mu.Lock()
	v.sponsors = sponsors
	v.mu.Unlock()
	return nil
}

// Submit runs the guards, creates the sponsor, re-fetches and closes the
// modal. A failing guard sets the alert and makes no API call.
func (v *View) Submit(ctx context.Context, form SponsorForm) error {
	guardErr := checkForm(form)

	v.mu.Lock()
	v.form = form
	v.alert = alertMessages[guardErr]
	v.mu.Unlock()

	if guardErr != nil {
		return guardErr
	}

	v.setLoading(true)
	defer v.setLoading(false)

	if _, err := v.api.CreateSponsor(ctx, form); err != nil {
		v.logger.Error("Error creating sponsor", "error", err)
		return err
	}

	if err := v.fetch(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	v.form = SponsorForm{}
	v.modalOpen = false
	v.mu.Unlock()
	return nil
}

// Delete removes a sponsor through the API and re-fetches the list.
func (v *View) Delete(ctx context.Context, id string) error {
	v.setLoading(true)
	defer v.setLoading(false)

	if err := v.api.DeleteSponsor(ctx, id); err != nil {
		v.logger.Error("Error deleting sponsor", "id", id, "error", err)
		return err
	}
	return v.fetch(ctx)
}
