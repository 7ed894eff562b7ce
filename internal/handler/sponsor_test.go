package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immerse/sponsor-tracker/internal/domain"
	"github.com/immerse/sponsor-tracker/internal/repository/memory"
	"github.com/immerse/sponsor-tracker/internal/service"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.Store, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	store := memory.New(clockwork.NewRealClock())

	sponsorHandler := NewSponsorHandler(service.NewSponsorService(store), logger)
	statsHandler := NewStatsHandler(service.NewStatsService(store), logger)

	r := chi.NewRouter()
	r.Post("/sponsors", sponsorHandler.CreateSponsor)
	r.Get("/sponsors", sponsorHandler.ListSponsors)
	r.Get("/sponsors/stats", statsHandler.GetStats)
	r.Delete("/sponsors/{id}", sponsorHandler.DeleteSponsor)
	r.Get("/teams", GetTeams)
	return r, store, logs
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

const acmeJSON = `{"name":"Acme","amount":5000,"businessType":"Retail","location":"City","assignedTeam":"Team A","package":"Gold Sponsor"}`

func TestCreateSponsor(t *testing.T) {
	h, store, _ := newTestRouter(t)

	rec := do(h, http.MethodPost, "/sponsors", acmeJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Sponsor created successfully", env.Message)

	var sponsor domain.Sponsor
	require.NoError(t, json.Unmarshal(env.Data, &sponsor))
	assert.Equal(t, "Acme", sponsor.Name)
	_, err := domain.ParseSponsorID(sponsor.ID)
	assert.NoError(t, err)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateSponsor_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed json", `{"name":`, MsgInvalidBody},
		{"empty object", `{}`, MsgFieldsRequired},
		{"empty package", strings.Replace(acmeJSON, `"Gold Sponsor"`, `""`, 1), MsgFieldsRequired},
		{"non-numeric amount", strings.Replace(acmeJSON, `5000`, `"lots"`, 1), MsgFieldsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store, _ := newTestRouter(t)

			rec := do(h, http.MethodPost, "/sponsors", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			env := decode(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)

			n, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestStoreFailureIsGeneric(t *testing.T) {
	h, store, logs := newTestRouter(t)
	store.FailWith(errors.New("dial tcp 10.0.0.7:27017: connection refused"))

	for _, rec := range []*httptest.ResponseRecorder{
		do(h, http.MethodPost, "/sponsors", acmeJSON),
		do(h, http.MethodGet, "/sponsors", ""),
		do(h, http.MethodGet, "/sponsors/stats", ""),
		do(h, http.MethodDelete, "/sponsors/"+domain.NewSponsorID().Hex(), ""),
	} {
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, MsgServerError, decode(t, rec).Message)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	}

	assert.Contains(t, logs.String(), "connection refused")
}

func TestListSponsors_NewestFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New(clock)
	sponsorHandler := NewSponsorHandler(service.NewSponsorService(store), logger)

	r := chi.NewRouter()
	r.Post("/sponsors", sponsorHandler.CreateSponsor)
	r.Get("/sponsors", sponsorHandler.ListSponsors)

	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/sponsors", strings.Replace(acmeJSON, "Acme", "Old", 1)).Code)
	clock.Advance(time.Second)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/sponsors", acmeJSON).Code)

	env := decode(t, do(r, http.MethodGet, "/sponsors", ""))
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)

	var sponsors []domain.Sponsor
	require.NoError(t, json.Unmarshal(env.Data, &sponsors))
	require.Len(t, sponsors, 2)
	assert.Equal(t, "Acme", sponsors[0].Name)
	assert.Equal(t, "Old", sponsors[1].Name)
}

func TestDeleteSponsor(t *testing.T) {
	h, store, _ := newTestRouter(t)

	created := decode(t, do(h, http.MethodPost, "/sponsors", acmeJSON))
	var sponsor domain.Sponsor
	require.NoError(t, json.Unmarshal(created.Data, &sponsor))

	t.Run("malformed id", func(t *testing.T) {
		rec := do(h, http.MethodDelete, "/sponsors/xyz", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgInvalidID, decode(t, rec).Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(h, http.MethodDelete, "/sponsors/"+domain.NewSponsorID().Hex(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgNotFound, decode(t, rec).Message)

		n, err := store.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("all-zero id is well-formed", func(t *testing.T) {
		rec := do(h, http.MethodDelete, "/sponsors/000000000000000000000000", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgNotFound, decode(t, rec).Message)
	})

	t.Run("existing id then again", func(t *testing.T) {
		rec := do(h, http.MethodDelete, "/sponsors/"+sponsor.ID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, "Sponsor deleted successfully", env.Message)

		assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/sponsors/"+sponsor.ID, "").Code)
		assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/sponsors/"+sponsor.ID, "").Code)
	})
}

func TestGetTeams(t *testing.T) {
	h, _, _ := newTestRouter(t)

	env := decode(t, do(h, http.MethodGet, "/teams", ""))
	var data ReferenceData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, domain.Teams, data.Teams)
	assert.Equal(t, domain.Packages, data.Packages)
}
