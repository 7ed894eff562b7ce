package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// APIError is a non-2xx answer from the sponsor API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sponsor api: %d %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the sponsor REST API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListSponsors calls GET /sponsors.
func (c *Client) ListSponsors(ctx context.Context) ([]Sponsor, error) {
	env, err := c.do(ctx, http.MethodGet, "/sponsors", nil)
	if err != nil {
		return nil, err
	}

	var sponsors []Sponsor
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &sponsors); err != nil {
			return nil, fmt.Errorf("failed to decode sponsors: %w", err)
		}
	}
	return sponsors, nil
}

// CreateSponsor calls POST /sponsors.
func (c *Client) CreateSponsor(ctx context.Context, form SponsorForm) (*Sponsor, error) {
	body, err := json.Marshal(form.Input())
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/sponsors", body)
	if err != nil {
		return nil, err
	}

	var sponsor Sponsor
	if err := json.Unmarshal(env.Data, &sponsor); err != nil {
		return nil, fmt.Errorf("failed to decode sponsor: %w", err)
	}
	return &sponsor, nil
}

// DeleteSponsor calls DELETE /sponsors/{id}.
func (c *Client) DeleteSponsor(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/sponsors/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sponsor api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "undecodable response"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

// SponsorForm is what the "Add Sponsor" modal collects.
type SponsorForm struct {
	Name         string
	Amount       string
	BusinessType string
	Location     string
	AssignedTeam string
	Package      string
}

// Input converts the form into the create request body.
func (f SponsorForm) Input() domain.SponsorInput {
	return domain.SponsorInput{
		Name:         f.Name,
		Amount:       domain.Amount(domain.ParseAmount(f.Amount)),
		BusinessType: f.BusinessType,
		Location:     f.Location,
		AssignedTeam: f.AssignedTeam,
		Package:      f.Package,
	}
}
