// Package client talks to a character sheet server over its HTTP API and
// provides a debounced autosave loop for editors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmelim/local-character-sheets/internal/domain"
	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/domain/services"
	"github.com/dmelim/local-character-sheets/internal/rules"
)

// Client is a thin wrapper around the character sheet HTTP API. Server
// errors come back as the matching domain error, so callers can use
// errors.Is against domain.ErrNotFound, domain.ErrVersionConflict and
// domain.ErrValidation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: 10 * time.Second})
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type listResponse struct {
	Items []models.CharacterSummary `json:"items"`
}

type createResponse struct {
	ID string `json:"id"`
}

// List returns summaries of all characters, newest first.
func (c *Client) List(ctx context.Context) ([]models.CharacterSummary, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/api/characters", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Create makes a new character and returns its id.
func (c *Client) Create(ctx context.Context, name string) (string, error) {
	var resp createResponse
	req := services.CreateCharacterRequest{Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/characters", &req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Get fetches the full character document.
func (c *Client) Get(ctx context.Context, id string) (*models.Character, error) {
	var ch models.Character
	if err := c.do(ctx, http.MethodGet, "/api/characters/"+id, nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Rename changes a character's name under optimistic concurrency.
func (c *Client) Rename(ctx context.Context, id, name string, expectedVersion int) (*models.CharacterSummary, error) {
	req := services.RenameCharacterRequest{Name: name, ExpectedVersion: expectedVersion}
	var summary models.CharacterSummary
	if err := c.do(ctx, http.MethodPatch, "/api/characters/"+id, &req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Update applies a batched field update.
func (c *Client) Update(ctx context.Context, id string, req *services.BatchedUpdateRequest) (*models.UpdateResult, error) {
	var result models.UpdateResult
	if err := c.do(ctx, http.MethodPatch, "/api/characters/"+id+"/update", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a character. Deleting an absent character succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/characters/"+id, nil, nil)
}

// LongRest fetches the character, computes the long-rest recovery updates
// and submits them as one batch against the fetched version.
func (c *Client) LongRest(ctx context.Context, id string) (*models.UpdateResult, error) {
	ch, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := rules.LongRestUpdates(ch.Data)
	if len(updates) == 0 {
		return &models.UpdateResult{Version: ch.Version, UpdatedAt: ch.UpdatedAt}, nil
	}

	return c.Update(ctx, id, &services.BatchedUpdateRequest{
		ExpectedVersion: ch.Version,
		Updates:         updates,
	})
}

// problemResponse is the RFC 7807 body the server sends on errors.
type problemResponse struct {
	Status         int    `json:"status"`
	Detail         string `json:"detail"`
	CurrentVersion int    `json:"currentVersion"`
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError maps an error response back onto the domain error taxonomy.
func decodeError(resp *http.Response) error {
	var problem problemResponse
	detail := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil && problem.Detail != "" {
		detail = problem.Detail
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &domain.NotFoundError{Message: detail}
	case http.StatusConflict:
		return &domain.VersionConflictError{Current: problem.CurrentVersion}
	case http.StatusBadRequest:
		return &domain.ValidationError{Message: detail}
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, detail)
	}
}
