package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/invopop/jsonschema"
)

// maxResponseBytes caps a catch document read from a self-hosted endpoint
const maxResponseBytes = 64 << 10

// httpRequest is the wire body posted to a self-hosted generator
type httpRequest struct {
	Rarity   string             `json:"rarity"`
	MinPrice int                `json:"minPrice"`
	MaxPrice int                `json:"maxPrice"`
	Prompt   string             `json:"prompt"`
	Schema   *jsonschema.Schema `json:"schema"`
}

// HTTPService posts generation requests to a self-hosted endpoint
type HTTPService struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPService returns ErrNoService when endpoint is empty
func NewHTTPService(endpoint, token string, client *http.Client) (*HTTPService, error) {
	if endpoint == "" {
		return nil, ErrNoService
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{endpoint: endpoint, token: token, client: client}, nil
}

// Name implements Service
func (s *HTTPService) Name() string {
	return "http"
}

// Generate implements Service
func (s *HTTPService) Generate(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(httpRequest{
		Rarity:   req.Tier.Rarity.String(),
		MinPrice: req.Tier.MinPrice,
		MaxPrice: req.Tier.MaxPrice,
		Prompt:   Prompt(req),
		Schema:   ResponseSchema(req),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("content request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("content service status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyResponse
	}
	return string(data), nil
}
