package content

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/lixenwraith/pixel-angler/constant"
)

// GeminiService generates catches with the Gemini API
type GeminiService struct {
	client *genai.Client
	model  string
}

// NewGeminiService returns ErrNoService when apiKey is empty
func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, ErrNoService
	}
	if model == "" {
		model = constant.DefaultContentModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiService{client: client, model: model}, nil
}

// Name implements Service
func (s *GeminiService) Name() string {
	return "gemini"
}

// Generate implements Service
func (s *GeminiService) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(Prompt(req)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiSchema(req),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// geminiSchema restricts the rarity enum to the drawn tier so the model cannot pick another
func geminiSchema(req Request) *genai.Schema {
	minPrice := float64(req.Tier.MinPrice)
	maxPrice := float64(req.Tier.MaxPrice)

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString, Description: "Creative name of the fish"},
			"rarity":      {Type: genai.TypeString, Enum: []string{req.Tier.Rarity.String()}},
			"weight":      {Type: genai.TypeNumber, Description: "Weight in lbs, appropriate for rarity"},
			"description": {Type: genai.TypeString, Description: "Short, witty, 16-bit RPG style description"},
			"color":       {Type: genai.TypeString, Description: "Hex color code for the fish body, vibrant 16-bit palette"},
			"price":       {Type: genai.TypeInteger, Description: "Gold value inside the requested range", Minimum: &minPrice, Maximum: &maxPrice},
		},
		Required: []string{"name", "rarity", "weight", "description", "color", "price"},
	}
}
