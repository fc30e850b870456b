package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// DefaultGeminiModel is used when ai.provider is gemini and no model is set.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider calls Gemini through the google.golang.org/genai SDK with a
// JSON response MIME type and a response schema.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini API client. The SDK does not dial on
// construction, so this only fails on invalid configuration.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiProvider{client: client, model: model}, nil
}

var geminiSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"automationRisk":     {Type: genai.TypeInteger},
		"creativityRequired": {Type: genai.TypeInteger},
		"riskFactors":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"aiTools":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"timeToAutomation":   {Type: genai.TypeString},
		"reasoning":          {Type: genai.TypeString},
	},
	Required: []string{"automationRisk", "creativityRequired", "riskFactors", "aiTools", "timeToAutomation"},
}

// Complete sends prompt to Gemini and returns the concatenated text parts.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.3),
		MaxOutputTokens:   500,
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema,
		SystemInstruction: genai.NewContentFromText(systemMessage, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, classifyGeminiError(err))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrMalformed)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", ErrMalformed)
	}
	return text, nil
}

// classifyGeminiError lifts the SDK's API error into a model.HTTPError so the
// retry decorator can judge it by status code.
func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &model.HTTPError{StatusCode: apiErr.Code, Body: truncate(apiErr.Message, 200), Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &model.HTTPError{StatusCode: apiErrPtr.Code, Body: truncate(apiErrPtr.Message, 200), Err: err}
	}
	return err
}
