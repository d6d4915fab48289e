package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

const wishlistSystemPrompt = `You are a recommendation system. Given the name of an event, respond with a list of necessary items in JSON format only. Do not include any explanations or text outside the JSON.

Output format:
{
  "event": "<event_name_here>",
  "items_needed": [
    "item1",
    "item2",
    "item3"
  ]
}`

// GeminiProvider implements WishlistGenerator using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(wishlistSystemPrompt))
	model.SetTemperature(1)
	model.SetMaxOutputTokens(1024)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GenerateWishlist asks the model for the items needed for eventName.
func (p *GeminiProvider) GenerateWishlist(ctx context.Context, eventName string, maxItems int) ([]string, error) {
	log.Ctx(ctx).Info().Str("event_name", eventName).Msg("generating wishlist")

	resp, err := p.model.GenerateContent(ctx, genai.Text(eventName))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: %v", ErrGeneration, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: gemini returned no candidates", ErrGeneration)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	items, err := parseWishlist(text.String(), maxItems)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Int("item_count", len(items)).Msg("wishlist generated")
	return items, nil
}

// parseWishlist decodes the model answer, drops blank entries and truncates to maxItems.
func parseWishlist(raw string, maxItems int) ([]string, error) {
	clean := cleanJSONString(raw)

	var body wishlistResponse
	if err := json.Unmarshal([]byte(clean), &body); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON from model: %v", ErrGeneration, err)
	}

	items := make([]string, 0, len(body.ItemsNeeded))
	for _, item := range body.ItemsNeeded {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
		if maxItems > 0 && len(items) == maxItems {
			break
		}
	}
	return items, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
