package service

import (
	"context"
)

// AIClient is the interface for AI service providers
type AIClient interface {
	// ParseIntentWithAI parses a buyer's query into a structured intent (non-streaming)
	ParseIntentWithAI(ctx context.Context, query string) (*AIIntentResponse, error)

	// ParseIntentWithAIStream parses a buyer's query with streaming support
	// The callback receives (thinkingContent, regularContent) for each chunk
	ParseIntentWithAIStream(ctx context.Context, query string, callback func(thinking, content string) error) (*AIIntentResponse, error)

	// CreateEmbeddings generates embeddings for texts
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// IsEnabled returns whether the AI client is configured and ready
	IsEnabled() bool
}

// StreamChunk represents a generic streaming response chunk
type StreamChunk struct {
	// Regular content (always present in streaming)
	Content string

	// Thinking/reasoning content (provider-specific, e.g., DeepSeek)
	ThinkingContent string

	// Role (assistant, user, system)
	Role string

	// Whether this is the final chunk
	Done bool

	// Provider-specific metadata
	Metadata map[string]interface{}
}

// AITargetLocation is one geocoded place in the AI intent response.
type AITargetLocation struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	RadiusMiles float64 `json:"radius_miles,omitempty"`
}

// AIIntentResponse represents the buyer intent parsed by the AI
type AIIntentResponse struct {
	Styles        []string           `json:"styles,omitempty"`
	Features      []string           `json:"features,omitempty"`
	BudgetMin     *float64           `json:"budget_min,omitempty"`
	BudgetMax     *float64           `json:"budget_max,omitempty"`
	Locations     []AITargetLocation `json:"locations,omitempty"`
	BedsMin       *int               `json:"beds_min,omitempty"`
	BedsMax       *int               `json:"beds_max,omitempty"`
	BathsMin      *float64           `json:"baths_min,omitempty"`
	BathsMax      *float64           `json:"baths_max,omitempty"`
	SqftMin       *float64           `json:"sqft_min,omitempty"`
	SqftMax       *float64           `json:"sqft_max,omitempty"`
	PropertyTypes []string           `json:"property_types,omitempty"`
	LifestyleTags []string           `json:"lifestyle_tags,omitempty"`
	Summary       string             `json:"summary,omitempty"`
	Keywords      []string           `json:"keywords,omitempty"`
	Confidence    float64            `json:"confidence,omitempty"`
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
