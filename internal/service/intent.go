package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"homematch/internal/model"
)

// IntentParser turns a buyer's natural language query into a structured
// ParsedIntent using the AI client. When the AI is unavailable the parser
// degrades to an empty intent so the search path stays up.
type IntentParser struct {
	aiClient AIClient
}

// NewIntentParser creates a new intent parser
func NewIntentParser(aiClient AIClient) *IntentParser {
	return &IntentParser{
		aiClient: aiClient,
	}
}

func emptyIntentResult(keywords ...string) *model.IntentResult {
	return &model.IntentResult{
		Intent:     &model.ParsedIntent{},
		Keywords:   keywords,
		Confidence: 0.0,
	}
}

// Parse extracts a structured buyer intent from a natural language query
func (p *IntentParser) Parse(ctx context.Context, query string) *model.IntentResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyIntentResult()
	}

	if p.aiClient == nil || !p.aiClient.IsEnabled() {
		log.Printf("AI intent parsing is not enabled, falling back to empty intent. Set OPENAI_API_KEY to enable.")
		return emptyIntentResult(query)
	}

	result, err := p.parseWithAI(ctx, query)
	if err != nil {
		log.Printf("AI parsing failed: %v, falling back to empty intent", err)
		return emptyIntentResult(query)
	}

	return result
}

func (p *IntentParser) parseWithAI(ctx context.Context, query string) (*model.IntentResult, error) {
	aiResult, err := p.aiClient.ParseIntentWithAI(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("AI parsing error: %w", err)
	}
	return p.buildResult(query, aiResult), nil
}

// ParseStream extracts a structured intent with streaming progress updates
func (p *IntentParser) ParseStream(ctx context.Context, query string, callback func(thinking, content string) error) (*model.IntentResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyIntentResult(), nil
	}

	if p.aiClient == nil || !p.aiClient.IsEnabled() {
		log.Printf("AI intent parsing is not enabled, falling back to empty intent. Set OPENAI_API_KEY to enable.")
		return emptyIntentResult(query), nil
	}

	aiResult, err := p.aiClient.ParseIntentWithAIStream(ctx, query, callback)
	if err != nil {
		log.Printf("AI streaming parsing failed: %v, falling back to empty intent", err)
		return emptyIntentResult(query), nil
	}

	return p.buildResult(query, aiResult), nil
}

// buildResult maps the validated AI response onto the domain intent.
func (p *IntentParser) buildResult(query string, aiResult *AIIntentResponse) *model.IntentResult {
	intent := &model.ParsedIntent{
		Styles:        aiResult.Styles,
		Features:      aiResult.Features,
		BudgetMin:     aiResult.BudgetMin,
		BudgetMax:     aiResult.BudgetMax,
		BedsMin:       aiResult.BedsMin,
		BedsMax:       aiResult.BedsMax,
		BathsMin:      aiResult.BathsMin,
		BathsMax:      aiResult.BathsMax,
		SqftMin:       aiResult.SqftMin,
		SqftMax:       aiResult.SqftMax,
		LifestyleTags: aiResult.LifestyleTags,
		Summary:       aiResult.Summary,
	}

	for _, loc := range aiResult.Locations {
		intent.Locations = append(intent.Locations, model.TargetLocation{
			Name:        loc.Name,
			Latitude:    loc.Latitude,
			Longitude:   loc.Longitude,
			RadiusMiles: loc.RadiusMiles,
		})
	}

	for _, pt := range aiResult.PropertyTypes {
		if t, ok := normalizePropertyType(pt); ok {
			intent.PropertyTypes = append(intent.PropertyTypes, t)
		} else {
			log.Printf("Dropping unrecognized property type from AI response: %q", pt)
		}
	}

	confidence := aiResult.Confidence
	if confidence <= 0 {
		confidence = 0.9 // the response survived validation
	}

	// Always include the original query for semantic search
	keywords := append([]string{}, aiResult.Keywords...)
	keywords = append(keywords, query)

	return &model.IntentResult{
		Intent:     intent,
		Keywords:   keywords,
		Confidence: confidence,
	}
}

func normalizePropertyType(s string) (model.PropertyType, bool) {
	switch model.PropertyType(strings.ToLower(strings.TrimSpace(s))) {
	case model.PropertyTypeSingleFamily:
		return model.PropertyTypeSingleFamily, true
	case model.PropertyTypeCondo:
		return model.PropertyTypeCondo, true
	case model.PropertyTypeTownhouse:
		return model.PropertyTypeTownhouse, true
	case model.PropertyTypeMultiFamily:
		return model.PropertyTypeMultiFamily, true
	case model.PropertyTypeLand:
		return model.PropertyTypeLand, true
	case model.PropertyTypeOther:
		return model.PropertyTypeOther, true
	}
	return "", false
}
