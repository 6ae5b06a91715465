package model

// MatchFactor is one named sub-score of the match computation.
// Matched is true only when the factor carried weight (the buyer specified
// it) and the score cleared 50; a neutral unspecified factor never matches.
type MatchFactor struct {
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Weight  float64 `json:"weight"`
	Reason  string  `json:"reason"`
	Matched bool    `json:"matched"`
}

// MatchExplanation is the agent-facing breakdown of one property's score.
type MatchExplanation struct {
	Summary string        `json:"summary"`
	Factors []MatchFactor `json:"factors"`
}

// MatchResult is the output of the match scorer for one property.
type MatchResult struct {
	Score       float64          `json:"score"`
	Explanation MatchExplanation `json:"explanation"`
}

// ScoredResult is one ranked search hit. It is recomputed per search and
// never persisted as a source of truth.
type ScoredResult struct {
	Property        PropertyRecord   `json:"property"`
	MatchScore      float64          `json:"match_score"`
	TransactScore   int              `json:"transact_score"`
	TransactLevel   string           `json:"transact_level"`
	TransactSignals []string         `json:"transact_signals,omitempty"`
	Explanation     MatchExplanation `json:"explanation"`
}

// SearchRequest represents a search query request. Query is parsed by the
// NLU service; Intent, when present, overrides the parsed fields.
type SearchRequest struct {
	Query  string        `json:"query"`
	Intent *ParsedIntent `json:"intent,omitempty"`
	Page   int           `json:"page"`
}

// SearchPage is one page of ranked results with the pre-pagination total.
type SearchPage struct {
	Results  []ScoredResult `json:"results"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// SearchResponse represents a search result response
type SearchResponse struct {
	SearchID string        `json:"search_id"`
	SearchPage
	Intent *IntentResult `json:"intent,omitempty"`
	Took   int64         `json:"took_ms"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single embedding with property info
type EmbeddingItem struct {
	PropertyID string    `json:"property_id" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
	Text       string    `json:"text,omitempty"` // The text used to generate embedding
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// FeedbackRequest represents user feedback/action on a result
type FeedbackRequest struct {
	SearchID   string `json:"search_id" binding:"required"`
	PropertyID string `json:"property_id" binding:"required"`
	Action     string `json:"action" binding:"required"` // click, save, contact_agent, view_details
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
