package models

import "context"

// ContextEntity is an entity detected by the NLP model, with the attributes its
// ConText component attached. Start and End are character offsets into the report.
type ContextEntity struct {
	Start          int
	End            int
	Text           string
	Label          string
	IsNegated      bool
	IsUncertain    bool
	IsHypothetical bool
	IsHistorical   bool
	IsFamily       bool
}

// ContextModel runs the NLP model over a text and returns its entities in document order.
type ContextModel interface {
	Detect(ctx context.Context, text string) ([]ContextEntity, error)
}

// ModelInfo describes the NLP server backing a ContextModel.
type ModelInfo struct {
	Model   string `json:"model"`
	Version string `json:"version"`
}

// HealthChecker is implemented by models that can report on the server behind them.
type HealthChecker interface {
	Health(ctx context.Context) (*ModelInfo, error)
}

// ContextRequest is the body posted to the NLP server's /context endpoint.
type ContextRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// ContextEntityRecord is one entity as serialized by the NLP server.
type ContextEntityRecord struct {
	Start          int    `json:"start"`
	End            int    `json:"end"`
	Text           string `json:"text"`
	Label          string `json:"label"`
	IsNegated      bool   `json:"is_negated"`
	IsUncertain    bool   `json:"is_uncertain"`
	IsHypothetical bool   `json:"is_hypothetical"`
	IsHistorical   bool   `json:"is_historical"`
	IsFamily       bool   `json:"is_family"`
}

type ContextResponse struct {
	Model    string                `json:"model"`
	Entities []ContextEntityRecord `json:"entities"`
}
