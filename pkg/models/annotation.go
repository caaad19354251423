package models

const (
	SubjectPatient = "patient"
	SubjectFamily  = "family"
)

// Span is a half-open character interval [FirstPos, LastPos) into a report.
type Span struct {
	FirstPos int `json:"first_pos"`
	LastPos  int `json:"last_pos"`
}

// Annotation is an entity mention produced by the upstream clinical pipeline, together with
// its context flags. Subject is ignored on input and always set on output.
type Annotation struct {
	Span
	IsNegated     bool   `json:"is_negated"`
	IsUncertain   bool   `json:"is_uncertain"`
	IsConditional bool   `json:"is_conditional"`
	IsHistoric    bool   `json:"is_historic"`
	Subject       string `json:"subject"`
}

// ProcessRequest is a validated request. Build one with DecodeProcessRequest.
type ProcessRequest struct {
	Accnum      string       `json:"accnum"`
	Report      string       `json:"report"`
	Annotations []Annotation `json:"annotations"`
}

type ProcessResponse struct {
	Annotations []Annotation `json:"annotations"`
}
