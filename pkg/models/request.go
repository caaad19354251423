package models

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProcessRequestBody is the wire form of a ProcessRequest. Fields are pointers so that an absent
// or null value fails the required check instead of decoding to its zero value.
type ProcessRequestBody struct {
	Accnum      *string          `json:"accnum"      validate:"required"`
	Report      *string          `json:"report"      validate:"required"`
	Annotations []AnnotationBody `json:"annotations" validate:"required,dive"`
}

// AnnotationBody is the wire form of an input Annotation.
type AnnotationBody struct {
	FirstPos      *int    `json:"first_pos"      validate:"required,min=0"`
	LastPos       *int    `json:"last_pos"       validate:"required,gtefield=FirstPos"`
	IsNegated     *bool   `json:"is_negated"     validate:"required"`
	IsUncertain   *bool   `json:"is_uncertain"   validate:"required"`
	IsConditional *bool   `json:"is_conditional" validate:"required"`
	IsHistoric    *bool   `json:"is_historic"    validate:"required"`
	Subject       *string `json:"subject"        validate:"required"`
}

// Validate reports missing, null or out-of-range fields as ErrBadRequest.
func (b *ProcessRequestBody) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return nil
}

// ProcessRequest converts a validated body. It must only be called after Validate succeeds.
func (b *ProcessRequestBody) ProcessRequest() *ProcessRequest {
	annotations := make([]Annotation, len(b.Annotations))
	for i, a := range b.Annotations {
		annotations[i] = Annotation{
			Span:          Span{FirstPos: *a.FirstPos, LastPos: *a.LastPos},
			IsNegated:     *a.IsNegated,
			IsUncertain:   *a.IsUncertain,
			IsConditional: *a.IsConditional,
			IsHistoric:    *a.IsHistoric,
			Subject:       *a.Subject,
		}
	}
	return &ProcessRequest{
		Accnum:      *b.Accnum,
		Report:      *b.Report,
		Annotations: annotations,
	}
}

// DecodeProcessRequest reads a JSON body from r and validates it. Decoding and validation
// failures wrap ErrBadRequest; the underlying read error stays reachable with errors.As.
func DecodeProcessRequest(r io.Reader) (*ProcessRequest, error) {
	var body ProcessRequestBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if err := body.Validate(); err != nil {
		return nil, err
	}
	return body.ProcessRequest(), nil
}
