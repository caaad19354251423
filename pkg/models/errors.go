package models

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrModelUnavailable = errors.New("context model unavailable")
	ErrModelBusy        = errors.New("context model busy")
)

// ModelError is returned when the NLP server answers with a non-success status.
type ModelError struct {
	StatusCode int
	Message    string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("nlp server returned status %d: %s", e.StatusCode, e.Message)
}

func (e *ModelError) Unwrap() error {
	return ErrModelUnavailable
}

func NewModelError(statusCode int, message string) error {
	return &ModelError{StatusCode: statusCode, Message: message}
}
