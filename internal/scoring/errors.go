package scoring

import (
	"errors"
	"fmt"
)

// ErrUnknownInstrument is returned when a registry lookup fails.
var ErrUnknownInstrument = errors.New("unknown instrument")

// InvalidResponseError reports a missing or unparseable answer on the strict
// scoring path. Callers must reject the submission rather than substitute a
// value.
type InvalidResponseError struct {
	Instrument string
	QuestionID string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid %s responses: no usable answer for %s", e.Instrument, e.QuestionID)
}

// TemplateError reports a malformed instrument definition caught at load
// time (a domain referencing a missing item, inverted bounds, ...).
type TemplateError struct {
	TemplateID string
	Reason     string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %s", e.TemplateID, e.Reason)
}
