package api

import (
	"fmt"
	"net/http"
)

// ValidationError is the 422 body: a list of per-parameter problems.
type ValidationError struct {
	Detail []ValidationDetail `json:"detail"`
}

// ValidationDetail describes one rejected parameter.
type ValidationDetail struct {
	Loc  []string          `json:"loc"`
	Msg  string            `json:"msg"`
	Type string            `json:"type"`
	Ctx  map[string]string `json:"ctx,omitempty"`
}

// Validation error types.
const (
	ValueErrorMissing  = "value_error.missing"
	ValueErrorStrRegex = "value_error.str.regex"
)

func missingQueryParam(name string) ValidationDetail {
	return ValidationDetail{
		Loc:  []string{"query", name},
		Msg:  ErrMissingParameter.Error(),
		Type: ValueErrorMissing,
	}
}

func patternMismatch(name, pattern string) ValidationDetail {
	return ValidationDetail{
		Loc:  []string{"query", name},
		Msg:  fmt.Sprintf("string does not match regex %q", pattern),
		Type: ValueErrorStrRegex,
		Ctx:  map[string]string{"pattern": pattern},
	}
}

func writeValidationError(w http.ResponseWriter, details ...ValidationDetail) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationError{Detail: details})
}
