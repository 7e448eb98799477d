package errs

import "strings"

// FieldError describes a single rejected input field.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// ValidationError carries the rejected fields of a request. It unwraps to
// ErrClient so it maps to 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field+" ("+f.Tag+")")
	}

	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrClient
}

// Add records a rejected field.
func (e *ValidationError) Add(field, tag string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Tag: tag})
}

// OrNil returns nil when no field was rejected.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}

	return e
}
