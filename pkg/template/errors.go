package template

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned when a template lookup fails.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateExists is returned when creating a template with an ID already in use.
	ErrTemplateExists = errors.New("template already exists")

	// ErrEngineNotFound is returned when content names an unregistered engine.
	ErrEngineNotFound = errors.New("template engine not found")

	// ErrCompileFailed is returned when a template string fails to parse.
	ErrCompileFailed = errors.New("failed to compile template")

	// ErrRenderFailed is returned when a compiled template fails against a data payload.
	ErrRenderFailed = errors.New("failed to render template")
)

// UndeclaredVariableError indicates content references a placeholder missing
// from the template's declared variable set.
type UndeclaredVariableError struct {
	Variable string
	Channel  string
	Field    string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable %q in %s.%s", e.Variable, e.Channel, e.Field)
}

// IsUndeclaredVariableError reports whether err is an UndeclaredVariableError.
func IsUndeclaredVariableError(err error) bool {
	var e *UndeclaredVariableError
	return errors.As(err, &e)
}
