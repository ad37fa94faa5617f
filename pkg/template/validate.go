package template

import (
	"regexp"
	"strings"
)

// placeholderRegex matches double-brace placeholders in content fields.
var placeholderRegex = regexp.MustCompile(`{{([^{}]+)}}`)

// validateVariables checks that every placeholder referenced in any channel's
// content (base and translations) is declared in the template's variable set.
// Helper and block expressions are ignored. Enforced at create/update time,
// never at render time.
func validateVariables(t Template) error {
	declared := make(map[string]struct{}, len(t.Variables))
	for _, v := range t.Variables {
		declared[v] = struct{}{}
	}

	for channelName, fields := range t.Channels {
		if err := validateFields(declared, channelName, fields); err != nil {
			return err
		}
	}
	for _, channels := range t.Translations {
		for channelName, fields := range channels {
			if err := validateFields(declared, channelName, fields); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateFields(declared map[string]struct{}, channelName string, fields Fields) error {
	for fieldName, value := range fields {
		content, ok := value.(string)
		if !ok {
			continue
		}
		for _, match := range placeholderRegex.FindAllStringSubmatch(content, -1) {
			variable := strings.TrimSpace(match[1])
			if !isVariableReference(variable) {
				continue
			}
			if _, ok := declared[variable]; !ok {
				return &UndeclaredVariableError{
					Variable: variable,
					Channel:  channelName,
					Field:    fieldName,
				}
			}
		}
	}
	return nil
}

// isVariableReference reports whether a placeholder expression is a plain
// variable reference. Helper calls (contain spaces) and block markers are
// left to the engine.
func isVariableReference(expr string) bool {
	if expr == "" || strings.Contains(expr, " ") {
		return false
	}
	switch expr[0] {
	case '#', '/', '!', '>', '^':
		return false
	}
	return true
}
