package template

import (
	"fmt"

	"github.com/aymerick/raymond"
)

// DefaultEngineName is the engine used when content declares no engineType.
const DefaultEngineName = "handlebars"

// HandlebarsEngine renders double-brace templates through the raymond
// handlebars implementation.
type HandlebarsEngine struct {
	name string
}

// NewHandlebarsEngine creates the default handlebars engine.
func NewHandlebarsEngine() *HandlebarsEngine {
	return &HandlebarsEngine{name: DefaultEngineName}
}

// NewHbsEngine creates the "hbs" alias engine. Same implementation as
// handlebars; templates migrated from systems using the short name keep
// working without content changes.
func NewHbsEngine() *HandlebarsEngine {
	return &HandlebarsEngine{name: "hbs"}
}

func (e *HandlebarsEngine) Name() string {
	return e.name
}

func (e *HandlebarsEngine) Compile(source string) (RenderFunc, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}

	return func(data map[string]any) (string, error) {
		out, err := tpl.Exec(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}
		return out, nil
	}, nil
}
