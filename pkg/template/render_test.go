package template_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifykit/pkg/template"
)

func seedTemplate(t *testing.T, svc *template.Service) *template.Template {
	t.Helper()

	created, err := svc.Create(context.Background(), template.Template{
		Name:      "Welcome",
		Type:      "system",
		Variables: []string{"name", "company"},
		Channels: map[string]template.Fields{
			"inApp": {
				"title":   "Welcome, {{name}}",
				"content": "You joined {{company}}.",
			},
			"email": {
				"subject": "Welcome to {{company}}",
				"body":    "<p>Hello {{name}}</p>",
				"isHtml":  true,
			},
		},
		Translations: map[string]map[string]template.Fields{
			"es": {
				"inApp": {
					"title": "Bienvenido, {{name}}",
				},
			},
		},
		Active: true,
	})
	require.NoError(t, err)
	return created
}

func TestService_Render(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("renders all channels with data", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana", "company": "Acme"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Welcome, Ana", rendered["inApp"]["title"])
		assert.Equal(t, "You joined Acme.", rendered["inApp"]["content"])
		assert.Equal(t, "Welcome to Acme", rendered["email"]["subject"])
		assert.Equal(t, "<p>Hello Ana</p>", rendered["email"]["body"])
		assert.Equal(t, true, rendered["email"]["isHtml"], "non-string fields pass through")
	})

	t.Run("requested channels narrow the output", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana", "company": "Acme"},
			Channels:   []string{"email"},
		})
		require.NoError(t, err)

		assert.Contains(t, rendered, "email")
		assert.NotContains(t, rendered, "inApp")
	})

	t.Run("translation overlays field by field", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana", "company": "Acme"},
			Locale:     "es",
		})
		require.NoError(t, err)

		assert.Equal(t, "Bienvenido, Ana", rendered["inApp"]["title"])
		// Untranslated field falls back to base content.
		assert.Equal(t, "You joined Acme.", rendered["inApp"]["content"])
		// Channel without a translation renders base content.
		assert.Equal(t, "Welcome to Acme", rendered["email"]["subject"])
	})

	t.Run("regional locale matches base language translation", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana", "company": "Acme"},
			Locale:     "es-MX",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bienvenido, Ana", rendered["inApp"]["title"])
	})

	t.Run("unknown locale falls back to base content", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana", "company": "Acme"},
			Locale:     "ja",
		})
		require.NoError(t, err)
		assert.Equal(t, "Welcome, Ana", rendered["inApp"]["title"])
	})

	t.Run("missing data leaves placeholder empty", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		tpl := seedTemplate(t, svc)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: tpl.ID,
			Data:       map[string]any{"name": "Ana"},
		})
		require.NoError(t, err)
		assert.Equal(t, "You joined .", rendered["inApp"]["content"])
	})

	t.Run("unknown template fails", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())
		_, err := svc.Render(ctx, template.RenderRequest{TemplateID: "missing"})
		assert.ErrorIs(t, err, template.ErrTemplateNotFound)
	})

	t.Run("unregistered engine fails the whole render", func(t *testing.T) {
		t.Parallel()

		storage := template.NewMemoryStorage()
		svc := template.NewService(storage)

		created, err := svc.Create(ctx, template.Template{
			Name:      "Broken",
			Type:      "system",
			Variables: []string{"name"},
			Channels: map[string]template.Fields{
				"inApp": {
					"title":                  "Hi {{name}}",
					template.EngineTypeField: "liquid",
				},
			},
			Active: true,
		})
		require.NoError(t, err)

		_, err = svc.Render(ctx, template.RenderRequest{
			TemplateID: created.ID,
			Data:       map[string]any{"name": "Ana"},
		})
		assert.ErrorIs(t, err, template.ErrEngineNotFound)
	})

	t.Run("engineType never appears in output", func(t *testing.T) {
		t.Parallel()

		svc := template.NewService(template.NewMemoryStorage())

		created, err := svc.Create(ctx, template.Template{
			Name:      "Explicit engine",
			Type:      "system",
			Variables: []string{"name"},
			Channels: map[string]template.Fields{
				"inApp": {
					"title":                  "Hi {{name}}",
					template.EngineTypeField: "hbs",
				},
			},
			Active: true,
		})
		require.NoError(t, err)

		rendered, err := svc.Render(ctx, template.RenderRequest{
			TemplateID: created.ID,
			Data:       map[string]any{"name": "Ana"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Hi Ana", rendered["inApp"]["title"])
		assert.NotContains(t, rendered["inApp"], template.EngineTypeField)
	})
}

func TestService_CreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := template.NewService(template.NewMemoryStorage())

	_, err := svc.Create(ctx, template.Template{
		Name:      "Bad",
		Type:      "system",
		Variables: []string{"name"},
		Channels: map[string]template.Fields{
			"inApp": {"title": "Hi {{nickname}}"},
		},
		Active: true,
	})

	require.Error(t, err)
	assert.True(t, template.IsUndeclaredVariableError(err))
	assert.Contains(t, err.Error(), "nickname")
}

func TestService_UpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := template.NewService(template.NewMemoryStorage())
	tpl := seedTemplate(t, svc)

	// Warm the compile cache.
	_, err := svc.Render(ctx, template.RenderRequest{
		TemplateID: tpl.ID,
		Data:       map[string]any{"name": "Ana", "company": "Acme"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, tpl.ID, template.Update{
		Channels: map[string]template.Fields{
			"inApp": {"title": "Hey {{name}}!"},
		},
	})
	require.NoError(t, err)

	rendered, err := svc.Render(ctx, template.RenderRequest{
		TemplateID: tpl.ID,
		Data:       map[string]any{"name": "Ana"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hey Ana!", rendered["inApp"]["title"])
}

func TestService_UpdateValidatesMergedTemplate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := template.NewService(template.NewMemoryStorage())
	tpl := seedTemplate(t, svc)

	// Shrinking the variable set below what the content references must fail.
	_, err := svc.Update(ctx, tpl.ID, template.Update{
		Variables: []string{"name"},
	})
	assert.True(t, template.IsUndeclaredVariableError(err))
}
