// Package template stores notification templates and renders them into
// per-channel content.
//
// A template declares content per channel (title/body for in-app, subject/body
// for email), a set of placeholder variables, and optional per-locale
// translations that override base fields one by one. Placeholder use is
// validated against the declared variable set at create/update time, so a
// render never hits an undeclared variable.
//
// Rendering compiles string fields through a pluggable engine registry
// (handlebars by default, selected per content via the engineType field) and
// caches compiled functions process-wide, keyed by template, channel, field,
// locale and engine. Updating or deleting a template purges its cache entries.
//
//	svc := template.NewService(template.NewMemoryStorage())
//	tpl, _ := svc.Create(ctx, template.Template{
//	    Type:      "welcome",
//	    Variables: []string{"name"},
//	    Channels: map[string]template.Fields{
//	        "inApp": {"title": "Welcome", "content": "Hello {{name}}"},
//	    },
//	    Active: true,
//	})
//	rendered, _ := svc.Render(ctx, template.RenderRequest{
//	    TemplateID: tpl.ID,
//	    Data:       map[string]any{"name": "Ana"},
//	    Channels:   []string{"inApp"},
//	})
package template
