package template

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"golang.org/x/text/language"

	"github.com/notifykit/notifykit/pkg/logger"
)

// RenderRequest asks for a template to be rendered against a data payload for
// a set of channels. An empty Channels slice renders every channel the
// template defines; an empty Locale renders base content.
type RenderRequest struct {
	TemplateID string
	Data       map[string]any
	Locale     string
	Channels   []string
}

// Rendered maps channel name to its rendered field set. Channels the template
// does not define, or whose content is empty, produce no entry; callers must
// treat a missing key as "nothing to send".
type Rendered map[string]Fields

// Render resolves the template and produces per-channel rendered field sets.
//
// For each requested channel the locale-merged content is computed (translation
// fields win field by field, a missing translation falls back entirely to base
// content), then every string field is compiled through the engine named by the
// engineType control field and applied to the data. Non-string fields pass
// through unmodified. A failed template lookup or an unregistered engine fails
// the whole render.
func (s *Service) Render(ctx context.Context, req RenderRequest) (Rendered, error) {
	t, err := s.storage.Get(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]struct{}, len(req.Channels))
	for _, name := range req.Channels {
		requested[name] = struct{}{}
	}

	result := make(Rendered)

	for channelName := range t.Channels {
		if len(requested) > 0 {
			if _, ok := requested[channelName]; !ok {
				continue
			}
		}

		fields := s.localizedFields(t, channelName, req.Locale)
		if len(fields) == 0 {
			continue
		}

		engineName := s.defaultEngine
		if name, ok := fields[EngineTypeField].(string); ok && name != "" {
			engineName = name
		}

		rendered := make(Fields, len(fields))
		for fieldName, value := range fields {
			if fieldName == EngineTypeField {
				continue
			}

			content, ok := value.(string)
			if !ok {
				rendered[fieldName] = value
				continue
			}

			fn, err := s.compiled(cacheKey{
				templateID: t.ID,
				channel:    channelName,
				field:      fieldName,
				locale:     req.Locale,
				engine:     engineName,
			}, content, engineName)
			if err != nil {
				return nil, err
			}

			out, err := fn(req.Data)
			if err != nil {
				return nil, fmt.Errorf("rendering %s.%s: %w", channelName, fieldName, err)
			}
			rendered[fieldName] = out
		}

		result[channelName] = rendered
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "template rendered",
		logger.TemplateID(t.ID),
		logger.Locale(req.Locale),
		slog.Int("channels", len(result)),
	)

	return result, nil
}

// compiled returns the cached render function for the key, compiling and
// caching on miss. Racing compiles of the same key are harmless; the last
// write wins and both functions render identically.
func (s *Service) compiled(key cacheKey, source, engineName string) (RenderFunc, error) {
	if fn, ok := s.cache.get(key); ok {
		return fn, nil
	}

	engine, err := s.engines.Get(engineName)
	if err != nil {
		return nil, err
	}

	fn, err := engine.Compile(source)
	if err != nil {
		return nil, err
	}

	s.cache.put(key, fn)
	return fn, nil
}

// localizedFields overlays the locale's translation onto the channel's base
// content, field by field. Locales are matched exactly first, then by
// language proximity (a "fr-CA" request picks up a "fr" translation), and
// fall back entirely to base content.
func (s *Service) localizedFields(t *Template, channelName, locale string) Fields {
	base, ok := t.Channels[channelName]
	if !ok {
		return nil
	}
	if locale == "" || len(t.Translations) == 0 {
		return base
	}

	translation := t.Translations[locale]
	if translation == nil {
		if matched := matchLocale(locale, t.Translations); matched != "" {
			translation = t.Translations[matched]
		}
	}
	if translation == nil {
		return base
	}

	override, ok := translation[channelName]
	if !ok {
		return base
	}

	merged := maps.Clone(base)
	for fieldName, value := range override {
		merged[fieldName] = value
	}
	return merged
}

// matchLocale finds the translation locale closest to the requested one using
// BCP 47 language matching. Returns "" when nothing matches confidently.
func matchLocale(locale string, translations map[string]map[string]Fields) string {
	requested, err := language.Parse(locale)
	if err != nil {
		return ""
	}

	available := make([]language.Tag, 0, len(translations))
	keys := make([]string, 0, len(translations))
	for key := range translations {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		available = append(available, tag)
		keys = append(keys, key)
	}
	if len(available) == 0 {
		return ""
	}

	matcher := language.NewMatcher(available)
	_, index, confidence := matcher.Match(requested)
	if confidence == language.No {
		return ""
	}
	return keys[index]
}
