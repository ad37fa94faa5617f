package template

import "time"

// Fields holds the content of one channel: string fields contain double-brace
// placeholder text, non-string fields (e.g. the isHtml flag) pass through
// rendering unmodified.
type Fields map[string]any

// EngineTypeField is the reserved content field naming the template engine
// used for the channel. It is a control field and never appears in rendered
// output.
const EngineTypeField = "engineType"

// Template is a named, versioned content source rendered per channel and
// locale. Type is unique among active templates; Translations holds partial
// per-locale overrides applied field by field on top of the base channel
// content.
type Template struct {
	ID           string                       `json:"id" bson:"_id"`
	Name         string                       `json:"name" bson:"name"`
	Type         string                       `json:"type" bson:"type"`
	Channels     map[string]Fields            `json:"channels" bson:"channels"`
	Variables    []string                     `json:"variables" bson:"variables"`
	Translations map[string]map[string]Fields `json:"translations,omitempty" bson:"translations,omitempty"`
	Active       bool                         `json:"active" bson:"active"`
	CreatedAt    time.Time                    `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time                    `json:"updated_at" bson:"updatedAt"`
}

// Update is a partial template update. Nil fields leave the stored value
// untouched; Channels and Translations replace the stored maps wholesale.
type Update struct {
	Name         *string
	Type         *string
	Channels     map[string]Fields
	Variables    []string
	Translations map[string]map[string]Fields
	Active       *bool
}

// merged returns a copy of t with the update applied, used for validating
// updates against the post-update variable set.
func (u Update) merged(t Template) Template {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Channels != nil {
		t.Channels = u.Channels
	}
	if u.Variables != nil {
		t.Variables = u.Variables
	}
	if u.Translations != nil {
		t.Translations = u.Translations
	}
	if u.Active != nil {
		t.Active = *u.Active
	}
	return t
}
