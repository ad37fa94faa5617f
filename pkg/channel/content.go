package channel

// ContentKind discriminates the typed content variants.
type ContentKind string

const (
	KindInApp   ContentKind = "inApp"
	KindEmail   ContentKind = "email"
	KindGeneric ContentKind = "generic"
)

// InAppContent is the rendered content for the in-app channel.
type InAppContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// EmailContent is the rendered content for the email channel.
type EmailContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    bool   `json:"html"`
}

// Content is a tagged union over the known channel content kinds. Exactly one
// of the typed variants is set for known kinds; Extra preserves any rendered
// fields the typed variants do not model, and is the sole carrier for
// KindGeneric channels.
type Content struct {
	Kind  ContentKind    `json:"kind"`
	InApp *InAppContent  `json:"in_app,omitempty"`
	Email *EmailContent  `json:"email,omitempty"`
	Extra map[string]any `json:"extra,omitempty"`
}

// ContentFromFields interprets a rendered field set for the named channel.
// Well-known fields move into the typed variant; everything else lands in
// Extra. Unknown channel names produce KindGeneric content.
func ContentFromFields(channelName string, fields map[string]any) Content {
	switch channelName {
	case "inApp":
		c := Content{Kind: KindInApp, InApp: &InAppContent{}}
		for name, value := range fields {
			switch name {
			case "title":
				c.InApp.Title, _ = value.(string)
			case "content", "body":
				c.InApp.Body, _ = value.(string)
			default:
				c.addExtra(name, value)
			}
		}
		return c
	case "email":
		c := Content{Kind: KindEmail, Email: &EmailContent{}}
		for name, value := range fields {
			switch name {
			case "subject":
				c.Email.Subject, _ = value.(string)
			case "body", "content":
				c.Email.Body, _ = value.(string)
			case "isHtml":
				c.Email.HTML, _ = value.(bool)
			default:
				c.addExtra(name, value)
			}
		}
		return c
	default:
		c := Content{Kind: KindGeneric}
		for name, value := range fields {
			c.addExtra(name, value)
		}
		return c
	}
}

func (c *Content) addExtra(name string, value any) {
	if c.Extra == nil {
		c.Extra = make(map[string]any)
	}
	c.Extra[name] = value
}
