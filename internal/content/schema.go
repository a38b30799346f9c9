package content

import "github.com/invopop/jsonschema"

var reflector = &jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
}

// Schemas returns the JSON Schemas of the write payloads, keyed by form name.
func Schemas() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"video-create":  reflector.Reflect(&VideoInput{}),
		"video-update":  reflector.Reflect(&VideoUpdate{}),
		"client-create": reflector.Reflect(&ClientInput{}),
		"contact":       reflector.Reflect(&ContactMessage{}),
	}
}
