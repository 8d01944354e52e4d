package ai

import "encoding/json"

// Schema describes the JSON object a handler expects back from the model.
// It is rendered into the system prompt as a structural constraint, not just
// documentation: the model is told to emit exactly this shape.
type Schema struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// Prop is a shorthand for a schema property node.
func Prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// EnumProp constrains a string property to a fixed value set.
func EnumProp(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

// ArrayProp describes an array property with the given item shape and an
// optional max item count (0 means unbounded).
func ArrayProp(description string, items map[string]any, maxItems int) map[string]any {
	p := map[string]any{"type": "array", "description": description, "items": items}
	if maxItems > 0 {
		p["maxItems"] = maxItems
	}
	return p
}

func (s Schema) renderJSON() string {
	b, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": s.Properties,
		"required":   s.Required,
	})
	if err != nil {
		return "{}"
	}
	return string(b)
}
