package llm

// ToolDefinition describes one callable operation to the decision service.
// Parameters is a JSON-schema shaped object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ParameterProperty defines a parameter in JSON Schema form.
type ParameterProperty struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Items       string `json:"items,omitempty"` // element type when Type is "array"
}

// NewToolDefinition builds a tool definition with standard JSON Schema
// parameters from an ordered property map.
func NewToolDefinition(name, description string, properties map[string]ParameterProperty, required []string) ToolDefinition {
	props := make(map[string]any, len(properties))
	for k, v := range properties {
		prop := map[string]any{
			"type": v.Type,
		}
		if v.Description != "" {
			prop["description"] = v.Description
		}
		if v.Items != "" {
			prop["items"] = map[string]any{"type": v.Items}
		}
		props[k] = prop
	}

	if required == nil {
		required = []string{}
	}

	return ToolDefinition{
		Name:        name,
		Description: description,
		Parameters: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}
