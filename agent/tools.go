package agent

// SearchToolName is the only tool either transport ever advertises
const SearchToolName = "search_classifieds"

const (
	searchToolDescription  = "Search for items in the classifieds database based on a keyword."
	searchQueryDescription = "The search keyword"
)

// ToolDefinition describes a tool advertised to the model
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// SearchTool returns the static definition of the search_classifieds tool.
// Both the chat endpoint and the MCP server derive their registrations
// from this single definition; neither carries its own schema literals.
func SearchTool() ToolDefinition {
	return ToolDefinition{
		Name:        SearchToolName,
		Description: searchToolDescription,
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": searchQueryDescription,
				},
			},
			"required": []string{"query"},
		},
	}
}
