package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/https-dhanesh/Classifieds-App-Base/agent"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "classifieds-search"
	serverVersion = "1.0.0"

	// listingSeparator joins the per-listing lines in a tool result
	listingSeparator = "\n---\n"
)

// NewServer builds the MCP server exposing search_classifieds. The tool
// registration is derived from the shared schema registry, so the MCP
// surface and the chat endpoint always advertise the identical contract.
func NewServer(search agent.SearchClient) *server.MCPServer {
	srv := server.NewMCPServer(serverName, serverVersion)

	def := agent.SearchTool()
	schema, err := json.Marshal(def.InputSchema)
	if err != nil {
		// the registry schema is a static literal; this cannot fail
		log.Fatal().Err(err).Msg("tool schema marshal failed")
	}

	tool := mcp.NewToolWithRawSchema(def.Name, def.Description, schema)
	srv.AddTool(tool, searchHandler(search))

	return srv
}

// searchHandler executes one tool invocation. Stateless: the host owns
// the conversation; this end only maps a query to rendered results.
func searchHandler(search agent.SearchClient) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, ok := req.GetArguments()["query"].(string)
		if !ok {
			return mcp.NewToolResultError("query is required and must be a string"), nil
		}

		log.Info().Str("query", query).Msg("tool invocation")
		result := search.Search(ctx, query)
		return mcp.NewToolResultText(RenderResult(result)), nil
	}
}

// RenderResult maps the three-way search outcome to the tool result text:
// one pipe-delimited line per listing, or a fixed literal for the empty
// and failure cases.
func RenderResult(result vendors.SearchResult) string {
	switch {
	case result.Failed:
		return agent.BackendErrorMessage
	case result.Empty():
		return agent.NoResultsMessage
	}

	lines := make([]string, 0, len(result.Listings))
	for _, l := range result.Listings {
		lines = append(lines, fmt.Sprintf("Title: %s | Price: $%v | Desc: %s", l.Title, l.Price, l.Description))
	}
	return strings.Join(lines, listingSeparator)
}
