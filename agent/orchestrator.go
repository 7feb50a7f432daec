package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

// maxToolRounds caps how many tool rounds a single prompt may trigger.
// The protocol is deliberately single-round: a tool_use block in the
// final response is ignored, not looped on.
const maxToolRounds = 1

// Fixed renderings shared by both transport adapters. Collaborator
// failures map to these literals; raw provider errors never reach the
// caller.
const (
	NoResultsMessage    = "No results found."
	BackendErrorMessage = "Error connecting to backend."
	FallbackAnswer      = "No response generated."
)

// ErrInvalidToolInput marks a tool invocation whose input violates the
// declared schema (query missing or not a string). Surfaced to HTTP
// callers as a client error.
var ErrInvalidToolInput = errors.New("tool input missing required string field \"query\"")

// Orchestrator drives the two-round completion protocol: prompt the model
// with the search tool attached, execute a requested search, feed the
// result back, and extract the final answer.
type Orchestrator struct {
	llm    ModelClient
	search SearchClient
}

// NewOrchestrator wires an orchestrator from its two collaborators
func NewOrchestrator(llm ModelClient, search SearchClient) *Orchestrator {
	return &Orchestrator{llm: llm, search: search}
}

// Answer runs the protocol for one prompt and returns the final answer
// text. All conversation state is local to this call.
func (o *Orchestrator) Answer(ctx context.Context, prompt string) (string, error) {
	tools := []ToolDefinition{SearchTool()}
	messages := []Message{UserText(prompt)}

	resp, err := o.llm.CreateMessage(ctx, ModelRequest{Messages: messages, Tools: tools})
	if err != nil {
		return "", fmt.Errorf("model call: %w", err)
	}

	for round := 0; round < maxToolRounds; round++ {
		toolUse := firstToolUse(resp.Content)
		if toolUse == nil {
			break
		}

		query, err := queryInput(*toolUse)
		if err != nil {
			return "", err
		}

		log.Info().Str("query", query).Msg("model requested search")
		resultText := o.runSearch(ctx, query)

		messages = append(messages,
			Message{Role: RoleAssistant, Content: resp.Content},
			Message{Role: RoleUser, Content: []ContentBlock{ToolResultBlock(toolUse.ID, resultText)}},
		)

		resp, err = o.llm.CreateMessage(ctx, ModelRequest{Messages: messages, Tools: tools})
		if err != nil {
			return "", fmt.Errorf("model call: %w", err)
		}
	}

	return firstText(resp.Content), nil
}

// runSearch executes the search and renders its three-way outcome as the
// tool result content: raw listing JSON, or one of the fixed literals.
func (o *Orchestrator) runSearch(ctx context.Context, query string) string {
	result := o.search.Search(ctx, query)
	switch {
	case result.Failed:
		return BackendErrorMessage
	case result.Empty():
		return NoResultsMessage
	}

	data, err := json.Marshal(result.Listings)
	if err != nil {
		log.Error().Err(err).Msg("listing serialization failed")
		return BackendErrorMessage
	}
	return string(data)
}

// firstToolUse returns the first tool_use block, or nil
func firstToolUse(content []ContentBlock) *ContentBlock {
	for i := range content {
		switch content[i].Type {
		case BlockToolUse:
			return &content[i]
		case BlockText, BlockToolResult:
			// keep scanning
		}
	}
	return nil
}

// firstText returns the first text block's text, or the fixed fallback
func firstText(content []ContentBlock) string {
	for _, block := range content {
		switch block.Type {
		case BlockText:
			return block.Text
		case BlockToolUse, BlockToolResult:
			// keep scanning
		}
	}
	return FallbackAnswer
}

// queryInput extracts the required query string from a tool_use block
func queryInput(block ContentBlock) (string, error) {
	value, ok := block.Input["query"]
	if !ok {
		return "", ErrInvalidToolInput
	}
	query, ok := value.(string)
	if !ok {
		return "", ErrInvalidToolInput
	}
	return query, nil
}
