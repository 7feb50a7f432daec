package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
)

// ModelClient defines the interface to the hosted model provider
type ModelClient interface {
	CreateMessage(ctx context.Context, req ModelRequest) (*ModelResponse, error)
}

// ModelRequest is one orchestration round's input to the model. Model and
// MaxTokens fall back to the provider client's configuration when zero.
type ModelRequest struct {
	Model     string
	MaxTokens int64
	Messages  []Message
	Tools     []ToolDefinition
}

// ModelResponse is the model's content for one round
type ModelResponse struct {
	Content []ContentBlock
}

// AnthropicModelClient implements ModelClient using the Anthropic
// Messages API.
type AnthropicModelClient struct {
	client *vendors.AnthropicClient
}

// NewAnthropicModelClient creates a model client backed by the shared
// Anthropic client.
func NewAnthropicModelClient() *AnthropicModelClient {
	return &AnthropicModelClient{client: vendors.GetAnthropicClient()}
}

// NewAnthropicModelClientWith wraps a specific Anthropic client (tests)
func NewAnthropicModelClientWith(client *vendors.AnthropicClient) *AnthropicModelClient {
	return &AnthropicModelClient{client: client}
}

// CreateMessage converts the request to Anthropic wire types, performs the
// call, and converts the response content back into the block union.
func (c *AnthropicModelClient) CreateMessage(ctx context.Context, req ModelRequest) (*ModelResponse, error) {
	if c.client == nil {
		return nil, vendors.ErrAnthropicNotConfigured
	}

	model := req.Model
	if model == "" {
		model = c.client.Model()
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.client.MaxTokens()
	}

	messages, err := buildAnthropicMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages:  messages,
		Tools:     buildAnthropicTools(req.Tools),
	}

	log.Info().
		Str("model", model).
		Int("messageCount", len(req.Messages)).
		Int("toolCount", len(req.Tools)).
		Msg("anthropic request")

	msg, err := c.client.RawCreateMessage(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("anthropic request failed")
		return nil, err
	}

	content := fromAnthropicContent(msg.Content)

	log.Info().
		Int("blockCount", len(content)).
		Str("stopReason", string(msg.StopReason)).
		Msg("anthropic response")

	return &ModelResponse{Content: content}, nil
}

func buildAnthropicMessages(messages []Message) ([]anthropic.MessageParam, error) {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Content))
		for _, block := range msg.Content {
			switch block.Type {
			case BlockText:
				blocks = append(blocks, anthropic.NewTextBlock(block.Text))
			case BlockToolUse:
				input, err := json.Marshal(block.Input)
				if err != nil {
					return nil, fmt.Errorf("marshal tool input: %w", err)
				}
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    block.ID,
						Name:  block.Name,
						Input: json.RawMessage(input),
					},
				})
			case BlockToolResult:
				blocks = append(blocks, anthropic.NewToolResultBlock(block.ToolUseID, block.Content, false))
			default:
				return nil, fmt.Errorf("unrecognized content block type %q", block.Type)
			}
		}

		switch msg.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(blocks...))
		case RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		default:
			return nil, fmt.Errorf("unrecognized message role %q", msg.Role)
		}
	}
	return out, nil
}

func buildAnthropicTools(tools []ToolDefinition) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, def := range tools {
		schema := anthropic.ToolInputSchemaParam{}
		if props, ok := def.InputSchema["properties"]; ok {
			schema.Properties = props
		}
		if required, ok := def.InputSchema["required"].([]string); ok {
			schema.Required = required
		}

		tool := anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: schema,
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return out
}

func fromAnthropicContent(content []anthropic.ContentBlockUnion) []ContentBlock {
	out := make([]ContentBlock, 0, len(content))
	for _, block := range content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			out = append(out, ContentBlock{Type: BlockText, Text: b.Text})
		case anthropic.ToolUseBlock:
			var input map[string]any
			if err := json.Unmarshal(b.Input, &input); err != nil {
				log.Warn().Err(err).Str("tool", b.Name).Msg("tool input is not a JSON object")
			}
			out = append(out, ContentBlock{
				Type:  BlockToolUse,
				ID:    b.ID,
				Name:  b.Name,
				Input: input,
			})
		default:
			// thinking and server-tool blocks are not part of this protocol
			log.Debug().Str("type", string(block.Type)).Msg("ignoring content block")
		}
	}
	return out
}
