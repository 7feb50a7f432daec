package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
)

// fakeModel replays scripted responses and records every request
type fakeModel struct {
	responses []*ModelResponse
	err       error
	requests  []ModelRequest
}

func (f *fakeModel) CreateMessage(_ context.Context, req ModelRequest) (*ModelResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.requests) > len(f.responses) {
		return &ModelResponse{}, nil
	}
	return f.responses[len(f.requests)-1], nil
}

// fakeSearch returns a fixed result and records queries
type fakeSearch struct {
	result  vendors.SearchResult
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) vendors.SearchResult {
	f.queries = append(f.queries, query)
	return f.result
}

func toolUseBlock(id, query string) ContentBlock {
	return ContentBlock{
		Type:  BlockToolUse,
		ID:    id,
		Name:  SearchToolName,
		Input: map[string]any{"query": query},
	}
}

func laptopListing() db.Listing {
	return db.Listing{
		ID:          "1",
		Title:       "Laptop X",
		Price:       500,
		Description: "Used laptop",
		ViewsCount:  3,
	}
}

func TestAnswerDirectText(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{TextBlock("Hi, how can I help?")}},
	}}
	search := &fakeSearch{}

	answer, err := NewOrchestrator(model, search).Answer(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Hi, how can I help?" {
		t.Errorf("expected direct text answer, got %q", answer)
	}
	if len(model.requests) != 1 {
		t.Errorf("expected 1 model call, got %d", len(model.requests))
	}
	if len(search.queries) != 0 {
		t.Errorf("expected no search calls, got %d", len(search.queries))
	}
}

func TestAnswerToolRound(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{toolUseBlock("toolu_01", "laptop")}},
		{Content: []ContentBlock{TextBlock("I found a laptop for $500.")}},
	}}
	search := &fakeSearch{result: vendors.SearchResult{Listings: []db.Listing{laptopListing()}}}

	answer, err := NewOrchestrator(model, search).Answer(context.Background(), "find me a cheap laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "I found a laptop for $500." {
		t.Errorf("expected second-round answer, got %q", answer)
	}

	if len(search.queries) != 1 || search.queries[0] != "laptop" {
		t.Fatalf("expected one search for %q, got %v", "laptop", search.queries)
	}

	// Second round carries the full three-message history
	second := model.requests[1]
	if len(second.Messages) != 3 {
		t.Fatalf("expected 3 messages in second round, got %d", len(second.Messages))
	}
	if second.Messages[1].Role != RoleAssistant {
		t.Errorf("expected assistant message second, got %q", second.Messages[1].Role)
	}

	// The tool_result block answers the originating tool_use block
	toolResult := second.Messages[2].Content[0]
	if toolResult.Type != BlockToolResult {
		t.Fatalf("expected tool_result block, got %q", toolResult.Type)
	}
	if toolResult.ToolUseID != "toolu_01" {
		t.Errorf("tool_use_id = %q, want %q", toolResult.ToolUseID, "toolu_01")
	}

	// The injected content is the raw listing data serialized as JSON
	var injected []db.Listing
	if err := json.Unmarshal([]byte(toolResult.Content), &injected); err != nil {
		t.Fatalf("injected content is not listing JSON: %v", err)
	}
	if len(injected) != 1 || injected[0].Title != "Laptop X" {
		t.Errorf("unexpected injected listings: %+v", injected)
	}

	// Tools are attached to both rounds
	for i, req := range model.requests {
		if len(req.Tools) != 1 || req.Tools[0].Name != SearchToolName {
			t.Errorf("round %d missing search tool", i+1)
		}
	}
}

func TestAnswerSearchFailure(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{toolUseBlock("toolu_02", "laptop")}},
		{Content: []ContentBlock{TextBlock("Sorry, search is down.")}},
	}}
	search := &fakeSearch{result: vendors.SearchResult{Failed: true}}

	_, err := NewOrchestrator(model, search).Answer(context.Background(), "find me a laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	injected := model.requests[1].Messages[2].Content[0].Content
	if injected != BackendErrorMessage {
		t.Errorf("injected content = %q, want %q", injected, BackendErrorMessage)
	}
}

func TestAnswerSearchEmpty(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{toolUseBlock("toolu_03", "xyz123")}},
		{Content: []ContentBlock{TextBlock("Nothing matched.")}},
	}}
	search := &fakeSearch{result: vendors.SearchResult{Listings: []db.Listing{}}}

	answer, err := NewOrchestrator(model, search).Answer(context.Background(), "find xyz123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Nothing matched." {
		t.Errorf("expected second round to proceed normally, got %q", answer)
	}

	injected := model.requests[1].Messages[2].Content[0].Content
	if injected != NoResultsMessage {
		t.Errorf("injected content = %q, want %q", injected, NoResultsMessage)
	}
}

func TestAnswerSecondToolUseIgnored(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{toolUseBlock("toolu_04", "laptop")}},
		{Content: []ContentBlock{
			toolUseBlock("toolu_05", "another laptop"),
			TextBlock("Here is what I found."),
		}},
	}}
	search := &fakeSearch{result: vendors.SearchResult{Listings: []db.Listing{laptopListing()}}}

	answer, err := NewOrchestrator(model, search).Answer(context.Background(), "find me a laptop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Here is what I found." {
		t.Errorf("expected text from capped second round, got %q", answer)
	}

	// The cap holds: one search, two model calls, no third round
	if len(search.queries) != 1 {
		t.Errorf("expected 1 search call, got %d", len(search.queries))
	}
	if len(model.requests) != 2 {
		t.Errorf("expected 2 model calls, got %d", len(model.requests))
	}
}

func TestAnswerFallbackWhenNoText(t *testing.T) {
	model := &fakeModel{responses: []*ModelResponse{
		{Content: []ContentBlock{}},
	}}

	answer, err := NewOrchestrator(model, &fakeSearch{}).Answer(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != FallbackAnswer {
		t.Errorf("answer = %q, want fallback %q", answer, FallbackAnswer)
	}
}

func TestAnswerInvalidToolInput(t *testing.T) {
	cases := []struct {
		name  string
		input map[string]any
	}{
		{"missing query", map[string]any{}},
		{"non-string query", map[string]any{"query": 42}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &fakeModel{responses: []*ModelResponse{
				{Content: []ContentBlock{{
					Type:  BlockToolUse,
					ID:    "toolu_06",
					Name:  SearchToolName,
					Input: tc.input,
				}}},
			}}
			search := &fakeSearch{}

			_, err := NewOrchestrator(model, search).Answer(context.Background(), "find me a laptop")
			if !errors.Is(err, ErrInvalidToolInput) {
				t.Errorf("expected ErrInvalidToolInput, got %v", err)
			}
			if len(search.queries) != 0 {
				t.Errorf("expected no search call on invalid input, got %d", len(search.queries))
			}
		})
	}
}

func TestAnswerModelError(t *testing.T) {
	model := &fakeModel{err: errors.New("provider unreachable")}

	_, err := NewOrchestrator(model, &fakeSearch{}).Answer(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error when the model call fails")
	}
}
