package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/https-dhanesh/Classifieds-App-Base/agent"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

// Answerer is the chat handler's view of the conversation orchestrator
type Answerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// ChatRequest is the request body for the chat endpoint. Prompt is a
// pointer so a missing field is distinguishable from an empty string.
type ChatRequest struct {
	Prompt *string `json:"prompt"`
}

// ChatResponse is the response body for the chat endpoint
type ChatResponse struct {
	Answer string `json:"answer"`
}

// Chat runs the two-round tool orchestration for a single prompt.
// Provider failures surface as a generic error envelope; their payloads
// never reach the caller.
func Chat(answerer Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must be a string"})
			return
		}
		if req.Prompt == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
			return
		}

		answer, err := answerer.Answer(c.Request.Context(), *req.Prompt)
		if err != nil {
			if errors.Is(err, agent.ErrInvalidToolInput) {
				log.Warn().Err(err).Msg("model produced invalid tool input")
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tool input"})
				return
			}
			log.Error().Err(err).Msg("chat orchestration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing request"})
			return
		}

		c.JSON(http.StatusOK, ChatResponse{Answer: answer})
	}
}
