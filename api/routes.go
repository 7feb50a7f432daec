package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, answerer Answerer) {
	// Listings
	r.GET("/listings", GetListings)
	r.POST("/listings", CreateListing)
	r.POST("/listings/:id/view", ViewListing)
	r.GET("/my-listings/:ownerId", GetMyListings)
	r.GET("/suggestions", GetSuggestions)

	// Search (consumed by the chat bridge and the MCP server)
	r.GET("/search", SearchListings)

	// Chat bridge
	api := r.Group("/api")
	api.POST("/chat", Chat(answerer))
}
