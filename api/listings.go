package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

// suggestionCount is how many top ads the suggestions endpoint returns
const suggestionCount = 5

// GetListings returns every listing
func GetListings(c *gin.Context) {
	listings, err := db.GetAllListings()
	if err != nil {
		log.Error().Err(err).Msg("failed to load listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	respondListings(c, listings)
}

// CreateListing creates a new listing
func CreateListing(c *gin.Context) {
	var in db.NewListing
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing, err := db.CreateListing(in)
	if err != nil {
		log.Error().Err(err).Msg("failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	log.Info().Str("id", listing.ID).Str("title", listing.Title).Msg("listing created")
	c.JSON(http.StatusOK, listing)
}

// ViewListing increments a listing's view counter
func ViewListing(c *gin.Context) {
	id := c.Param("id")

	views, err := db.IncrementListingViews(id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to increment views")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "views": views})
}

// GetMyListings returns all listings posted by one owner
func GetMyListings(c *gin.Context) {
	ownerID := c.Param("ownerId")

	listings, err := db.GetListingsByOwner(ownerID)
	if err != nil {
		log.Error().Err(err).Str("ownerId", ownerID).Msg("failed to load owner listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load listings"})
		return
	}
	respondListings(c, listings)
}

// GetSuggestions returns the most viewed listings
func GetSuggestions(c *gin.Context) {
	listings, err := db.GetTopListings(suggestionCount)
	if err != nil {
		log.Error().Err(err).Msg("failed to load suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load suggestions"})
		return
	}
	respondListings(c, listings)
}

// respondListings writes a listing array, never null
func respondListings(c *gin.Context, listings []db.Listing) {
	if listings == nil {
		listings = []db.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}
