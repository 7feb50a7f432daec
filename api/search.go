package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

// SearchListings finds listings whose title or description contains the
// q parameter, case-insensitive. A missing or blank q returns an empty
// array without touching the database; the chat bridge and the MCP
// server rely on that short-circuit.
func SearchListings(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []db.Listing{})
		return
	}

	listings, err := db.SearchListings(q)
	if err != nil {
		log.Error().Err(err).Str("q", q).Msg("search query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	respondListings(c, listings)
}
