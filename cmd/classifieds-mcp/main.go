package main

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/https-dhanesh/Classifieds-App-Base/log"
	"github.com/https-dhanesh/Classifieds-App-Base/mcp"
	"github.com/https-dhanesh/Classifieds-App-Base/vendors"
)

func main() {
	// stdout belongs to the protocol; all logging goes to stderr
	log.UseStderr()

	srv := mcp.NewServer(vendors.GetSearchBackendClient())

	log.Info().Msg("MCP server running")
	if err := server.ServeStdio(srv); err != nil {
		log.Fatal().Err(err).Msg("mcp server error")
	}
}
