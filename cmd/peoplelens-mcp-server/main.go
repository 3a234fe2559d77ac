package main

import (
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/peoplelens/peoplelens-go/api"
	"github.com/peoplelens/peoplelens-go/internal/config"
	"github.com/peoplelens/peoplelens-go/mcp/handlers"
	"github.com/peoplelens/peoplelens-go/profile"
)

const serverVersion = "0.1.0"

func main() {
	cfg := config.Load()
	cfg.Init()

	apiClient, err := api.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure api client")
	}
	sdk := profile.New(apiClient)

	s := server.NewMCPServer(
		"peoplelens-mcp-server",
		serverVersion,
		server.WithToolCapabilities(true),
	)
	if err := handlers.NewSearchHandler(sdk).RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msg("failed to register search tools")
	}

	log.Info().Msg("starting PeopleLens MCP server (stdio transport)")
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("stdio server error")
		os.Exit(1)
	}
}
