package main

import (
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/patchsim/internal/config"
	"github.com/ludo-technologies/patchsim/internal/logger"
	"github.com/ludo-technologies/patchsim/internal/version"
	"github.com/ludo-technologies/patchsim/mcp"
)

const serverName = "patchsim"

func main() {
	configPath := pflag.StringP("config", "c", "", "Configuration file path (default: nearest .patchsim.toml)")
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Logging goes to stderr; MCP uses stdout for JSON-RPC
	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, *configPath)))

	log.Info().Str("version", version.Short()).
		Strs("tools", []string{"score_patch", "rank_patches", "compare_vectors", "list_strategies"}).
		Msg("MCP server ready, waiting for client connection")

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Error().Err(err).Msg("Server error")
		closer.Close()
		os.Exit(1)
	}
}
