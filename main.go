package main

import (
	"context"
	"net/http"

	"excel_trade_tracker/internal/app"
	"excel_trade_tracker/internal/graph"
	"excel_trade_tracker/internal/notifications"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
)

const serviceVersion = "1.1.0"

func main() {
	app.SetupEnvironment()

	ctx := context.Background()

	creds := app.LoadAzureCredentials()
	tokens := graph.NewTokenSource(ctx, creds.TenantID, creds.ClientID, creds.ClientSecret)
	client := graph.NewClient(tokens)

	tracker := app.LoadTrackerConfig()
	notifier := initializeNotificationClient()

	mcpServer := server.NewMCPServer(
		"excel-trade-tracker",
		serviceVersion,
		server.WithToolCapabilities(true),
	)

	// Register workbook tools
	mcpServer.AddTool(createUpdateRowByLookupTool(), handleUpdateRowByLookup(client))
	mcpServer.AddTool(createUpdateRangeTool(), handleUpdateRange(client))
	mcpServer.AddTool(createAppendRowsTool(), handleAppendRows(client))

	// Register trade tracker tools
	mcpServer.AddTool(createLogTradesTool(), handleLogTrades(client, tracker, notifier))

	switch app.GetEnvWithDefault("MCP_TRANSPORT", "stdio") {
	case "http":
		port := app.GetEnvWithDefault("PORT", "3000")
		log.Info().Str("port", port).Msg("Starting MCP server on streamable HTTP")

		mux := http.NewServeMux()
		mux.Handle("/mcp", server.NewStreamableHTTPServer(mcpServer))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status": "ok"}`))
		})
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	default:
		log.Info().Msg("Starting MCP server on stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			log.Fatal().Err(err).Msg("MCP server failed")
		}
	}
}

// initializeNotificationClient creates the ntfy client for batch summaries.
func initializeNotificationClient() *notifications.Client {
	enabled := app.GetEnvWithDefault("NTFY_ENABLED", "false") == "true"
	baseURL := app.GetEnvWithDefault("NTFY_URL", "https://ntfy.sh")
	topic := app.GetEnvWithDefault("NTFY_TOPIC", "trade-tracker")

	client := notifications.NewClient(baseURL, topic, enabled)

	if enabled {
		log.Info().Str("topic", topic).Msg("Batch notifications enabled")
	} else {
		log.Debug().Msg("Batch notifications disabled")
	}
	return client
}
