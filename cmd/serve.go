package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mj1618/statusbar-window/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the window controller",
	Long: `Start a Model Context Protocol (MCP) server that exposes the controller
as tools: set_flag, set_bar_height, set_showing_media, set_pref,
keyguard_changed, configuration_changed, state, configuration and dump.

The preferences file is polled for changes while serving. With --broadcast
every applied layout is also pushed to websocket clients on /ws.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  sbwin serve
  sbwin serve --transport streamable-http --port 8080
  sbwin serve --broadcast 127.0.0.1:7790 --prefs-poll-ms 500`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	s, err := newSession(appConfig, sessionOptions{Broadcast: true})
	if err != nil {
		return fmt.Errorf("failed to create controller: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	s.startBackground(ctx)

	logger.Info("mcp server starting", "transport", transport, "prefs", s.prefs.Path())
	return server.New(s.ctrl, s.setPref).Serve(server.Config{Transport: transport, Port: port})
}
