// Package server exposes the status bar window controller as MCP tools.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/output"
	"github.com/mj1618/statusbar-window/internal/version"
)

// Transports accepted by Serve.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around one controller. The controller does
// its own locking, so handlers call it directly.
type Server struct {
	ctrl    *controller.Controller
	setPref PrefWriter
	mcp     *mcpserver.MCPServer
}

// New creates an MCP server with every tool registered. setPref may be
// nil to make set_pref fail.
func New(ctrl *controller.Controller, setPref PrefWriter) *Server {
	s := &Server{
		ctrl:    ctrl,
		setPref: setPref,
		mcp:     mcpserver.NewMCPServer("sbwin", version.Version),
	}
	s.registerTools()
	return s
}

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, "":
		return mcpserver.ServeStdio(s.mcp)
	case TransportStreamableHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("set_flag",
			mcp.WithDescription("Set one status bar state flag and apply the re-derived window layout. Flags: "+strings.Join(controller.Flags(), ", ")),
			mcp.WithString("flag", mcp.Required(), mcp.Description("Flag name, e.g. keyguardShowing or statusBarState")),
			mcp.WithString("value", mcp.Required(), mcp.Description("true/false, a bar state (shade, keyguard, shade_locked) or a pixel height")),
		),
		s.handleSetFlag,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_bar_height",
			mcp.WithDescription("Change the collapsed status bar height"),
			mcp.WithNumber("px", mcp.Required(), mcp.Description("Height in pixels")),
		),
		s.handleSetBarHeight,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_showing_media",
			mcp.WithDescription("Record whether media artwork is shown on the keyguard"),
			mcp.WithBoolean("showing", mcp.Required(), mcp.Description("Media artwork visible")),
		),
		s.handleSetShowingMedia,
	)

	s.mcp.AddTool(
		mcp.NewTool("set_pref",
			mcp.WithDescription("Write a boolean preference, e.g. cmsystem:lockscreen_rotation"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Namespaced preference key")),
			mcp.WithBoolean("value", mcp.Required(), mcp.Description("Preference value")),
		),
		s.handleSetPref,
	)

	s.mcp.AddTool(
		mcp.NewTool("keyguard_changed",
			mcp.WithDescription("Notify that keyguard media changed so the blur overlay is rechecked"),
		),
		s.handleKeyguardChanged,
	)

	s.mcp.AddTool(
		mcp.NewTool("configuration_changed",
			mcp.WithDescription("Notify a display configuration change so the blur overlay is resized"),
		),
		s.handleConfigurationChanged,
	)

	s.mcp.AddTool(
		mcp.NewTool("state",
			mcp.WithDescription("Return the current state flags, the applied configuration and the preference cache"),
		),
		s.handleState,
	)

	s.mcp.AddTool(
		mcp.NewTool("configuration",
			mcp.WithDescription("Return the last applied window configuration"),
		),
		s.handleConfiguration,
	)

	s.mcp.AddTool(
		mcp.NewTool("dump",
			mcp.WithDescription("Return the human-readable state dump"),
		),
		s.handleDump,
	)
}

// resultToText serializes a StepResult to YAML for MCP response.
func resultToText(result StepResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

// stepHandler runs a step with the request arguments as its params.
func (s *Server) stepHandler(request mcp.CallToolRequest, action string) (*mcp.CallToolResult, error) {
	result, err := ExecuteStep(s.ctrl, s.setPref, action, request.GetArguments())
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handleSetFlag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "set")
}

func (s *Server) handleSetBarHeight(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "bar-height")
}

func (s *Server) handleSetShowingMedia(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "media")
}

func (s *Server) handleSetPref(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "pref")
}

func (s *Server) handleKeyguardChanged(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "keyguard-changed")
}

func (s *Server) handleConfigurationChanged(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stepHandler(request, "configuration-changed")
}

// stateResult is the state tool payload.
type stateResult struct {
	State         model.State              `yaml:"state"          json:"state"`
	Configuration model.Configuration      `yaml:"configuration"  json:"configuration"`
	Prefs         controller.PrefsSnapshot `yaml:"prefs"          json:"prefs"`
	Wallpaper     bool                     `yaml:"showingWallpaper" json:"showingWallpaper"`
}

func (s *Server) handleState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return yamlResult(stateResult{
		State:         s.ctrl.State(),
		Configuration: s.ctrl.Configuration(),
		Prefs:         s.ctrl.Prefs(),
		Wallpaper:     s.ctrl.IsShowingWallpaper(),
	})
}

func (s *Server) handleConfiguration(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return yamlResult(s.ctrl.Configuration())
}

func (s *Server) handleDump(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	if err := s.ctrl.Dump(&b); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	var b strings.Builder
	if err := output.WriteYAML(&b, v); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}
