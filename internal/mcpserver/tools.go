package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/model"
	"assistpanel/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PanelTools holds the tool definitions and handlers.
type PanelTools struct {
	sender Sender
	state  StateReader
}

// NewPanelTools creates the tool set.
func NewPanelTools(sender Sender, state StateReader) *PanelTools {
	return &PanelTools{sender: sender, state: state}
}

// Tools returns every tool definition.
func (pt *PanelTools) Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool("panel_list_tabs",
			mcp.WithDescription("List the tabs of the assistant panel"),
			mcp.WithString("mode",
				mcp.Description("Layout to list tabs for: floating or embedded (default: the mounted layout)"),
			),
		),
		mcp.NewTool("panel_state",
			mcp.WithDescription("Get the active tab and visibility of the panel"),
		),
		mcp.NewTool("panel_open",
			mcp.WithDescription("Open the floating panel"),
		),
		mcp.NewTool("panel_close",
			mcp.WithDescription("Close the floating panel"),
		),
		mcp.NewTool("panel_set_active_tab",
			mcp.WithDescription("Pin the active tab; the user cannot switch tabs until released"),
			mcp.WithString("tab",
				mcp.Required(),
				mcp.Description("Tab id: chat, analysis, knowledge, filesystem, api or settings"),
			),
		),
		mcp.NewTool("panel_release_tab",
			mcp.WithDescription("Hand tab selection back to the user"),
		),
	}
}

// Register adds every tool to s.
func (pt *PanelTools) Register(s *server.MCPServer) {
	handlers := map[string]server.ToolHandlerFunc{
		"panel_list_tabs":      pt.HandleListTabs,
		"panel_state":          pt.HandleState,
		"panel_open":           pt.HandleOpen,
		"panel_close":          pt.HandleClose,
		"panel_set_active_tab": pt.HandleSetActiveTab,
		"panel_release_tab":    pt.HandleReleaseTab,
	}
	for _, tool := range pt.Tools() {
		s.AddTool(tool, handlers[tool.Name])
	}
}

// HandleListTabs handles the panel_list_tabs tool call
func (pt *PanelTools) HandleListTabs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := panel.ModeFloating
	if st, ok := pt.state.Load(); ok {
		mode = st.Mode
	}
	switch strings.ToLower(req.GetString("mode", "")) {
	case "":
	case "floating":
		mode = panel.ModeFloating
	case "embedded":
		mode = panel.ModeEmbedded
	default:
		return mcp.NewToolResultError("mode must be floating or embedded"), nil
	}

	result := map[string]interface{}{
		"mode": mode.String(),
		"tabs": panel.VisibleTabs(mode),
	}
	return jsonResult(result)
}

// HandleState handles the panel_state tool call
func (pt *PanelTools) HandleState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, ok := pt.state.Load()
	if !ok {
		return mcp.NewToolResultError("panel is not mounted yet"), nil
	}
	result := map[string]interface{}{
		"activeTab":  st.ActiveTab,
		"isOpen":     st.IsOpen,
		"controlled": st.Controlled,
		"mode":       st.Mode.String(),
		"phase":      st.Phase.String(),
	}
	return jsonResult(result)
}

// HandleOpen handles the panel_open tool call
func (pt *PanelTools) HandleOpen(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt.sender.Send(model.SetOpenMsg{Open: true})
	logging.Debug(serverSubsystem, "panel_open forwarded")
	return mcp.NewToolResultText("Panel opened"), nil
}

// HandleClose handles the panel_close tool call
func (pt *PanelTools) HandleClose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt.sender.Send(model.SetOpenMsg{Open: false})
	logging.Debug(serverSubsystem, "panel_close forwarded")
	return mcp.NewToolResultText("Panel closed"), nil
}

// HandleSetActiveTab handles the panel_set_active_tab tool call
func (pt *PanelTools) HandleSetActiveTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("tab")
	if err != nil {
		return mcp.NewToolResultError("tab is required"), nil
	}
	id, ok := panel.ParseTabID(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown tab %q", raw)), nil
	}

	pt.sender.Send(model.SetActiveTabMsg{Tab: id})
	msg := fmt.Sprintf("Active tab pinned to '%s'", id)
	if st, ok := pt.state.Load(); ok && !panel.IsVisible(st.Mode, id) {
		msg += fmt.Sprintf(" (not shown in %s mode, the panel shows %s)", st.Mode, panel.DefaultTab)
	}
	return mcp.NewToolResultText(msg), nil
}

// HandleReleaseTab handles the panel_release_tab tool call
func (pt *PanelTools) HandleReleaseTab(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pt.sender.Send(model.ReleaseTabMsg{})
	return mcp.NewToolResultText("Tab selection released"), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(resultJSON)),
		},
	}, nil
}
