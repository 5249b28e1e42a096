package mcpserver

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func newTools(st *panel.StateStore) (*PanelTools, *recordingSender) {
	s := &recordingSender{}
	return NewPanelTools(s, st), s
}

func request(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestTools_Definitions(t *testing.T) {
	pt, _ := newTools(&panel.StateStore{})
	names := map[string]bool{}
	for _, tool := range pt.Tools() {
		names[tool.Name] = true
	}
	for _, want := range []string{"panel_list_tabs", "panel_state", "panel_open", "panel_close", "panel_set_active_tab", "panel_release_tab"} {
		assert.True(t, names[want], want)
	}
	assert.Len(t, names, 6)
}

func TestHandleListTabs(t *testing.T) {
	store := &panel.StateStore{}
	store.Publish(panel.State{Mode: panel.ModeEmbedded, ActiveTab: panel.TabChat, IsOpen: true})
	pt, _ := newTools(store)

	tests := []struct {
		name     string
		args     map[string]interface{}
		wantMode string
		wantTabs int
		wantErr  bool
	}{
		{"mounted mode", nil, "embedded", 3, false},
		{"floating", map[string]interface{}{"mode": "floating"}, "floating", 6, false},
		{"bad mode", map[string]interface{}{"mode": "sidebar"}, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := pt.HandleListTabs(context.Background(), request(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.wantErr, res.IsError)
			if tt.wantErr {
				return
			}
			var out struct {
				Mode string                `json:"mode"`
				Tabs []panel.TabDescriptor `json:"tabs"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
			assert.Equal(t, tt.wantMode, out.Mode)
			assert.Len(t, out.Tabs, tt.wantTabs)
			assert.Equal(t, panel.TabChat, out.Tabs[0].ID)
		})
	}
}

func TestHandleState(t *testing.T) {
	store := &panel.StateStore{}
	pt, _ := newTools(store)

	res, err := pt.HandleState(context.Background(), request(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	store.Publish(panel.State{ActiveTab: panel.TabKnowledge, IsOpen: true, Controlled: true, Phase: panel.PhaseExiting})
	res, err = pt.HandleState(context.Background(), request(nil))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "knowledge", out["activeTab"])
	assert.Equal(t, true, out["controlled"])
	assert.Equal(t, "floating", out["mode"])
	assert.Equal(t, "exiting", out["phase"])
}

func TestHandleOpenCloseRelease(t *testing.T) {
	pt, sender := newTools(&panel.StateStore{})
	ctx := context.Background()

	_, err := pt.HandleOpen(ctx, request(nil))
	require.NoError(t, err)
	_, err = pt.HandleClose(ctx, request(nil))
	require.NoError(t, err)
	_, err = pt.HandleReleaseTab(ctx, request(nil))
	require.NoError(t, err)

	assert.Equal(t, []tea.Msg{
		model.SetOpenMsg{Open: true},
		model.SetOpenMsg{Open: false},
		model.ReleaseTabMsg{},
	}, sender.msgs)
}

func TestHandleSetActiveTab(t *testing.T) {
	store := &panel.StateStore{}
	store.Publish(panel.State{Mode: panel.ModeEmbedded})
	pt, sender := newTools(store)
	ctx := context.Background()

	res, err := pt.HandleSetActiveTab(ctx, request(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = pt.HandleSetActiveTab(ctx, request(map[string]interface{}{"tab": "quiz"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, sender.msgs)

	res, err = pt.HandleSetActiveTab(ctx, request(map[string]interface{}{"tab": "Knowledge"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []tea.Msg{model.SetActiveTabMsg{Tab: panel.TabKnowledge}}, sender.msgs)

	res, err = pt.HandleSetActiveTab(ctx, request(map[string]interface{}{"tab": "api"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "not shown in embedded mode")
}

func TestClientConfigJSON(t *testing.T) {
	var out map[string]map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(ClientConfigJSON("localhost", 8091)), &out))
	assert.Equal(t, "http://localhost:8091/sse", out["mcpServers"]["assistpanel"]["url"])
}

func TestServer_Defaults(t *testing.T) {
	s := New(Config{}, &recordingSender{}, &panel.StateStore{})
	assert.Equal(t, "localhost:8091", s.Addr())
	assert.Equal(t, "http://localhost:8091", s.BaseURL())
	assert.Error(t, s.Stop(context.Background()))
}
