package controller

import (
	"strings"
	"testing"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/components"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/transition"
	"assistpanel/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, host *HostState) AppModel {
	t.Helper()
	m, err := model.New(host.Props(),
		model.WithTransition(transition.None{}),
		model.WithFeatureOptions(features.Options{WorkspaceDir: t.TempDir()}),
	)
	require.NoError(t, err)
	app := NewAppModel(host, m)
	next, _ := app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	app = next.(AppModel)
	if v := m.Visibility; v.Phase() == panel.PhaseEntering {
		app = send(t, app, transition.FrameMsg{Seq: v.Seq(), Direction: transition.Enter, Progress: 1, Done: true})
	}
	return app
}

// send feeds msg to the app and then every message its commands produce,
// as long as those are transition or lifecycle messages.
func send(t *testing.T, app AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := app.Update(msg)
	app = next.(AppModel)
	for _, m := range collect(cmd) {
		app = send(t, app, m)
	}
	return app
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case transition.FrameMsg, model.ClosingMsg, model.UnmountedMsg:
		out = append(out, msg)
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScenario_EmbeddedPinnedKnowledge(t *testing.T) {
	app := newTestApp(t, &HostState{Embedded: true, Tab: panel.TabKnowledge, Online: true})

	p := app.Panel()
	assert.Equal(t, panel.ModeEmbedded, p.Mode)
	assert.Equal(t, panel.TabKnowledge, p.Active)
	assert.Len(t, p.VisibleTabs(), 3)
	assert.Equal(t, panel.TabKnowledge, p.ActiveUnit().ID())

	out := view.RenderPanel(p, 60, 30)
	assert.Contains(t, out, "Knowledge")
	assert.NotContains(t, out, "Settings")
}

func TestScenario_FloatingOpensOnProp(t *testing.T) {
	app := newTestApp(t, &HostState{Online: true})
	assert.False(t, app.Panel().Mounted())
	assert.NotContains(t, app.View(), "Ask the assistant about the lesson")

	app = send(t, app, model.SetOpenMsg{Open: true})
	p := app.Panel()
	assert.True(t, p.Mounted())
	assert.Equal(t, panel.PhaseIdle, p.Visibility.Phase())
	assert.Equal(t, panel.TabChat, p.Active)
	assert.Contains(t, app.View(), "Ask the assistant about the lesson")
}

func TestScenario_UserSelectsAPI(t *testing.T) {
	ctx := &panel.ContextPayload{Mode: panel.ContextGeneral}
	app := newTestApp(t, &HostState{Open: true, Context: ctx, Online: true})

	app = send(t, app, model.SelectTabMsg{Tab: panel.TabAPI})
	p := app.Panel()
	assert.Equal(t, panel.TabAPI, p.Active)
	assert.Same(t, ctx, p.UnitProps().Context)
	assert.Contains(t, view.RenderPanel(p, 60, 30), "Assistant provider")
}

func TestKeys_TabCycling(t *testing.T) {
	app := newTestApp(t, &HostState{Open: true})

	app = send(t, app, keyMsg("tab"))
	assert.Equal(t, panel.TabAnalysis, app.Panel().Active)
	app = send(t, app, keyMsg("shift+tab"))
	app = send(t, app, keyMsg("shift+tab"))
	assert.Equal(t, panel.TabSettings, app.Panel().Active)
	app = send(t, app, keyMsg("3"))
	assert.Equal(t, panel.TabKnowledge, app.Panel().Active)
}

func TestKeys_EmbeddedJumpIgnoresHiddenTabs(t *testing.T) {
	app := newTestApp(t, &HostState{Embedded: true})
	app = send(t, app, keyMsg("5"))
	assert.Equal(t, panel.TabChat, app.Panel().Active)
	app = send(t, app, keyMsg("2"))
	assert.Equal(t, panel.TabAnalysis, app.Panel().Active)
}

func TestHostPin_OverridesUserSelection(t *testing.T) {
	app := newTestApp(t, &HostState{Open: true})

	app = send(t, app, keyMsg("K"))
	assert.Equal(t, panel.TabKnowledge, app.Panel().Active)
	assert.True(t, app.Panel().Tabs.Controlled())

	app = send(t, app, keyMsg("tab"))
	assert.Equal(t, panel.TabKnowledge, app.Panel().Active)

	app = send(t, app, keyMsg("R"))
	assert.False(t, app.Panel().Tabs.Controlled())
	app = send(t, app, keyMsg("1"))
	assert.Equal(t, panel.TabChat, app.Panel().Active)
}

func TestHostToggleOnline(t *testing.T) {
	host := &HostState{Open: true, Online: true}
	app := newTestApp(t, host)

	app = send(t, app, keyMsg("O"))
	assert.False(t, host.Online)
	assert.False(t, app.Panel().Props.IsOnline)

	app = send(t, app, keyMsg("O"))
	assert.True(t, host.Online)
	assert.True(t, app.Panel().Props.IsOnline)
}

func TestClose_OnCloseOnceAndUnmounts(t *testing.T) {
	host := &HostState{Open: true}
	app := newTestApp(t, host)

	app = send(t, app, keyMsg("ctrl+w"))
	assert.False(t, host.Open)
	assert.False(t, app.Panel().Visibility.Open())
	assert.False(t, app.Panel().Mounted())
	seq := app.Panel().Visibility.Seq()

	// a second gesture on a closed panel does nothing
	app = send(t, app, model.CloseRequestMsg{Source: model.CloseFromButton})
	assert.Equal(t, seq, app.Panel().Visibility.Seq())

	// reopening goes through the host
	app = send(t, app, keyMsg("a"))
	assert.True(t, host.Open)
	assert.True(t, app.Panel().Mounted())
	assert.Equal(t, seq+1, app.Panel().Visibility.Seq())
}

func TestClose_EscUnwindsBeforeClosing(t *testing.T) {
	host := &HostState{Open: true}
	app := newTestApp(t, host)

	app = send(t, app, keyMsg("?"))
	assert.Equal(t, model.OverlayHelp, app.Panel().Overlay)
	app = send(t, app, keyMsg("esc"))
	assert.Equal(t, model.OverlayNone, app.Panel().Overlay)
	assert.True(t, host.Open)

	app = send(t, app, keyMsg("esc"))
	assert.False(t, host.Open)
	assert.False(t, app.Panel().Mounted())
}

func TestClose_EmbeddedIgnoresGestures(t *testing.T) {
	host := &HostState{Embedded: true, Open: true}
	app := newTestApp(t, host)

	for _, msg := range []tea.Msg{keyMsg("ctrl+w"), keyMsg("esc"), model.CloseRequestMsg{Source: model.CloseFromOverlay}} {
		app = send(t, app, msg)
	}
	assert.True(t, host.Open)
	assert.True(t, app.Panel().Mounted())
	assert.True(t, app.Panel().Visibility.Open())
}

func TestZoneClicks(t *testing.T) {
	host := &HostState{Open: true}
	app := newTestApp(t, host)
	p := app.Panel()

	assert.Nil(t, handleZoneClick(p, components.TabZoneID(panel.TabFilesystem)))
	assert.Equal(t, panel.TabFilesystem, p.Active)

	cmd := handleZoneClick(p, view.ScrimZoneID)
	assert.NotNil(t, cmd)
	assert.False(t, host.Open)
	assert.False(t, p.Visibility.Open())
}

func TestZoneClicks_CloseButton(t *testing.T) {
	host := &HostState{Open: true}
	app := newTestApp(t, host)
	handleZoneClick(app.Panel(), components.CloseZoneID)
	assert.False(t, host.Open)
}

func TestClickTargets(t *testing.T) {
	floating := newTestApp(t, &HostState{Open: true})
	embedded := newTestApp(t, &HostState{Embedded: true})

	assert.Contains(t, clickTargets(floating.Panel()), view.ScrimZoneID)
	assert.NotContains(t, clickTargets(embedded.Panel()), view.ScrimZoneID)
	assert.Len(t, clickTargets(embedded.Panel()), 1+3)
}

func TestFocusedUnitCapturesKeys(t *testing.T) {
	host := &HostState{Open: true}
	app := newTestApp(t, host)

	next, _ := app.Update(keyMsg("enter"))
	app = next.(AppModel)
	require.True(t, app.Panel().UnitFocused)

	// 'a' is typed into the chat input, not the host toggle
	next, _ = app.Update(keyMsg("a"))
	app = next.(AppModel)
	assert.True(t, host.Open)

	next, _ = app.Update(keyMsg("esc"))
	app = next.(AppModel)
	assert.False(t, app.Panel().UnitFocused)
	assert.True(t, host.Open)
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t, &HostState{Open: true})
	for _, k := range []string{"q", "ctrl+c"} {
		next, cmd := app.Update(keyMsg(k))
		require.NotNil(t, cmd, k)
		assert.Empty(t, next.View())
	}
}

func TestStatusAndLogMessages(t *testing.T) {
	app := newTestApp(t, &HostState{Open: true})

	next, cmd := app.Update(features.StatusMsg{Text: "copied"})
	app = next.(AppModel)
	assert.NotNil(t, cmd)
	assert.Equal(t, "copied", app.Panel().StatusBarMessage)
	assert.Equal(t, model.StatusBarSuccess, app.Panel().StatusBarMessageType)

	next, _ = app.Update(model.ClearStatusBarMsg{})
	app = next.(AppModel)
	assert.Empty(t, app.Panel().StatusBarMessage)
}

func TestSettingsChangedReachesModel(t *testing.T) {
	app := newTestApp(t, &HostState{Open: true})
	s := features.Settings{DarkMode: true, CompactTabs: true}
	next, _ := app.Update(features.SettingsChangedMsg{Settings: s})
	app = next.(AppModel)
	assert.Equal(t, s, app.Panel().Settings)
}

func TestLogOverlayCopy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	defer func() { writeClipboard = orig }()

	app := newTestApp(t, &HostState{Open: true})
	model.AddRawLineToActivityLog(app.Panel(), "one")
	model.AddRawLineToActivityLog(app.Panel(), "two")

	app = send(t, app, keyMsg("L"))
	require.Equal(t, model.OverlayLog, app.Panel().Overlay)
	next, _ := app.Update(keyMsg("y"))
	app = next.(AppModel)
	assert.Equal(t, "one\ntwo", copied)
	assert.True(t, strings.Contains(app.Panel().StatusBarMessage, "copied"))

	app = send(t, app, keyMsg("L"))
	assert.Equal(t, model.OverlayNone, app.Panel().Overlay)
}
