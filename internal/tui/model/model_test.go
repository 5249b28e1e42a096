package model

import (
	"testing"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/transition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, props Props, opts ...Option) *Model {
	t.Helper()
	opts = append([]Option{
		WithTransition(transition.None{}),
		WithFeatureOptions(features.Options{WorkspaceDir: t.TempDir()}),
	}, opts...)
	m, err := New(props, opts...)
	require.NoError(t, err)
	return m
}

func TestNew_SeedsActiveTab(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  panel.TabID
		mode  panel.Mode
	}{
		{"uncontrolled floating", Props{IsOpen: true}, panel.TabChat, panel.ModeFloating},
		{"controlled floating", Props{IsOpen: true, ActiveTab: panel.TabSettings}, panel.TabSettings, panel.ModeFloating},
		{"controlled embedded", Props{Embedded: true, ActiveTab: panel.TabKnowledge}, panel.TabKnowledge, panel.ModeEmbedded},
		{"embedded clamps hidden tab", Props{Embedded: true, ActiveTab: panel.TabAPI}, panel.TabChat, panel.ModeEmbedded},
		{"unknown id falls back", Props{IsOpen: true, ActiveTab: "quiz"}, panel.TabChat, panel.ModeFloating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, tt.props)
			assert.Equal(t, tt.want, m.Active)
			assert.Equal(t, tt.mode, m.Mode)
			assert.Equal(t, tt.want, m.ActiveUnit().ID())
		})
	}
}

func TestNew_EmbeddedIsAlwaysMounted(t *testing.T) {
	m := newTestModel(t, Props{Embedded: true, IsOpen: false})
	assert.True(t, m.Mounted())
	assert.True(t, m.Visibility.Open())
}

func TestSetProps_HostWins(t *testing.T) {
	m := newTestModel(t, Props{IsOpen: true})
	m.SelectTab(panel.TabFilesystem)
	assert.Equal(t, panel.TabFilesystem, m.Active)

	m.SetProps(Props{IsOpen: true, ActiveTab: panel.TabKnowledge})
	assert.Equal(t, panel.TabKnowledge, m.Active)
	assert.True(t, m.Tabs.Controlled())

	// user selection has no visible effect while pinned
	m.SelectTab(panel.TabSettings)
	assert.Equal(t, panel.TabKnowledge, m.Active)

	// releasing keeps the synced-down value
	m.SetProps(Props{IsOpen: true})
	assert.Equal(t, panel.TabKnowledge, m.Active)
	m.SelectTab(panel.TabAPI)
	assert.Equal(t, panel.TabAPI, m.Active)
}

func TestSetProps_ModeIsFixed(t *testing.T) {
	m := newTestModel(t, Props{Embedded: true})
	m.SetProps(Props{Embedded: false, IsOpen: true})
	assert.Equal(t, panel.ModeEmbedded, m.Mode)
	assert.True(t, m.Props.Embedded)
	assert.Len(t, m.VisibleTabs(), 3)
}

func TestSelectTab_EmbeddedRejectsHiddenTabs(t *testing.T) {
	m := newTestModel(t, Props{Embedded: true})
	m.SelectTab(panel.TabSettings)
	assert.Equal(t, panel.TabChat, m.Active)
	m.SelectTab(panel.TabAnalysis)
	assert.Equal(t, panel.TabAnalysis, m.Active)
}

func TestRequestClose_Idempotent(t *testing.T) {
	calls := 0
	m := newTestModel(t, Props{IsOpen: true, OnClose: func() { calls++ }})

	cmd := m.RequestClose(CloseFromKey)
	require.NotNil(t, cmd)
	assert.Nil(t, m.RequestClose(CloseFromButton))
	assert.Nil(t, m.RequestClose(CloseFromOverlay))

	assert.Equal(t, 1, calls)
	assert.False(t, m.Visibility.Open())
	assert.Equal(t, panel.PhaseExiting, m.Visibility.Phase())
	assert.True(t, m.Mounted())
}

func TestRequestClose_EmbeddedNeverCallsOnClose(t *testing.T) {
	calls := 0
	m := newTestModel(t, Props{Embedded: true, OnClose: func() { calls++ }})
	assert.Nil(t, m.RequestClose(CloseFromKey))
	assert.Nil(t, m.HandleEscape())
	assert.Equal(t, 0, calls)
	assert.True(t, m.Mounted())
}

func TestHandleFrame_DropsStaleFrames(t *testing.T) {
	m := newTestModel(t, Props{IsOpen: true})
	// finish mount transition
	m.HandleFrame(transition.FrameMsg{Seq: m.Visibility.Seq(), Direction: transition.Enter, Progress: 1, Done: true})
	require.Equal(t, panel.PhaseIdle, m.Visibility.Phase())

	m.SetProps(Props{IsOpen: false})
	exitSeq := m.Visibility.Seq()
	m.SetProps(Props{IsOpen: true})
	require.True(t, m.Visibility.Open())

	// the exit frame arrives late and must not unmount the reopened panel
	assert.Nil(t, m.HandleFrame(transition.FrameMsg{Seq: exitSeq, Direction: transition.Exit, Progress: 1, Done: true}))
	assert.Equal(t, panel.PhaseEntering, m.Visibility.Phase())

	m.HandleFrame(transition.FrameMsg{Seq: m.Visibility.Seq(), Direction: transition.Enter, Progress: 1, Done: true})
	assert.Equal(t, panel.PhaseIdle, m.Visibility.Phase())
	assert.True(t, m.Mounted())
}

func TestHandleFrame_ExitUnmounts(t *testing.T) {
	m := newTestModel(t, Props{IsOpen: true})
	m.SetProps(Props{IsOpen: false})
	seq := m.Visibility.Seq()

	cmd := m.HandleFrame(transition.FrameMsg{Seq: seq, Direction: transition.Exit, Progress: 1, Done: true})
	require.NotNil(t, cmd)
	assert.Equal(t, UnmountedMsg{Seq: seq}, cmd())
	assert.False(t, m.Mounted())
}

func TestHandleEscape_Unwinds(t *testing.T) {
	calls := 0
	m := newTestModel(t, Props{IsOpen: true, OnClose: func() { calls++ }})

	m.Overlay = OverlayHelp
	m.HandleEscape()
	assert.Equal(t, OverlayNone, m.Overlay)

	m.FocusUnit()
	m.HandleEscape()
	assert.False(t, m.UnitFocused)
	assert.Equal(t, 0, calls)

	m.HandleEscape()
	assert.Equal(t, 1, calls)
}

func TestResolve_PublishesSnapshot(t *testing.T) {
	store := &panel.StateStore{}
	m := newTestModel(t, Props{IsOpen: true, ActiveTab: panel.TabAPI}, WithStore(store))

	st, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, panel.TabAPI, st.ActiveTab)
	assert.True(t, st.IsOpen)
	assert.True(t, st.Controlled)

	m.RequestClose(CloseFromKey)
	st, _ = store.Load()
	assert.False(t, st.IsOpen)
}

func TestSetStatusMessage(t *testing.T) {
	m := newTestModel(t, Props{IsOpen: true})
	cmd := m.SetStatusMessage("hello", StatusBarSuccess, 0)
	require.NotNil(t, cmd)
	assert.Equal(t, "hello", m.StatusBarMessage)
	first := m.StatusBarClearCancel

	m.SetStatusMessage("again", StatusBarInfo, 0)
	assert.NotEqual(t, first, m.StatusBarClearCancel)

	m.ClearStatusMessage()
	assert.Empty(t, m.StatusBarMessage)
	assert.Nil(t, m.StatusBarClearCancel)
}

func TestAddRawLineToActivityLog_Caps(t *testing.T) {
	m := newTestModel(t, Props{IsOpen: true})
	for i := 0; i < MaxActivityLogLines+5; i++ {
		AddRawLineToActivityLog(m, "line")
	}
	assert.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.True(t, m.ActivityLogDirty)
}
