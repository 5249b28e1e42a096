package view

import (
	"strings"
	"testing"

	"assistpanel/internal/features"
	"assistpanel/internal/panel"
	"assistpanel/internal/tui/model"
	"assistpanel/internal/tui/transition"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanel(t *testing.T, props model.Props) *model.Model {
	t.Helper()
	m, err := model.New(props,
		model.WithTransition(transition.None{}),
		model.WithFeatureOptions(features.Options{WorkspaceDir: t.TempDir()}),
	)
	require.NoError(t, err)
	m.HandleFrame(transition.FrameMsg{Seq: m.Visibility.Seq(), Direction: transition.Enter, Progress: 1, Done: true})
	return m
}

func screen(m *model.Model) Screen {
	return Screen{
		Width:     140,
		Height:    40,
		Header:    RenderHostHeader(nil, 140),
		Body:      "lesson body",
		StatusBar: RenderHostStatusBar(true, "", true, 140),
		Panel:     m,
	}
}

func TestRender_WaitsForSize(t *testing.T) {
	assert.Contains(t, Render(Screen{}), "Initializing")
}

func TestRender_FloatingClosedShowsHostOnly(t *testing.T) {
	m := newPanel(t, model.Props{IsOpen: false})
	out := Render(screen(m))
	assert.Contains(t, out, "lesson body")
	assert.NotContains(t, out, "Ask the assistant about the lesson")
	assert.Equal(t, 40, lipgloss.Height(out))
}

func TestRender_FloatingOpen(t *testing.T) {
	m := newPanel(t, model.Props{IsOpen: true, IsOnline: true})
	out := Render(screen(m))
	assert.Contains(t, out, "lesson body")
	assert.Contains(t, out, "Ask the assistant about the lesson")
	assert.Contains(t, out, "Assistant")
	assert.Equal(t, 40, lipgloss.Height(out))
}

func TestRender_FloatingEnteringStartsOffscreen(t *testing.T) {
	m, err := model.New(model.Props{IsOpen: true},
		model.WithFeatureOptions(features.Options{WorkspaceDir: t.TempDir()}))
	require.NoError(t, err)
	require.Equal(t, panel.PhaseEntering, m.Visibility.Phase())

	out := Render(screen(m))
	assert.NotContains(t, out, "Ask the assistant about the lesson")
}

func TestRender_EmbeddedSideBySide(t *testing.T) {
	m := newPanel(t, model.Props{Embedded: true, ActiveTab: panel.TabKnowledge})
	out := Render(screen(m))
	assert.Contains(t, out, "lesson body")
	assert.Contains(t, out, "Knowledge")
	assert.NotContains(t, out, "Settings")
}

func TestRenderPanel(t *testing.T) {
	t.Run("not mounted", func(t *testing.T) {
		m := newPanel(t, model.Props{})
		assert.Empty(t, RenderPanel(m, 60, 30))
	})
	t.Run("offline indicator", func(t *testing.T) {
		m := newPanel(t, model.Props{IsOpen: true, IsOnline: false})
		assert.Contains(t, RenderPanel(m, 60, 30), "offline")
	})
	t.Run("lesson title in description", func(t *testing.T) {
		ctx := &panel.ContextPayload{Mode: panel.ContextLearning, CurrentLesson: &panel.LessonRef{ID: "l1", Title: "Loops"}}
		m := newPanel(t, model.Props{IsOpen: true, Context: ctx})
		assert.Contains(t, RenderPanel(m, 70, 30), "Loops")
	})
	t.Run("status message replaces help", func(t *testing.T) {
		m := newPanel(t, model.Props{IsOpen: true})
		m.StatusBarMessage = "saved"
		assert.Contains(t, RenderPanel(m, 60, 30), "saved")
	})
}

func TestRenderPanel_Overlays(t *testing.T) {
	m := newPanel(t, model.Props{IsOpen: true})

	m.Overlay = model.OverlayHelp
	out := RenderPanel(m, 60, 30)
	assert.Contains(t, out, "previous tab")
	assert.Contains(t, out, "network")

	model.AddRawLineToActivityLog(m, "12:00:00.000 [INFO] [Panel] hello")
	m.Overlay = model.OverlayLog
	out = RenderPanel(m, 60, 30)
	assert.Contains(t, out, "Activity log")
	assert.Contains(t, out, "hello")
	assert.False(t, m.ActivityLogDirty)
}

func TestPrepareLogContent(t *testing.T) {
	lines := []string{
		"[INFO] short",
		"[ERROR] " + strings.Repeat("word ", 20),
	}
	out := PrepareLogContent(lines, 30)
	for _, l := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), 30)
	}
	assert.Contains(t, out, "short")
	assert.Greater(t, lipgloss.Height(out), 2)
}

func TestRenderLesson(t *testing.T) {
	assert.Contains(t, RenderLesson(nil), "No lesson open")

	ctx := &panel.ContextPayload{CurrentLesson: &panel.LessonRef{ID: "go-101", Title: "Goroutines", Tags: []string{"concurrency"}}}
	out := RenderLesson(ctx)
	assert.Contains(t, out, "Goroutines")
	assert.Contains(t, out, "go-101")
	assert.Contains(t, out, "concurrency")
}

func TestRenderHostStatusBar(t *testing.T) {
	out := RenderHostStatusBar(true, panel.TabKnowledge, false, 140)
	assert.Contains(t, out, "panel open · tab knowledge · offline")
	assert.Contains(t, out, "O network")
}
