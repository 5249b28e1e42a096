package components

import (
	"strings"
	"testing"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPanel_Render_EdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		content string
	}{
		{"zero dimensions", 0, 0, "This is test content"},
		{"negative dimensions", -10, -5, "This is test content"},
		{"empty content", 40, 10, ""},
		{"very long content", 20, 8, strings.Repeat("This is a very long line that should be truncated. ", 10)},
		{"multiline content exceeding height", 30, 8, "Line 1\nLine 2\nLine 3\nLine 4\nLine 5\nLine 6\nLine 7\nLine 8\nLine 9\nLine 10"},
	}

	for _, pt := range []PanelType{PanelTypeEmbedded, PanelTypeFloating} {
		for _, tt := range tests {
			t.Run(pt.String()+"/"+tt.name, func(t *testing.T) {
				p := NewPanel(pt).
					WithHeader("Assistant").
					WithContent(tt.content).
					WithDimensions(tt.width, tt.height)

				output := p.Render()

				assert.NotEmpty(t, output)
				assert.True(t, p.Width >= design.MinPanelWidth)
				assert.True(t, p.Height >= design.MinPanelHeight)
				assert.Equal(t, p.Height, lipgloss.Height(output))
				assert.LessOrEqual(t, lipgloss.Width(output), p.Width)
			})
		}
	}
}

func TestPanel_InnerSize(t *testing.T) {
	p := NewPanel(PanelTypeEmbedded).
		WithHeader("Title").
		WithTabs("tabs").
		WithDimensions(40, 20)
	w, h := p.InnerSize()
	// border 2 + padding 2 horizontally, border 2 vertically, header 1, tabs 1 + rule 1
	assert.Equal(t, 36, w)
	assert.Equal(t, 15, h)
}

func TestTabStrip_Render(t *testing.T) {
	strip := NewTabStrip(panel.VisibleTabs(panel.ModeFloating)).
		WithActive(panel.TabKnowledge).
		WithWidth(200)
	out := strip.Render()
	for _, d := range panel.VisibleTabs(panel.ModeFloating) {
		assert.Contains(t, out, d.Label)
	}
	assert.Contains(t, out, "3 ")

	embedded := NewTabStrip(panel.VisibleTabs(panel.ModeEmbedded)).WithWidth(200).Render()
	assert.Contains(t, embedded, "Knowledge")
	assert.NotContains(t, embedded, "Settings")
}

func TestTabStrip_FallsBackToCompact(t *testing.T) {
	out := NewTabStrip(panel.VisibleTabs(panel.ModeFloating)).WithWidth(30).Render()
	assert.NotContains(t, out, "Knowledge")
	assert.LessOrEqual(t, lipgloss.Width(out), 30)
}

func TestHeader_Render(t *testing.T) {
	out := NewHeader("Assistant").WithClose(true).WithWidth(40).Render()
	assert.Contains(t, out, "Assistant")
	assert.Contains(t, out, design.IconClose)

	noClose := NewHeader("Assistant").WithWidth(40).WithDescription("Ask about the lesson").Render()
	assert.NotContains(t, noClose, design.IconClose)
	assert.Equal(t, 2, lipgloss.Height(noClose))

	// close stays visible on narrow widths
	narrow := NewHeader("A very long assistant title").WithClose(true).WithWidth(12).Render()
	assert.Contains(t, narrow, design.IconClose)
}

func TestStatusBar_Render(t *testing.T) {
	bar := NewStatusBar(40).WithLeftText("left").WithRightText("right")
	out := bar.Render()
	assert.Contains(t, out, "left")
	assert.Contains(t, out, "right")

	bar.WithMessage("saved", model.StatusBarSuccess)
	out = bar.Render()
	assert.Contains(t, out, "saved")
	assert.NotContains(t, out, "left")
}

func TestStatusIndicator_Render(t *testing.T) {
	assert.Contains(t, NewStatusIndicator(StatusTypeOffline).Render(), "offline")
	assert.Contains(t, NewStatusIndicator(StatusTypePinned).WithText("knowledge").Render(), "knowledge")
	assert.NotContains(t, NewStatusIndicator(StatusTypeOnline).IconOnly().Render(), "online")
}

func TestLayout(t *testing.T) {
	l := NewLayout(120, 40)
	host, p := l.FloatingSplit()
	assert.Equal(t, 120, host+p)
	assert.Equal(t, design.FloatingPanelWidth(120), p)

	left, right := l.SplitVertical(0.6)
	assert.Equal(t, 72, left)
	assert.Equal(t, 48, right)

	assert.Equal(t, 37, l.CalculateContentArea(2, 1))
}
