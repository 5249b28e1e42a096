package view

import (
	"fmt"
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/components"
	"assistpanel/internal/tui/design"
	"assistpanel/internal/tui/model"
)

const hostTitle = "Lesson viewer"

// RenderHostHeader draws the lesson viewer's title line.
func RenderHostHeader(ctx *panel.ContextPayload, width int) string {
	title := design.SafeIcon(design.IconLesson) + hostTitle
	if l := ctx.Lesson(); l != nil && l.Title != "" {
		title += " · " + l.Title
	}
	return design.HostHeaderStyle.Width(width).Render(title)
}

// RenderLesson draws the host body: a placeholder page for the current
// lesson, or a short index when no lesson is open.
func RenderLesson(ctx *panel.ContextPayload) string {
	var b strings.Builder
	l := ctx.Lesson()
	if l == nil {
		b.WriteString(design.TitleStyle.Render("No lesson open"))
		b.WriteString("\n\n")
		b.WriteString(design.TextSecondaryStyle.Render("Start the viewer with --lesson-id and --lesson-title to open one."))
		return b.String()
	}

	title := l.Title
	if title == "" {
		title = l.ID
	}
	b.WriteString(design.TitleStyle.Render(title))
	b.WriteString("\n")
	if l.ID != "" {
		b.WriteString(design.DimStyle.Render("lesson " + l.ID))
		b.WriteString("\n")
	}
	if len(l.Tags) > 0 {
		b.WriteString(design.SubtitleStyle.Render("topics: " + strings.Join(l.Tags, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(design.TextStyle.Render("Open the assistant with 'a' to ask about this lesson."))
	return b.String()
}

// RenderHostStatusBar shows the host-side state and keys.
func RenderHostStatusBar(open bool, tab panel.TabID, online bool, width int) string {
	state := "closed"
	if open {
		state = "open"
	}
	pin := "user"
	if tab != "" {
		pin = string(tab)
	}
	conn := "online"
	if !online {
		conn = "offline"
	}
	left := fmt.Sprintf("panel %s · tab %s · %s", state, pin, conn)
	hints := make([]string, 0, 5)
	for _, b := range model.DefaultHostKeyMap().ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	right := strings.Join(hints, " · ")
	return components.NewStatusBar(width).
		WithLeftText(left).
		WithRightText(right).
		Render()
}
