package features

import (
	"fmt"
	"strings"
	"time"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
)

// ChatRole tells who wrote a transcript entry.
type ChatRole string

const (
	RoleLearner   ChatRole = "you"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	ID   uuid.UUID
	Role ChatRole
	Text string
	At   time.Time
}

type chatReplyMsg struct {
	session uuid.UUID
	replyTo uuid.UUID
	text    string
}

const defaultReplyDelay = 600 * time.Millisecond

// ChatUnit is the chat interface.
type ChatUnit struct {
	session    uuid.UUID
	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model
	messages   []ChatMessage
	pending    uuid.UUID
	replyDelay time.Duration
	focused    bool
	dirty      bool
}

// NewChatUnit creates a chat with a fresh session id.
func NewChatUnit(replyDelay time.Duration) *ChatUnit {
	if replyDelay <= 0 {
		replyDelay = defaultReplyDelay
	}
	ti := textinput.New()
	ti.Placeholder = "Ask about this lesson..."
	ti.CharLimit = 500
	ti.Prompt = "› "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = design.IconPrimaryStyle

	return &ChatUnit{
		session:    uuid.New(),
		input:      ti,
		transcript: viewport.New(0, 0),
		spinner:    s,
		replyDelay: replyDelay,
	}
}

func (c *ChatUnit) ID() panel.TabID { return panel.TabChat }

func (c *ChatUnit) Init() tea.Cmd { return nil }

func (c *ChatUnit) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

func (c *ChatUnit) Blur() {
	c.focused = false
	c.input.Blur()
}

// Messages returns a copy of the transcript.
func (c *ChatUnit) Messages() []ChatMessage {
	out := make([]ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Session identifies this chat for its lifetime.
func (c *ChatUnit) Session() uuid.UUID { return c.session }

// Waiting reports whether a reply is being composed.
func (c *ChatUnit) Waiting() bool { return c.pending != uuid.Nil }

func (c *ChatUnit) Update(msg tea.Msg, props Props) tea.Cmd {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.session != c.session || msg.replyTo != c.pending {
			return nil
		}
		c.pending = uuid.Nil
		c.append(RoleAssistant, msg.text)
		return nil

	case spinner.TickMsg:
		if !c.Waiting() {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !c.focused {
			return nil
		}
		switch msg.String() {
		case "enter":
			return c.submit(props)
		case "ctrl+y":
			return copyToClipboard("Transcript", c.Transcript())
		case "ctrl+l":
			c.messages = nil
			c.pending = uuid.Nil
			c.dirty = true
			return nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			c.transcript, cmd = c.transcript.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
	return nil
}

func (c *ChatUnit) submit(props Props) tea.Cmd {
	question := strings.TrimSpace(c.input.Value())
	if question == "" {
		return nil
	}
	c.input.Reset()
	asked := c.append(RoleLearner, question)

	if !props.IsOnline {
		c.append(RoleSystem, "You are offline. The assistant will answer once you reconnect.")
		return nil
	}

	c.pending = asked.ID
	session, delay := c.session, c.replyDelay
	text := ComposeReply(question, props.Context)
	reply := tea.Tick(delay, func(time.Time) tea.Msg {
		return chatReplyMsg{session: session, replyTo: asked.ID, text: text}
	})
	return tea.Batch(c.spinner.Tick, reply)
}

func (c *ChatUnit) append(role ChatRole, text string) ChatMessage {
	m := ChatMessage{ID: uuid.New(), Role: role, Text: text, At: time.Now()}
	c.messages = append(c.messages, m)
	c.dirty = true
	return m
}

// Transcript renders the conversation as plain text.
func (c *ChatUnit) Transcript() string {
	var b strings.Builder
	for _, m := range c.messages {
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.At.Format("15:04"), m.Role, m.Text)
	}
	return b.String()
}

// ComposeReply builds the local assistant answer. It only looks at the
// context payload; nothing leaves the process.
func ComposeReply(question string, ctx *panel.ContextPayload) string {
	var b strings.Builder
	lesson := ctx.Lesson()
	if ctx.IsLearning() && lesson != nil && lesson.Title != "" {
		fmt.Fprintf(&b, "In the lesson %q, %q comes down to the examples in the current section. ", lesson.Title, question)
		if len(lesson.Tags) > 0 {
			fmt.Fprintf(&b, "Related topics: %s. ", strings.Join(lesson.Tags, ", "))
		}
		b.WriteString("Open Knowledge for a worked example or paste your code into Analyze.")
		return b.String()
	}
	fmt.Fprintf(&b, "You asked %q. ", question)
	b.WriteString("Open a lesson to get answers tied to its material, or search the Knowledge tab.")
	return b.String()
}

func (c *ChatUnit) View(props Props, width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	var header string
	if !props.IsOnline {
		header = design.TextWarningStyle.Render("offline: questions are kept but not answered")
	} else if lesson := props.Context.Lesson(); lesson != nil && lesson.Title != "" {
		header = design.TextSecondaryStyle.Render("lesson: " + lesson.Title)
	}

	footer := c.input.View()
	if c.Waiting() {
		footer = c.spinner.View() + " assistant is typing..."
	}

	used := lipgloss.Height(footer) + 1
	if header != "" {
		used += lipgloss.Height(header)
	}
	vpHeight := height - used
	if vpHeight < 1 {
		vpHeight = 1
	}

	c.input.Width = width - lipgloss.Width(c.input.Prompt) - 1
	resized := c.transcript.Width != width || c.transcript.Height != vpHeight
	c.transcript.Width = width
	c.transcript.Height = vpHeight
	if c.dirty || resized {
		c.transcript.SetContent(c.renderMessages(width))
		c.transcript.GotoBottom()
		c.dirty = false
	}

	sep := design.DimStyle.Render(strings.Repeat("─", width))
	parts := []string{}
	if header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, c.transcript.View(), sep, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (c *ChatUnit) renderMessages(width int) string {
	if len(c.messages) == 0 {
		return design.DimStyle.Render("No messages yet. Press enter to focus the input.")
	}
	lines := make([]string, 0, len(c.messages))
	for _, m := range c.messages {
		var who string
		switch m.Role {
		case RoleLearner:
			who = design.AgentPromptStyle.Render("you")
		case RoleAssistant:
			who = design.TextInfoStyle.Render("assistant")
		default:
			who = design.TextWarningStyle.Render("system")
		}
		lines = append(lines, who+"\n"+wordwrap.String(m.Text, width-2))
	}
	return strings.Join(lines, "\n\n")
}
