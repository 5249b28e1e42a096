package features

import (
	"fmt"
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Provider describes an assistant backend the learner can configure.
type Provider struct {
	ID        string
	Name      string
	KeyPrefix string
	NeedsKey  bool
}

var providers = []Provider{
	{ID: "openai", Name: "OpenAI", KeyPrefix: "sk-", NeedsKey: true},
	{ID: "anthropic", Name: "Anthropic", KeyPrefix: "sk-ant-", NeedsKey: true},
	{ID: "gemini", Name: "Google Gemini", NeedsKey: true},
	{ID: "local", Name: "Local model", NeedsKey: false},
}

// Providers returns the selectable providers.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ValidateKey checks the shape of a key for p.
func (p Provider) ValidateKey(key string) error {
	key = strings.TrimSpace(key)
	if !p.NeedsKey {
		return nil
	}
	if key == "" {
		return fmt.Errorf("%s needs an API key", p.Name)
	}
	if strings.ContainsAny(key, " \t") {
		return fmt.Errorf("API key must not contain whitespace")
	}
	if p.KeyPrefix != "" && !strings.HasPrefix(key, p.KeyPrefix) {
		return fmt.Errorf("%s keys start with %q", p.Name, p.KeyPrefix)
	}
	return nil
}

// MaskKey hides all but the edges of a key.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) <= 8 {
		return strings.Repeat("•", len(r))
	}
	return string(r[:4]) + strings.Repeat("•", 4) + string(r[len(r)-4:])
}

// APIConfigUnit selects a provider and holds its key in memory.
type APIConfigUnit struct {
	cursor  int
	active  string
	keys    map[string]string
	input   textinput.Model
	editing bool
	err     error
	focused bool
}

// NewAPIConfigUnit creates the unit with the local provider active.
func NewAPIConfigUnit() *APIConfigUnit {
	ti := textinput.New()
	ti.Placeholder = "paste API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Prompt = "key: "
	return &APIConfigUnit{
		active: "local",
		keys:   map[string]string{},
		input:  ti,
	}
}

func (a *APIConfigUnit) ID() panel.TabID { return panel.TabAPI }

func (a *APIConfigUnit) Init() tea.Cmd { return nil }

func (a *APIConfigUnit) Focus() tea.Cmd {
	a.focused = true
	if a.editing {
		return a.input.Focus()
	}
	return nil
}

func (a *APIConfigUnit) Blur() {
	a.focused = false
	a.input.Blur()
}

// Active returns the active provider id.
func (a *APIConfigUnit) Active() string { return a.active }

// Key returns the stored key for a provider.
func (a *APIConfigUnit) Key(provider string) (string, bool) {
	k, ok := a.keys[provider]
	return k, ok
}

// Editing reports whether the key input is open.
func (a *APIConfigUnit) Editing() bool { return a.editing }

// HandleEscape cancels a key edit.
func (a *APIConfigUnit) HandleEscape() (bool, tea.Cmd) {
	if !a.editing {
		return false, nil
	}
	a.editing = false
	a.err = nil
	a.input.Reset()
	a.input.Blur()
	return true, nil
}

func (a *APIConfigUnit) selected() Provider { return providers[a.cursor] }

func (a *APIConfigUnit) Update(msg tea.Msg, _ Props) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !a.focused {
		return nil
	}
	if a.editing {
		if key.String() == "enter" {
			return a.save()
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return cmd
	}
	switch key.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(providers)-1 {
			a.cursor++
		}
	case "enter", " ":
		p := a.selected()
		if !p.NeedsKey {
			a.active = p.ID
			return statusCmd("Using "+p.Name, false)
		}
		a.editing = true
		a.err = nil
		a.input.SetValue(a.keys[p.ID])
		return a.input.Focus()
	case "x", "delete":
		p := a.selected()
		if _, ok := a.keys[p.ID]; ok {
			delete(a.keys, p.ID)
			if a.active == p.ID {
				a.active = "local"
			}
			return statusCmd("Removed key for "+p.Name, false)
		}
	}
	return nil
}

func (a *APIConfigUnit) save() tea.Cmd {
	p := a.selected()
	value := strings.TrimSpace(a.input.Value())
	if err := p.ValidateKey(value); err != nil {
		a.err = err
		return nil
	}
	a.keys[p.ID] = value
	a.active = p.ID
	a.editing = false
	a.err = nil
	a.input.Reset()
	a.input.Blur()
	return statusCmd("Saved key for "+p.Name+" (this session only)", false)
}

func (a *APIConfigUnit) View(_ Props, width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}
	lines := []string{design.SubtitleStyle.Render("Assistant provider")}
	for i, p := range providers {
		marker := "○"
		if p.ID == a.active {
			marker = "●"
		}
		row := marker + " " + p.Name
		if k, ok := a.keys[p.ID]; ok {
			row += design.DimStyle.Render("  " + MaskKey(k))
		} else if p.NeedsKey {
			row += design.DimStyle.Render("  no key")
		}
		if i == a.cursor {
			lines = append(lines, design.ListItemSelectedStyle.Render("▸ "+row))
		} else {
			lines = append(lines, design.ListItemStyle.Render("  "+row))
		}
	}
	lines = append(lines, "")
	if a.editing {
		a.input.Width = width - len(a.input.Prompt) - 1
		lines = append(lines, a.input.View())
		if a.err != nil {
			lines = append(lines, design.TextErrorStyle.Render(a.err.Error()))
		}
	} else {
		lines = append(lines, design.DimStyle.Render("Keys are kept in memory and dropped on exit."))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
