package features

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/patrickmn/go-cache"
)

// LongLineWidth is the display width above which a line counts as long.
const LongLineWidth = 100

// Report holds the metrics computed for a code snippet.
type Report struct {
	Language  string
	Lines     int
	Blank     int
	Comments  int
	Functions int
	MaxDepth  int
	LongLines int
	Todos     int
}

// Code is the number of lines that are neither blank nor comments.
func (r Report) Code() int {
	return r.Lines - r.Blank - r.Comments
}

// String renders the report as aligned plain text.
func (r Report) String() string {
	rows := []struct {
		k string
		v string
	}{
		{"language", r.Language},
		{"lines", strconv.Itoa(r.Lines)},
		{"code", strconv.Itoa(r.Code())},
		{"blank", strconv.Itoa(r.Blank)},
		{"comments", strconv.Itoa(r.Comments)},
		{"functions", strconv.Itoa(r.Functions)},
		{"max depth", strconv.Itoa(r.MaxDepth)},
		{"long lines", strconv.Itoa(r.LongLines)},
		{"todo markers", strconv.Itoa(r.Todos)},
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%-13s %s\n", row.k+":", row.v)
	}
	return b.String()
}

// DetectLanguage makes a best guess from a few telltale tokens.
func DetectLanguage(src string) string {
	switch {
	case strings.Contains(src, "package ") && strings.Contains(src, "func "):
		return "go"
	case strings.Contains(src, "def ") && strings.Contains(src, ":\n"):
		return "python"
	case strings.Contains(src, "fn ") && strings.Contains(src, "let "):
		return "rust"
	case strings.Contains(src, "function ") || strings.Contains(src, "=> {") || strings.Contains(src, "const "):
		return "javascript"
	default:
		return "text"
	}
}

func isFunctionLine(lang, line string) bool {
	switch lang {
	case "go":
		return strings.HasPrefix(line, "func ")
	case "python":
		return strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "async def ")
	case "rust":
		return strings.HasPrefix(line, "fn ") || strings.HasPrefix(line, "pub fn ")
	case "javascript":
		return strings.HasPrefix(line, "function ") || strings.Contains(line, "=> {") ||
			strings.HasPrefix(line, "async function ")
	}
	return false
}

func isCommentLine(line string) bool {
	for _, p := range []string{"//", "#", "/*", "*", "--"} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Analyze computes a Report for src. Brace depth ignores braces inside
// string literals only on a best effort basis.
func Analyze(src string) Report {
	r := Report{Language: DetectLanguage(src)}
	if src == "" {
		return r
	}
	depth := 0
	for _, raw := range strings.Split(strings.TrimRight(src, "\n"), "\n") {
		r.Lines++
		if runewidth.StringWidth(raw) > LongLineWidth {
			r.LongLines++
		}
		upper := strings.ToUpper(raw)
		if strings.Contains(upper, "TODO") || strings.Contains(upper, "FIXME") {
			r.Todos++
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			r.Blank++
			continue
		}
		if isCommentLine(line) {
			r.Comments++
			continue
		}
		if isFunctionLine(r.Language, line) {
			r.Functions++
		}
		inString := rune(0)
		for _, ch := range line {
			switch {
			case inString != 0:
				if ch == inString {
					inString = 0
				}
			case ch == '"' || ch == '\'' || ch == '`':
				inString = ch
			case ch == '{':
				depth++
				if depth > r.MaxDepth {
					r.MaxDepth = depth
				}
			case ch == '}':
				if depth > 0 {
					depth--
				}
			}
		}
	}
	return r
}

func contentKey(src string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(src))
	return strconv.FormatUint(h.Sum64(), 16)
}

// AnalyzerUnit lets the learner paste code and inspect metrics.
type AnalyzerUnit struct {
	editor  textarea.Model
	reports *cache.Cache
	last    *Report
	focused bool
}

// NewAnalyzerUnit creates the analysis unit.
func NewAnalyzerUnit() *AnalyzerUnit {
	ta := textarea.New()
	ta.Placeholder = "Paste code here, then press ctrl+r"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	return &AnalyzerUnit{
		editor:  ta,
		reports: cache.New(30*time.Minute, time.Hour),
	}
}

func (a *AnalyzerUnit) ID() panel.TabID { return panel.TabAnalysis }

func (a *AnalyzerUnit) Init() tea.Cmd { return nil }

func (a *AnalyzerUnit) Focus() tea.Cmd {
	a.focused = true
	return a.editor.Focus()
}

func (a *AnalyzerUnit) Blur() {
	a.focused = false
	a.editor.Blur()
}

// SetSource replaces the editor content.
func (a *AnalyzerUnit) SetSource(src string) {
	a.editor.SetValue(src)
}

// LastReport returns the most recent report, if any.
func (a *AnalyzerUnit) LastReport() (Report, bool) {
	if a.last == nil {
		return Report{}, false
	}
	return *a.last, true
}

// Run analyzes the current editor content, reusing cached results.
func (a *AnalyzerUnit) Run() Report {
	src := a.editor.Value()
	key := contentKey(src)
	if cached, ok := a.reports.Get(key); ok {
		r := cached.(Report)
		a.last = &r
		return r
	}
	r := Analyze(src)
	a.reports.Set(key, r, cache.DefaultExpiration)
	a.last = &r
	return r
}

func (a *AnalyzerUnit) Update(msg tea.Msg, _ Props) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !a.focused {
		return nil
	}
	switch key.String() {
	case "ctrl+r":
		r := a.Run()
		return statusCmd(fmt.Sprintf("Analyzed %d lines (%s)", r.Lines, r.Language), false)
	case "ctrl+y":
		if a.last == nil {
			return statusCmd("Nothing to copy yet, press ctrl+r first", true)
		}
		return copyToClipboard("Report", a.last.String())
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return cmd
}

func (a *AnalyzerUnit) View(_ Props, width, height int) string {
	if width < 4 || height < 4 {
		return ""
	}
	reportView := design.DimStyle.Render("No report yet.")
	if a.last != nil {
		reportView = strings.TrimRight(a.last.String(), "\n")
	}
	reportHeight := lipgloss.Height(reportView)
	editorHeight := height - reportHeight - 2
	if editorHeight < 2 {
		editorHeight = 2
	}
	a.editor.SetWidth(width)
	a.editor.SetHeight(editorHeight)

	title := design.SubtitleStyle.Render("Report")
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), title, reportView)
}

