package features

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"
)

//go:embed articles/*.md
var builtinFS embed.FS

// Article is one knowledge base entry.
type Article struct {
	Slug  string
	Title string
	Tags  []string
	Body  string
}

// BuiltinArticles returns the articles shipped with the binary.
func BuiltinArticles() []Article {
	sub, err := fs.Sub(builtinFS, "articles")
	if err != nil {
		return nil
	}
	articles, err := LoadArticles(sub)
	if err != nil {
		return nil
	}
	return articles
}

// LoadArticles reads every *.md file at the root of fsys. The first
// "# " heading is the title and an optional "tags:" line lists tags.
func LoadArticles(fsys fs.FS) ([]Article, error) {
	matches, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	sort.Strings(matches)
	out := make([]Article, 0, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading article %s: %w", name, err)
		}
		out = append(out, parseArticle(strings.TrimSuffix(path.Base(name), ".md"), string(data)))
	}
	return out, nil
}

func parseArticle(slug, raw string) Article {
	a := Article{Slug: slug, Title: slug}
	var body []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case a.Title == slug && strings.HasPrefix(trimmed, "# "):
			a.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			body = append(body, line)
		case a.Tags == nil && strings.HasPrefix(strings.ToLower(trimmed), "tags:"):
			a.Tags = []string{}
			for _, t := range strings.Split(trimmed[len("tags:"):], ",") {
				if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
					a.Tags = append(a.Tags, t)
				}
			}
		default:
			body = append(body, line)
		}
	}
	a.Body = strings.TrimSpace(strings.Join(body, "\n")) + "\n"
	return a
}

func (a Article) words() []string {
	words := strings.Fields(strings.ToLower(a.Title))
	return append(words, a.Tags...)
}

// maxSearchDistance is the edit distance tolerated per query term.
const maxSearchDistance = 2

// Search ranks articles against query. Each query term is matched against
// the title words and tags; substring hits score best, then small edit
// distances. Articles missing any term are dropped. An empty query returns
// all articles in their original order.
func Search(articles []Article, query string) []Article {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		out := make([]Article, len(articles))
		copy(out, articles)
		return out
	}
	type scored struct {
		a     Article
		score int
		idx   int
	}
	var hits []scored
	for i, a := range articles {
		words := a.words()
		total := 0
		matched := true
		for _, term := range terms {
			best := -1
			for _, w := range words {
				d := levenshtein.ComputeDistance(term, w)
				if strings.Contains(w, term) {
					d = 0
				}
				if best < 0 || d < best {
					best = d
				}
			}
			if best < 0 || best > maxSearchDistance {
				matched = false
				break
			}
			total += best
		}
		if matched {
			hits = append(hits, scored{a: a, score: total, idx: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].idx < hits[j].idx
	})
	out := make([]Article, len(hits))
	for i, h := range hits {
		out[i] = h.a
	}
	return out
}

// SuggestForLesson picks the article whose tags overlap most with the
// lesson. It returns false when nothing overlaps.
func SuggestForLesson(articles []Article, lesson *panel.LessonRef) (Article, bool) {
	if lesson == nil {
		return Article{}, false
	}
	want := map[string]bool{}
	for _, t := range lesson.Tags {
		want[strings.ToLower(t)] = true
	}
	for _, w := range strings.Fields(strings.ToLower(lesson.Title)) {
		want[w] = true
	}
	best, bestScore := Article{}, 0
	for _, a := range articles {
		score := 0
		for _, w := range a.words() {
			if want[w] {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = a, score
		}
	}
	return best, bestScore > 0
}

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(markdown string, width int, dark bool) (string, error)
}

// GlamourRenderer renders with glamour and caches results per width and
// style.
type GlamourRenderer struct {
	cache *cache.Cache
}

// NewGlamourRenderer creates a renderer with a small expiring cache.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{cache: cache.New(10*time.Minute, 20*time.Minute)}
}

func (g *GlamourRenderer) Render(markdown string, width int, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	key := fmt.Sprintf("%s:%d:%s", style, width, contentKey(markdown))
	if out, ok := g.cache.Get(key); ok {
		return out.(string), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	g.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// KnowledgeUnit browses the knowledge base.
type KnowledgeUnit struct {
	articles []Article
	results  []Article
	cursor   int
	reading  *Article
	search   textinput.Model
	reader   viewport.Model
	renderer Renderer
	dark     bool
	focused  bool
	// lesson for which a suggestion was applied, so it happens once
	suggested    bool
	suggestedFor string
	renderedKey  string
}

// NewKnowledgeUnit creates the knowledge unit over articles.
func NewKnowledgeUnit(articles []Article, dark bool) *KnowledgeUnit {
	ti := textinput.New()
	ti.Placeholder = "Search topics"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return &KnowledgeUnit{
		articles: articles,
		results:  Search(articles, ""),
		search:   ti,
		reader:   viewport.New(0, 0),
		renderer: NewGlamourRenderer(),
		dark:     dark,
	}
}

func (k *KnowledgeUnit) ID() panel.TabID { return panel.TabKnowledge }

func (k *KnowledgeUnit) Init() tea.Cmd { return nil }

func (k *KnowledgeUnit) Focus() tea.Cmd {
	k.focused = true
	if k.reading != nil {
		return nil
	}
	return k.search.Focus()
}

func (k *KnowledgeUnit) Blur() {
	k.focused = false
	k.search.Blur()
}

// Results returns the current search results.
func (k *KnowledgeUnit) Results() []Article { return k.results }

// Reading returns the open article, if any.
func (k *KnowledgeUnit) Reading() (Article, bool) {
	if k.reading == nil {
		return Article{}, false
	}
	return *k.reading, true
}

// HandleEscape closes an open article before the panel sees esc.
func (k *KnowledgeUnit) HandleEscape() (bool, tea.Cmd) {
	if k.reading == nil {
		return false, nil
	}
	k.reading = nil
	k.renderedKey = ""
	if k.focused {
		return true, k.search.Focus()
	}
	return true, nil
}

func (k *KnowledgeUnit) open(a Article) {
	k.reading = &a
	k.renderedKey = ""
	k.reader.GotoTop()
	k.search.Blur()
}

// applyLesson pre-selects the best article for a lesson in learning mode.
func (k *KnowledgeUnit) applyLesson(ctx *panel.ContextPayload) {
	lesson := ctx.Lesson()
	if !ctx.IsLearning() || lesson == nil {
		return
	}
	key := lesson.ID + "\x00" + lesson.Title
	if k.suggested && key == k.suggestedFor {
		return
	}
	k.suggested, k.suggestedFor = true, key
	best, ok := SuggestForLesson(k.articles, lesson)
	if !ok {
		return
	}
	for i, a := range k.results {
		if a.Slug == best.Slug {
			k.cursor = i
			return
		}
	}
}

func (k *KnowledgeUnit) Update(msg tea.Msg, props Props) tea.Cmd {
	switch msg := msg.(type) {
	case SettingsChangedMsg:
		if k.dark != msg.Settings.DarkMode {
			k.dark = msg.Settings.DarkMode
			k.renderedKey = ""
		}
		return nil
	case tea.KeyMsg:
		if !k.focused {
			return nil
		}
		if k.reading != nil {
			var cmd tea.Cmd
			k.reader, cmd = k.reader.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "up", "ctrl+p":
			if k.cursor > 0 {
				k.cursor--
			}
			return nil
		case "down", "ctrl+n":
			if k.cursor < len(k.results)-1 {
				k.cursor++
			}
			return nil
		case "enter":
			if k.cursor < len(k.results) {
				k.open(k.results[k.cursor])
			}
			return nil
		}
		before := k.search.Value()
		var cmd tea.Cmd
		k.search, cmd = k.search.Update(msg)
		if k.search.Value() != before {
			k.results = Search(k.articles, k.search.Value())
			k.cursor = 0
		}
		return cmd
	}
	return nil
}

func (k *KnowledgeUnit) View(props Props, width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	if k.search.Value() == "" {
		k.applyLesson(props.Context)
	}
	if k.reading != nil {
		return k.viewArticle(width, height)
	}

	k.search.Width = width - lipgloss.Width(k.search.Prompt) - 1
	lines := []string{k.search.View(), ""}
	if len(k.results) == 0 {
		lines = append(lines, design.DimStyle.Render("No matching topics."))
	}
	for i, a := range k.results {
		if len(lines) >= height {
			break
		}
		label := a.Title
		if len(a.Tags) > 0 {
			label += design.DimStyle.Render("  " + strings.Join(a.Tags, ", "))
		}
		if i == k.cursor {
			lines = append(lines, design.ListItemSelectedStyle.Render("▸ "+label))
		} else {
			lines = append(lines, design.ListItemStyle.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func (k *KnowledgeUnit) viewArticle(width, height int) string {
	title := design.SubtitleStyle.Render(k.reading.Title) + design.DimStyle.Render("  esc to go back")
	vpHeight := height - lipgloss.Height(title)
	if vpHeight < 1 {
		vpHeight = 1
	}
	k.reader.Width = width
	k.reader.Height = vpHeight

	key := fmt.Sprintf("%s:%d:%t", k.reading.Slug, width, k.dark)
	if key != k.renderedKey {
		out, err := k.renderer.Render(k.reading.Body, width, k.dark)
		if err != nil {
			out = k.reading.Body
		}
		k.reader.SetContent(out)
		k.renderedKey = key
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, k.reader.View())
}
