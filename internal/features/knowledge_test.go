package features

import (
	"testing"
	"testing/fstest"

	"assistpanel/internal/panel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	calls int
}

func (f *fakeRenderer) Render(md string, width int, dark bool) (string, error) {
	f.calls++
	return "rendered:" + md, nil
}

func testArticles() []Article {
	return []Article{
		{Slug: "goroutines", Title: "Goroutines", Tags: []string{"concurrency", "goroutines"}},
		{Slug: "channels", Title: "Channels", Tags: []string{"concurrency", "channels", "select"}},
		{Slug: "errors", Title: "Error handling", Tags: []string{"errors", "wrapping"}},
	}
}

func slugs(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Slug
	}
	return out
}

func TestLoadArticles(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md":      {Data: []byte("# Beta topic\ntags: One, two\n\nBody text.\n")},
		"a.md":      {Data: []byte("No heading here.\n")},
		"notes.txt": {Data: []byte("ignored")},
	}
	articles, err := LoadArticles(fsys)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "a", articles[0].Slug)
	assert.Equal(t, "a", articles[0].Title)
	assert.Nil(t, articles[0].Tags)

	assert.Equal(t, "Beta topic", articles[1].Title)
	assert.Equal(t, []string{"one", "two"}, articles[1].Tags)
	assert.NotContains(t, articles[1].Body, "tags:")
	assert.Contains(t, articles[1].Body, "Body text.")
}

func TestBuiltinArticles(t *testing.T) {
	articles := BuiltinArticles()
	require.NotEmpty(t, articles)
	for _, a := range articles {
		assert.NotEmpty(t, a.Title, a.Slug)
		assert.NotEmpty(t, a.Tags, a.Slug)
	}
}

func TestSearch(t *testing.T) {
	articles := testArticles()
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"goroutines", "channels", "errors"}},
		{"concurrency", []string{"goroutines", "channels"}},
		{"chanels", []string{"channels"}},
		{"error", []string{"errors"}},
		{"concurrency select", []string{"channels"}},
		{"kubernetes", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, slugs(Search(articles, tt.query)))
		})
	}
}

func TestSuggestForLesson(t *testing.T) {
	articles := testArticles()

	a, ok := SuggestForLesson(articles, &panel.LessonRef{Title: "Using select", Tags: []string{"channels"}})
	require.True(t, ok)
	assert.Equal(t, "channels", a.Slug)

	_, ok = SuggestForLesson(articles, &panel.LessonRef{Title: "Pointers"})
	assert.False(t, ok)

	_, ok = SuggestForLesson(articles, nil)
	assert.False(t, ok)
}

func TestKnowledgeUnitPreselectsLessonTopic(t *testing.T) {
	k := NewKnowledgeUnit(testArticles(), true)
	props := Props{Context: &panel.ContextPayload{
		Mode:          panel.ContextLearning,
		CurrentLesson: &panel.LessonRef{ID: "l7", Title: "Wrapping errors", Tags: []string{"errors"}},
	}}
	k.View(props, 60, 10)
	assert.Equal(t, 2, k.cursor)

	// general mode leaves the cursor alone
	k2 := NewKnowledgeUnit(testArticles(), true)
	props.Context.Mode = panel.ContextGeneral
	k2.View(props, 60, 10)
	assert.Equal(t, 0, k2.cursor)
}

func TestKnowledgeUnitPreselectsLessonWithoutID(t *testing.T) {
	k := NewKnowledgeUnit(testArticles(), true)
	lesson := &panel.LessonRef{Title: "Wrapping errors"}
	props := Props{Context: &panel.ContextPayload{Mode: panel.ContextLearning, CurrentLesson: lesson}}
	k.View(props, 60, 10)
	assert.Equal(t, 2, k.cursor)

	// the same lesson does not steal the cursor back
	k.cursor = 0
	k.View(props, 60, 10)
	assert.Equal(t, 0, k.cursor)

	// a new title is a new lesson
	props.Context.CurrentLesson = &panel.LessonRef{Title: "Select on channels"}
	k.View(props, 60, 10)
	assert.Equal(t, 1, k.cursor)
}

func TestKnowledgeUnitOpenAndEscape(t *testing.T) {
	r := &fakeRenderer{}
	k := NewKnowledgeUnit(testArticles(), true)
	k.renderer = r
	k.Focus()

	typeInto(k, Props{}, "chan")
	require.Equal(t, []string{"channels"}, slugs(k.Results()))

	k.Update(tea.KeyMsg{Type: tea.KeyEnter}, Props{})
	a, ok := k.Reading()
	require.True(t, ok)
	assert.Equal(t, "channels", a.Slug)

	k.View(Props{}, 60, 10)
	k.View(Props{}, 60, 10)
	assert.Equal(t, 1, r.calls)

	k.Update(SettingsChangedMsg{Settings: Settings{DarkMode: false}}, Props{})
	k.View(Props{}, 60, 10)
	assert.Equal(t, 2, r.calls)

	consumed, _ := k.HandleEscape()
	assert.True(t, consumed)
	_, ok = k.Reading()
	assert.False(t, ok)

	consumed, _ = k.HandleEscape()
	assert.False(t, consumed)
}

func TestGlamourRendererCaches(t *testing.T) {
	g := NewGlamourRenderer()
	out, err := g.Render("# Title\n\nsome text\n", 40, true)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Equal(t, 1, g.cache.ItemCount())

	_, err = g.Render("# Title\n\nsome text\n", 40, true)
	require.NoError(t, err)
	assert.Equal(t, 1, g.cache.ItemCount())

	_, err = g.Render("# Title\n\nsome text\n", 40, false)
	require.NoError(t, err)
	assert.Equal(t, 2, g.cache.ItemCount())
}
