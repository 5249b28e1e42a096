package features

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"assistpanel/internal/panel"
	"assistpanel/internal/tui/design"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"
)

// Entry is one line of a directory listing.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// For mocking in tests
var readDir = os.ReadDir

// ListDir returns the entries of dir, directories first, each group sorted
// by name. Hidden entries are skipped.
func ListDir(dir string) ([]Entry, error) {
	des, err := readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		e := Entry{Name: de.Name(), IsDir: de.IsDir()}
		if !e.IsDir {
			if info, err := de.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type fsEventMsg struct {
	gen  int
	name string
}

type fsErrorMsg struct {
	gen int
	err error
}

// FilesystemUnit browses a workspace directory without leaving it.
type FilesystemUnit struct {
	root    string
	cwd     string
	entries []Entry
	cursor  int
	err     error
	watcher *fsnotify.Watcher
	gen     int
	focused bool
}

// NewFilesystemUnit roots the browser at dir, or the working directory when
// dir is empty.
func NewFilesystemUnit(dir string) *FilesystemUnit {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &FilesystemUnit{root: dir, cwd: dir}
}

func (f *FilesystemUnit) ID() panel.TabID { return panel.TabFilesystem }

// Init lists the root and starts watching it.
func (f *FilesystemUnit) Init() tea.Cmd {
	f.refresh()
	return f.watch()
}

func (f *FilesystemUnit) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *FilesystemUnit) Blur() { f.focused = false }

// Dir returns the directory currently shown.
func (f *FilesystemUnit) Dir() string { return f.cwd }

// Entries returns the current listing.
func (f *FilesystemUnit) Entries() []Entry { return f.entries }

func (f *FilesystemUnit) refresh() {
	f.entries, f.err = ListDir(f.cwd)
	if f.cursor >= len(f.entries) {
		f.cursor = max(len(f.entries)-1, 0)
	}
}

// watch points a fresh watcher at cwd. A failing watcher only disables
// live refresh.
func (f *FilesystemUnit) watch() tea.Cmd {
	f.stopWatching()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil
	}
	if err := w.Add(f.cwd); err != nil {
		_ = w.Close()
		return nil
	}
	f.gen++
	f.watcher = w
	return waitForFSEvent(w, f.gen)
}

func waitForFSEvent(w *fsnotify.Watcher, gen int) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			return fsEventMsg{gen: gen, name: ev.Name}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fsErrorMsg{gen: gen, err: err}
		}
	}
}

func (f *FilesystemUnit) stopWatching() {
	if f.watcher != nil {
		_ = f.watcher.Close()
		f.watcher = nil
	}
}

// Close stops the watcher.
func (f *FilesystemUnit) Close() error {
	if f.watcher == nil {
		return nil
	}
	err := f.watcher.Close()
	f.watcher = nil
	return err
}

// Enter descends into the selected directory.
func (f *FilesystemUnit) Enter() tea.Cmd {
	if f.cursor >= len(f.entries) || !f.entries[f.cursor].IsDir {
		return nil
	}
	return f.chdir(filepath.Join(f.cwd, f.entries[f.cursor].Name))
}

// Up moves to the parent directory, never above the root.
func (f *FilesystemUnit) Up() tea.Cmd {
	if f.cwd == f.root {
		return nil
	}
	return f.chdir(filepath.Dir(f.cwd))
}

func (f *FilesystemUnit) chdir(dir string) tea.Cmd {
	rel, err := filepath.Rel(f.root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	f.cwd = dir
	f.cursor = 0
	f.refresh()
	return f.watch()
}

// HandleEscape goes up one level before the panel sees esc.
func (f *FilesystemUnit) HandleEscape() (bool, tea.Cmd) {
	if f.cwd == f.root {
		return false, nil
	}
	return true, f.Up()
}

func (f *FilesystemUnit) Update(msg tea.Msg, _ Props) tea.Cmd {
	switch msg := msg.(type) {
	case fsEventMsg:
		if msg.gen != f.gen {
			return nil
		}
		f.refresh()
		if f.watcher == nil {
			return nil
		}
		return waitForFSEvent(f.watcher, f.gen)
	case fsErrorMsg:
		if msg.gen != f.gen || f.watcher == nil {
			return nil
		}
		f.err = msg.err
		return waitForFSEvent(f.watcher, f.gen)
	case tea.KeyMsg:
		if !f.focused {
			return nil
		}
		switch msg.String() {
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case "down", "j":
			if f.cursor < len(f.entries)-1 {
				f.cursor++
			}
		case "enter", "l", "right":
			return f.Enter()
		case "backspace", "h", "left":
			return f.Up()
		case "ctrl+r":
			f.refresh()
		}
	}
	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func (f *FilesystemUnit) View(_ Props, width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}
	rel, _ := filepath.Rel(f.root, f.cwd)
	header := design.SubtitleStyle.Render(runewidth.Truncate(filepath.Join(filepath.Base(f.root), rel), width, "…"))
	lines := []string{header}
	if f.err != nil {
		lines = append(lines, design.TextErrorStyle.Render(runewidth.Truncate(f.err.Error(), width, "…")))
	}
	if len(f.entries) == 0 && f.err == nil {
		lines = append(lines, design.DimStyle.Render("(empty)"))
	}

	room := height - len(lines)
	start := 0
	if f.cursor >= room && room > 0 {
		start = f.cursor - room + 1
	}
	for i := start; i < len(f.entries) && len(lines) < height; i++ {
		e := f.entries[i]
		name := e.Name
		size := ""
		if e.IsDir {
			name += string(filepath.Separator)
		} else {
			size = humanSize(e.Size)
		}
		nameWidth := width - 4 - runewidth.StringWidth(size)
		row := runewidth.FillRight(runewidth.Truncate(name, nameWidth, "…"), nameWidth) + " " + size
		if i == f.cursor {
			lines = append(lines, design.ListItemSelectedStyle.Render("▸ "+row))
		} else {
			lines = append(lines, design.ListItemStyle.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}
