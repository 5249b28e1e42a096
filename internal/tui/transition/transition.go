// Package transition provides the enter/exit animation collaborator of the
// floating panel. The controller only announces when a transition begins;
// timing and easing live here and can be swapped for None in headless runs.
package transition

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Direction of a transition.
type Direction int

const (
	Enter Direction = iota
	Exit
)

func (d Direction) String() string {
	if d == Exit {
		return "exit"
	}
	return "enter"
}

// FrameMsg is delivered for every animation frame. Seq echoes the value the
// transition was started with so the receiver can drop frames of a
// superseded transition.
type FrameMsg struct {
	Seq       int
	Direction Direction
	Step      int
	Progress  float64
	Done      bool
}

// Transitioner starts and advances transitions.
type Transitioner interface {
	Begin(dir Direction, seq int) tea.Cmd
	Next(f FrameMsg) tea.Cmd
}

// None completes every transition immediately.
type None struct{}

func (None) Begin(dir Direction, seq int) tea.Cmd {
	return func() tea.Msg {
		return FrameMsg{Seq: seq, Direction: dir, Progress: 1, Done: true}
	}
}

func (None) Next(FrameMsg) tea.Cmd { return nil }

// Slide emits a fixed number of eased frames spread over Duration.
type Slide struct {
	Duration time.Duration
	Frames   int
}

const (
	defaultSlideDuration = 180 * time.Millisecond
	defaultSlideFrames   = 6
)

// NewSlide returns a Slide with sane defaults for non-positive arguments.
func NewSlide(d time.Duration, frames int) *Slide {
	if d <= 0 {
		d = defaultSlideDuration
	}
	if frames <= 0 {
		frames = defaultSlideFrames
	}
	return &Slide{Duration: d, Frames: frames}
}

func (s *Slide) Begin(dir Direction, seq int) tea.Cmd {
	return s.frame(FrameMsg{Seq: seq, Direction: dir, Step: 1})
}

func (s *Slide) Next(f FrameMsg) tea.Cmd {
	if f.Done {
		return nil
	}
	return s.frame(FrameMsg{Seq: f.Seq, Direction: f.Direction, Step: f.Step + 1})
}

func (s *Slide) frame(f FrameMsg) tea.Cmd {
	interval := s.Duration / time.Duration(s.Frames)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		linear := float64(f.Step) / float64(s.Frames)
		if linear >= 1 {
			linear = 1
			f.Done = true
		}
		f.Progress = EaseOutCubic(linear)
		return f
	})
}

// EaseOutCubic maps linear progress in [0,1] to a decelerating curve.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(1-t, 3)
}

// Offset returns how many columns of a panel of the given width are still
// hidden past the edge for a frame in direction dir at progress p.
func Offset(dir Direction, p float64, width int) int {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	hidden := 1 - p
	if dir == Exit {
		hidden = p
	}
	return int(math.Round(hidden * float64(width)))
}
