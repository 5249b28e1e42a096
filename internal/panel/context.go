package panel

import "strings"

// ContextMode tells feature units whether the panel is used next to a lesson.
type ContextMode string

const (
	ContextLearning ContextMode = "learning"
	ContextGeneral  ContextMode = "general"
)

// LessonRef points at the lesson the learner currently has open.
type LessonRef struct {
	ID    string   `yaml:"id,omitempty" json:"id,omitempty"`
	Title string   `yaml:"title,omitempty" json:"title,omitempty"`
	Tags  []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ContextPayload is passed through to feature units untouched. Every field
// is optional.
type ContextPayload struct {
	Mode          ContextMode `yaml:"mode,omitempty" json:"mode,omitempty"`
	CurrentLesson *LessonRef  `yaml:"currentLesson,omitempty" json:"currentLesson,omitempty"`
}

// ParseContextMode accepts "learning" or "general" (any case). Anything else
// is treated as unset.
func ParseContextMode(s string) ContextMode {
	switch ContextMode(strings.ToLower(strings.TrimSpace(s))) {
	case ContextLearning:
		return ContextLearning
	case ContextGeneral:
		return ContextGeneral
	default:
		return ""
	}
}

// Lesson returns the current lesson or nil. Safe on a nil payload.
func (c *ContextPayload) Lesson() *LessonRef {
	if c == nil {
		return nil
	}
	return c.CurrentLesson
}

// IsLearning reports whether the payload says the learner is inside a lesson.
func (c *ContextPayload) IsLearning() bool {
	return c != nil && c.Mode == ContextLearning
}
