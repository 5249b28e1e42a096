package panel

// Mode selects the presentation strategy. It is fixed for the lifetime of a
// mounted panel.
type Mode int

const (
	ModeFloating Mode = iota
	ModeEmbedded
)

// ModeFor maps the host's embedded flag to a Mode.
func ModeFor(embedded bool) Mode {
	if embedded {
		return ModeEmbedded
	}
	return ModeFloating
}

// String provides a human-readable representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeEmbedded:
		return "embedded"
	case ModeFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// Closable reports whether the mode exposes a close affordance.
func (m Mode) Closable() bool {
	return m == ModeFloating
}

// HasOverlay reports whether the mode dims the host behind the panel.
func (m Mode) HasOverlay() bool {
	return m == ModeFloating
}
