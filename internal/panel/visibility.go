package panel

// Phase is the cosmetic transition phase. It never affects the logical
// open/closed flag.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEntering
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseExiting:
		return "exiting"
	default:
		return "idle"
	}
}

// Change describes the outcome of a visibility signal.
type Change int

const (
	ChangeNone Change = iota
	ChangeOpened
	ChangeClosed
)

// Visibility tracks the logical open flag and the transition phase.
type Visibility struct {
	open     bool
	propOpen bool
	phase    Phase
	seq      int
}

// NewVisibility mounts with the host's flag. A panel mounted open starts in
// the entering phase.
func NewVisibility(isOpen bool) Visibility {
	v := Visibility{open: isOpen, propOpen: isOpen}
	if isOpen {
		v.phase = PhaseEntering
		v.seq = 1
	}
	return v
}

// SyncProp reacts to the host's isOpen value. Only a change relative to the
// previous value flips the panel.
func (v *Visibility) SyncProp(isOpen bool) Change {
	if isOpen == v.propOpen {
		return ChangeNone
	}
	v.propOpen = isOpen
	return v.set(isOpen)
}

// RequestClose handles a close gesture. It returns true only when the panel
// was open, so the caller notifies the host exactly once.
func (v *Visibility) RequestClose() bool {
	return v.set(false) == ChangeClosed
}

func (v *Visibility) set(open bool) Change {
	if open == v.open {
		return ChangeNone
	}
	v.open = open
	v.seq++
	if open {
		v.phase = PhaseEntering
		return ChangeOpened
	}
	v.phase = PhaseExiting
	return ChangeClosed
}

// FinishTransition ends the phase started under seq. Stale sequences are
// ignored and return false.
func (v *Visibility) FinishTransition(seq int) bool {
	if seq != v.seq || v.phase == PhaseIdle {
		return false
	}
	v.phase = PhaseIdle
	return true
}

// Open reports the logical flag.
func (v Visibility) Open() bool { return v.open }

// Phase reports the current transition phase.
func (v Visibility) Phase() Phase { return v.phase }

// Seq identifies the most recent flip.
func (v Visibility) Seq() int { return v.seq }

// Mounted reports whether the panel must be drawn: open, or closed but still
// animating out.
func (v Visibility) Mounted() bool {
	return v.open || v.phase == PhaseExiting
}
