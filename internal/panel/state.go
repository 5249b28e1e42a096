package panel

import "sync"

// ResolveActiveTab applies the controlled/uncontrolled rule: a non-empty
// external value always wins, otherwise the internal value stands.
func ResolveActiveTab(external, internal TabID) TabID {
	if external != "" {
		return external
	}
	return internal
}

// TabState remembers the last user selection and the host's external value.
// The zero value is an uncontrolled state positioned on DefaultTab.
type TabState struct {
	internal TabID
	external TabID
}

// NewTabState seeds the state at mount time from the host's value, if any.
func NewTabState(external TabID) TabState {
	s := TabState{internal: DefaultTab}
	s.SetExternal(external)
	if s.external != "" {
		s.internal = s.external
	}
	return s
}

// SetExternal asserts host control. An empty id releases it. Unknown ids are
// kept as DefaultTab so the host still controls the panel.
func (s *TabState) SetExternal(id TabID) {
	if id == "" {
		s.external = ""
		return
	}
	s.external = normalize(id)
}

// ReleaseExternal hands control back to the user.
func (s *TabState) ReleaseExternal() {
	s.external = ""
}

// Controlled reports whether the host currently pins the active tab.
func (s TabState) Controlled() bool {
	return s.external != ""
}

// Select records a user selection. It returns false when the selection has
// no visible effect because the host is in control.
func (s *TabState) Select(id TabID) bool {
	s.internal = normalize(id)
	return !s.Controlled()
}

// Resolve returns the active tab for this update cycle. An asserted external
// value is synced down into the internal value. The result is always visible
// under mode.
func (s *TabState) Resolve(mode Mode) TabID {
	active := ResolveActiveTab(s.external, s.internal)
	if s.external != "" {
		s.internal = s.external
	}
	if active == "" || !IsVisible(mode, active) {
		return DefaultTab
	}
	return active
}

// Internal returns the remembered user selection.
func (s TabState) Internal() TabID { return s.internal }

// External returns the host's value, empty when uncontrolled.
func (s TabState) External() TabID { return s.external }

func normalize(id TabID) TabID {
	if id.Valid() {
		return id
	}
	return DefaultTab
}

// State is a read-only snapshot of a mounted panel.
type State struct {
	ActiveTab  TabID `json:"activeTab"`
	IsOpen     bool  `json:"isOpen"`
	Mode       Mode  `json:"-"`
	Controlled bool  `json:"controlled"`
	Phase      Phase `json:"-"`
}

// StateStore publishes snapshots to readers outside the UI loop.
type StateStore struct {
	mu    sync.RWMutex
	state State
	set   bool
}

// Publish replaces the current snapshot.
func (s *StateStore) Publish(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.set = true
}

// Load returns the latest snapshot and whether one was ever published.
func (s *StateStore) Load() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.set
}
