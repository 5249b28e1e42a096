// Package panel holds the state logic of the assistant panel.
//
// Nothing in here renders anything. The package answers three questions for
// every update cycle of the hosting TUI:
//
//  1. Which tabs are selectable? (VisibleTabs, driven by the mount Mode)
//  2. Which tab is active? (TabState, the controlled/uncontrolled rule)
//  3. Is the panel open, and is it animating? (Visibility)
//
// # Active tab reconciliation
//
// A host may pin the active tab by supplying an external value. While one is
// asserted it always wins and the internally remembered selection is synced
// down to it:
//
//	var s panel.TabState
//	s.SetExternal(panel.TabKnowledge)
//	s.Select(panel.TabSettings)      // remembered, not visible
//	s.Resolve(panel.ModeFloating)    // knowledge
//	s.ReleaseExternal()
//	s.Select(panel.TabSettings)
//	s.Resolve(panel.ModeFloating)    // settings
//
// Identifiers that are not part of the closed tab set, or that are not
// visible under the mount mode, resolve to TabChat.
//
// # Visibility
//
// Visibility flips only when the host's open flag changes or when a close
// gesture arrives while open, so repeated signals never produce duplicate
// side effects. Every flip bumps a sequence number that the transition
// collaborator echoes back, which lets stale animation frames be dropped.
package panel
