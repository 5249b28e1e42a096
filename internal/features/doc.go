// Package features contains the feature units hosted by the assistant panel
// and the dispatcher that maps a tab to its unit.
//
// Units are opaque to the panel controller. They all receive the same
// Props (online flag and the host's context payload) and render into the
// space the panel gives them. Only the focused unit receives key messages;
// every other message is broadcast so background work (spinners, file
// watching, delayed replies) keeps flowing while a unit is hidden.
package features
