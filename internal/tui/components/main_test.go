package components

import zone "github.com/lrstanley/bubblezone"

// Components mark mouse zones; the host normally creates the global zone
// manager (see view.init), so tests in this package must do it themselves.
func init() {
	zone.NewGlobal()
}
