package features

import (
	"errors"
	"fmt"

	"assistpanel/internal/panel"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher maps every tab to exactly one unit.
type Dispatcher struct {
	units map[panel.TabID]Unit
}

// NewDispatcher checks that units cover the whole tab set without
// duplicates.
func NewDispatcher(units ...Unit) (*Dispatcher, error) {
	d := &Dispatcher{units: make(map[panel.TabID]Unit, len(units))}
	for _, u := range units {
		if u == nil {
			continue
		}
		id := u.ID()
		if !id.Valid() {
			return nil, fmt.Errorf("unit declares unknown tab %q", id)
		}
		if _, dup := d.units[id]; dup {
			return nil, fmt.Errorf("duplicate unit for tab %q", id)
		}
		d.units[id] = u
	}
	for _, id := range panel.AllTabIDs() {
		if _, ok := d.units[id]; !ok {
			return nil, fmt.Errorf("no unit registered for tab %q", id)
		}
	}
	return d, nil
}

// Dispatch returns the unit for id. Identifiers outside the tab set get the
// chat unit.
func (d *Dispatcher) Dispatch(id panel.TabID) Unit {
	if u, ok := d.units[id]; ok {
		return u
	}
	return d.units[panel.TabChat]
}

// Render draws the unit for id.
func (d *Dispatcher) Render(id panel.TabID, props Props, width, height int) string {
	return d.Dispatch(id).View(props, width, height)
}

// Units returns the units in registry order.
func (d *Dispatcher) Units() []Unit {
	out := make([]Unit, 0, len(d.units))
	for _, id := range panel.AllTabIDs() {
		out = append(out, d.units[id])
	}
	return out
}

// Init initializes every unit.
func (d *Dispatcher) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, u := range d.Units() {
		if cmd := u.Init(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Broadcast hands a non-key message to every unit.
func (d *Dispatcher) Broadcast(msg tea.Msg, props Props) tea.Cmd {
	var cmds []tea.Cmd
	for _, u := range d.Units() {
		if cmd := u.Update(msg, props); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// Close releases unit resources.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, u := range d.Units() {
		if c, ok := u.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s: %w", u.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
