// Package dependency enforces the structural rules of scope selection:
// required areas stay selected, and an area is only selected while all of
// its prerequisites are. Deselecting a prerequisite cascades to every area
// that (transitively) depends on it.
package dependency

import (
	"fmt"

	"service-estimator/core/types"
)

// Outcome reports what a toggle did
type Outcome int

const (
	// Selected means the area was added
	Selected Outcome = iota
	// Deselected means the area (and any dependents) were removed
	Deselected
	// RejectedRequired means the area is locked in by a required area
	RejectedRequired
	// RejectedMissingPrerequisite means a prerequisite is not selected
	RejectedMissingPrerequisite
	// RejectedUnknown means the id is not in the catalogue
	RejectedUnknown
)

// String returns a short label for logs
func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case RejectedRequired:
		return "rejected_required"
	case RejectedMissingPrerequisite:
		return "rejected_missing_prerequisite"
	case RejectedUnknown:
		return "rejected_unknown"
	default:
		return "unknown"
	}
}

// Rejected reports whether the selection was left unchanged
func (o Outcome) Rejected() bool {
	return o >= RejectedRequired
}

// Change describes the effect of a toggle
type Change struct {
	ID      string
	Outcome Outcome

	// Missing lists unselected prerequisites when the toggle was rejected
	Missing []string

	// Cascaded lists dependents removed along with the toggled area
	Cascaded []string
}

// Message renders the change for a user
func (c Change) Message() string {
	switch c.Outcome {
	case Selected:
		return fmt.Sprintf("selected %s", c.ID)
	case Deselected:
		if len(c.Cascaded) > 0 {
			return fmt.Sprintf("deselected %s (also removed %v)", c.ID, c.Cascaded)
		}
		return fmt.Sprintf("deselected %s", c.ID)
	case RejectedRequired:
		return fmt.Sprintf("%s is required and cannot be deselected", c.ID)
	case RejectedMissingPrerequisite:
		return fmt.Sprintf("%s requires %v to be selected first", c.ID, c.Missing)
	default:
		return fmt.Sprintf("unknown scope area %q", c.ID)
	}
}

// Validator gates scope toggles against a catalogue's areas
type Validator struct {
	areas  []types.ScopeArea
	byID   map[string]types.ScopeArea
	locked types.IDSet
}

// New indexes the areas. The prerequisite graph is assumed acyclic.
func New(areas []types.ScopeArea) *Validator {
	v := &Validator{
		areas: areas,
		byID:  make(map[string]types.ScopeArea, len(areas)),
	}
	for _, a := range areas {
		v.byID[a.ID] = a
	}
	v.locked = v.requiredClosure()
	return v
}

// requiredClosure is every required area plus, transitively, its prerequisites
func (v *Validator) requiredClosure() types.IDSet {
	locked := types.NewIDSet()
	var visit func(id string)
	visit = func(id string) {
		if locked.Has(id) {
			return
		}
		a, ok := v.byID[id]
		if !ok {
			return
		}
		locked.Add(id)
		for _, req := range a.Requires {
			visit(req)
		}
	}
	for _, a := range v.areas {
		if a.Required {
			visit(a.ID)
		}
	}
	return locked
}

// Locked reports whether the area can never be deselected
func (v *Validator) Locked(id string) bool {
	return v.locked.Has(id)
}

// Toggle flips one area and returns the new set. The input set is not modified.
// A rejected toggle returns a repaired copy of the input.
func (v *Validator) Toggle(selected types.IDSet, id string) (types.IDSet, Change) {
	next, _ := v.Repair(selected)
	change := Change{ID: id}

	area, ok := v.byID[id]
	if !ok {
		change.Outcome = RejectedUnknown
		return next, change
	}

	if next.Has(id) {
		if v.Locked(id) {
			change.Outcome = RejectedRequired
			return next, change
		}
		next.Remove(id)
		next, change.Cascaded = v.Repair(next)
		change.Outcome = Deselected
		return next, change
	}

	for _, req := range area.Requires {
		if !next.Has(req) {
			change.Missing = append(change.Missing, req)
		}
	}
	if len(change.Missing) > 0 {
		change.Outcome = RejectedMissingPrerequisite
		return next, change
	}

	next.Add(id)
	change.Outcome = Selected
	return next, change
}

// Repair returns a copy of selected with locked areas added and, repeated
// until nothing changes, every area with an unselected prerequisite removed.
// Unknown ids are dropped. The removed ids are returned in catalogue order.
func (v *Validator) Repair(selected types.IDSet) (types.IDSet, []string) {
	next := types.NewIDSet()
	var dropped []string
	for id := range selected {
		if _, ok := v.byID[id]; ok {
			next.Add(id)
		}
	}
	for id := range v.locked {
		next.Add(id)
	}

	removed := types.NewIDSet()
	for changed := true; changed; {
		changed = false
		for _, a := range v.areas {
			if !next.Has(a.ID) || v.Locked(a.ID) {
				continue
			}
			for _, req := range a.Requires {
				if !next.Has(req) {
					next.Remove(a.ID)
					removed.Add(a.ID)
					changed = true
					break
				}
			}
		}
	}

	for _, a := range v.areas {
		if removed.Has(a.ID) {
			dropped = append(dropped, a.ID)
		}
	}
	return next, dropped
}

// Ordered returns the selected ids in catalogue order
func (v *Validator) Ordered(selected types.IDSet) []string {
	ids := make([]string, 0, len(selected))
	for _, a := range v.areas {
		if selected.Has(a.ID) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Violation is a broken selection invariant
type Violation struct {
	Area   string
	Reason string
}

func (v Violation) Error() string {
	return fmt.Sprintf("scope %s: %s", v.Area, v.Reason)
}

// Check lists every invariant the selection breaks, in catalogue order
func (v *Validator) Check(selected types.IDSet) []Violation {
	var out []Violation
	for _, a := range v.areas {
		if a.Required && !selected.Has(a.ID) {
			out = append(out, Violation{Area: a.ID, Reason: "required area not selected"})
		}
		if !selected.Has(a.ID) {
			continue
		}
		for _, req := range a.Requires {
			if !selected.Has(req) {
				out = append(out, Violation{Area: a.ID, Reason: fmt.Sprintf("prerequisite %s not selected", req)})
			}
		}
	}
	return out
}
