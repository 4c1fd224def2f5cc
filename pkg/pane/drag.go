package pane

// dragState carries the source slot of a reorder gesture from its start
// until it is dropped or cancelled.
type dragState struct {
	source int
	active bool
}

// BeginDrag starts a reorder gesture from slot. It replaces any gesture in
// progress and reports whether slot is valid.
func (r *Reconciler) BeginDrag(slot int) bool {
	if slot < 0 || slot >= r.slotCount() {
		r.drag = dragState{}
		return false
	}
	r.drag = dragState{source: slot, active: true}
	return true
}

// Dragging returns the source slot of the gesture in progress.
func (r *Reconciler) Dragging() (source int, ok bool) {
	return r.drag.source, r.drag.active
}

// AcceptsDrop reports whether target would accept the current gesture.
func (r *Reconciler) AcceptsDrop(target int) bool {
	return r.drag.active && target >= 0 && target < r.slotCount()
}

// Drop ends the gesture over target and reorders when target differs from
// the source. It reports whether a reorder took place. Without a gesture in
// progress it does nothing.
func (r *Reconciler) Drop(target int) (bool, error) {
	if !r.drag.active {
		return false, nil
	}
	source := r.drag.source
	r.drag = dragState{}

	if source == target {
		return false, nil
	}
	if err := r.Reorder(source, target); err != nil {
		return false, err
	}
	return true, nil
}

// CancelDrag abandons the gesture in progress.
func (r *Reconciler) CancelDrag() {
	r.drag = dragState{}
}
