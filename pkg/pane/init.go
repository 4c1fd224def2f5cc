package pane

import (
	"context"
	"fmt"
)

// InitializeBrowsers prepares every slot's browser in order, each to
// completion before the next. A failing slot is reported through the
// Notifier and the remaining slots still initialize. Prepared slots whose
// record is visible and has an endpoint are navigated. It returns the number
// of slots that failed.
func (r *Reconciler) InitializeBrowsers(ctx context.Context) int {
	failed := 0
	for i := 0; i < r.slotCount(); i++ {
		if !r.AfterPrepare(i, r.PrepareSlot(ctx, i)) {
			failed++
		}
	}
	return failed
}

// PrepareSlot readies one slot's browser. It touches nothing but that
// browser, so it may run off the UI goroutine; fold the result back with
// AfterPrepare on the UI goroutine.
func (r *Reconciler) PrepareSlot(ctx context.Context, slot int) error {
	if slot < 0 || slot >= len(r.slots) {
		return fmt.Errorf("prepare %d: %w", slot, ErrSlotOutOfRange)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.slots[slot].Browser.Prepare(ctx)
}

// AfterPrepare records the outcome of PrepareSlot. On failure the user is
// notified once for the slot; on success the browser is navigated to the
// slot's current record if it is visible. It reports whether the slot is
// ready.
func (r *Reconciler) AfterPrepare(slot int, err error) bool {
	if slot < 0 || slot >= len(r.slots) {
		return false
	}

	name := fmt.Sprintf("slot %d", slot)
	if rec, ok := r.Service(slot); ok {
		name = rec.Name
	}

	if err != nil {
		r.states[slot] = StateFailed
		r.logger.Errorf("error initializing %s: %v", name, err)
		r.notifier.NotifyError(InitTitle, fmt.Sprintf("Error initializing %s: %v", name, err))
		return false
	}

	r.states[slot] = StateReady
	if rec, ok := r.Service(slot); ok && rec.Visible && rec.HasEndpoint() {
		r.navigate(slot, rec.Endpoint)
	}
	return true
}
