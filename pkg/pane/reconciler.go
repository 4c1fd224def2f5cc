package pane

import (
	"fmt"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
)

// Dialog texts shown by the reconciler's collaborators.
const (
	ResetTitle   = "Reset Layout"
	ResetMessage = "This will reset all layout settings to default. Continue?"
	InitTitle    = "Initialization Error"
)

// Deps are the collaborators a Reconciler drives.
type Deps struct {
	// Slots must hold exactly config.SlotCount entries.
	Slots []Slot

	// Menu maps each service name to its visibility entry. Built once at
	// setup; names without an entry are ignored.
	Menu map[string]MenuEntry

	Grid     Grid
	Notifier Notifier
	Store    Persister
	Logger   *logging.Logger
}

// Reconciler keeps configuration, grid and browsers in step.
type Reconciler struct {
	cfg      config.Configuration
	slots    []Slot
	states   []SlotState
	menu     map[string]MenuEntry
	grid     Grid
	notifier Notifier
	store    Persister
	logger   *logging.Logger
	drag     dragState
}

// New creates a reconciler over cfg. The configuration is copied; read it
// back with Configuration.
func New(cfg config.Configuration, deps Deps) (*Reconciler, error) {
	if len(deps.Slots) != config.SlotCount {
		return nil, fmt.Errorf("expected %d slots, got %d", config.SlotCount, len(deps.Slots))
	}
	for i, s := range deps.Slots {
		if s.Header == nil || s.Browser == nil {
			return nil, fmt.Errorf("slot %d is missing its header or browser", i)
		}
	}
	if deps.Grid == nil {
		return nil, fmt.Errorf("grid is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	r := &Reconciler{
		cfg:      cfg.Clone(),
		slots:    append([]Slot(nil), deps.Slots...),
		states:   make([]SlotState, len(deps.Slots)),
		menu:     make(map[string]MenuEntry, len(deps.Menu)),
		grid:     deps.Grid,
		notifier: deps.Notifier,
		store:    deps.Store,
		logger:   deps.Logger,
	}
	for name, entry := range deps.Menu {
		r.menu[name] = entry
	}
	if r.notifier == nil {
		r.notifier = nopNotifier{}
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r, nil
}

type nopNotifier struct{}

func (nopNotifier) NotifyError(string, string) {}

// Configuration returns a copy of the current configuration.
func (r *Reconciler) Configuration() config.Configuration {
	return r.cfg.Clone()
}

// Service returns the record currently bound to slot.
func (r *Reconciler) Service(slot int) (config.ServiceRecord, bool) {
	if slot < 0 || slot >= r.slotCount() {
		return config.ServiceRecord{}, false
	}
	return r.cfg.Services[slot], true
}

// SlotOf returns the slot currently showing the named service, or -1.
func (r *Reconciler) SlotOf(name string) int {
	i := r.cfg.Find(name)
	if i >= r.slotCount() {
		return -1
	}
	return i
}

// State returns the preparation state of slot.
func (r *Reconciler) State(slot int) SlotState {
	if slot < 0 || slot >= len(r.states) {
		return StatePending
	}
	return r.states[slot]
}

// Slots returns the number of grid positions.
func (r *Reconciler) Slots() int {
	return len(r.slots)
}

// slotCount is the number of slots that have a record bound.
func (r *Reconciler) slotCount() int {
	return min(len(r.slots), len(r.cfg.Services))
}

// ApplyConfiguration pushes the configuration into headers, menu entries,
// column widths and splitters.
func (r *Reconciler) ApplyConfiguration() {
	for i := range r.slots {
		if i >= len(r.cfg.Services) {
			r.slots[i].Header.SetText("")
			r.grid.SetColumnWidth(i, 0)
			continue
		}
		rec := r.cfg.Services[i]
		r.slots[i].Header.SetText(rec.Name)
		r.syncMenu(rec)
		r.applyColumn(i)
	}
	r.applySplitters()
}

// ToggleVisibility flips the named service's visibility. It reports the new
// state and whether the name was found. Turning a pane on navigates its
// browser when nothing has been loaded yet.
func (r *Reconciler) ToggleVisibility(name string) (visible bool, found bool) {
	i := r.cfg.Find(name)
	if i < 0 {
		r.logger.Debugf("toggle for unknown service %q ignored", name)
		return false, false
	}

	rec := &r.cfg.Services[i]
	rec.Visible = !rec.Visible
	r.syncMenu(*rec)

	if i < r.slotCount() {
		r.applyColumn(i)
		r.applySplitters()

		b := r.slots[i].Browser
		if rec.Visible && rec.HasEndpoint() && b.Ready() && isBlank(b.Source()) {
			r.navigate(i, rec.Endpoint)
		}
	}

	r.logger.Infof("service %s visible=%t", rec.Name, rec.Visible)
	visible = rec.Visible
	_ = r.Save()
	return visible, true
}

// Reorder swaps the records bound to two slots. Both panes are re-navigated
// to their new record's endpoint; browser content does not move.
func (r *Reconciler) Reorder(source, target int) error {
	n := r.slotCount()
	if source < 0 || source >= n || target < 0 || target >= n {
		return fmt.Errorf("reorder %d -> %d: %w", source, target, ErrSlotOutOfRange)
	}
	if source == target {
		return nil
	}

	s := r.cfg.Services
	s[source], s[target] = s[target], s[source]
	s[source].Order = source
	s[target].Order = target

	a, b := r.slots[source].Header, r.slots[target].Header
	aText, bText := a.Text(), b.Text()
	a.SetText(bText)
	b.SetText(aText)

	r.syncMenu(s[source])
	r.syncMenu(s[target])

	r.applyColumn(source)
	r.applyColumn(target)
	r.applySplitters()

	for _, i := range []int{source, target} {
		if r.slots[i].Browser.Ready() && s[i].HasEndpoint() {
			r.navigate(i, s[i].Endpoint)
		}
	}

	r.logger.Infof("swapped slot %d (%s) with slot %d (%s)", source, s[source].Name, target, s[target].Name)
	_ = r.Save()
	return nil
}

// Resize reads the proportional widths of visible columns back into their
// records. Collapsed columns keep the width they had.
func (r *Reconciler) Resize() {
	for i := 0; i < r.slotCount(); i++ {
		if !r.cfg.Services[i].Visible {
			continue
		}
		if w, ok := r.grid.ColumnWidth(i); ok {
			r.cfg.Services[i].Width = w
		}
	}
}

// ResetLayout replaces the configuration with the defaults once c confirms.
// Browser options in the document are kept. It reports whether the reset
// happened.
func (r *Reconciler) ResetLayout(c Confirmer) bool {
	if c == nil || !c.Confirm(ResetTitle, ResetMessage) {
		return false
	}

	def := config.DefaultConfiguration()
	def.Browser = r.cfg.Browser
	r.cfg = def
	r.CancelDrag()
	r.ApplyConfiguration()

	for i := 0; i < r.slotCount(); i++ {
		rec := r.cfg.Services[i]
		if rec.Visible && rec.HasEndpoint() && r.slots[i].Browser.Ready() {
			r.navigate(i, rec.Endpoint)
		}
	}

	r.logger.Infof("layout reset to defaults")
	_ = r.Save()
	return true
}

// RefreshAll reloads every ready browser in place.
func (r *Reconciler) RefreshAll() {
	for i := range r.slots {
		_ = r.RefreshOne(i)
	}
}

// RefreshOne reloads one slot's browser in place.
func (r *Reconciler) RefreshOne(slot int) error {
	if slot < 0 || slot >= len(r.slots) {
		return fmt.Errorf("refresh %d: %w", slot, ErrSlotOutOfRange)
	}
	b := r.slots[slot].Browser
	if !b.Ready() {
		return fmt.Errorf("refresh %d: %w", slot, ErrBrowserNotReady)
	}
	if err := b.Reload(); err != nil {
		r.logger.Warnf("reload of slot %d failed: %v", slot, err)
		return err
	}
	return nil
}

// NewChatAll navigates every ready slot with an endpoint back to it,
// discarding in-page state.
func (r *Reconciler) NewChatAll() {
	for i := 0; i < r.slotCount(); i++ {
		rec := r.cfg.Services[i]
		if rec.HasEndpoint() && r.slots[i].Browser.Ready() {
			r.navigate(i, rec.Endpoint)
		}
	}
}

// Save captures column widths and persists the configuration. Failures are
// logged and returned; the in-memory state stays authoritative.
func (r *Reconciler) Save() error {
	r.Resize()
	if err := r.store.Save(r.cfg.Clone()); err != nil {
		r.logger.Errorf("error saving settings: %v", err)
		return err
	}
	return nil
}

// Close persists on shutdown.
func (r *Reconciler) Close() error {
	r.CancelDrag()
	return r.Save()
}

func (r *Reconciler) syncMenu(rec config.ServiceRecord) {
	entry, ok := r.menu[rec.Name]
	if !ok {
		r.logger.Debugf("no menu entry for service %q", rec.Name)
		return
	}
	entry.SetChecked(rec.Visible)
}

func (r *Reconciler) applyColumn(slot int) {
	r.grid.SetColumnWidth(slot, columnWidth(r.cfg.Services[slot]))
}

func (r *Reconciler) applySplitters() {
	for i := 0; i+1 < len(r.slots); i++ {
		r.grid.SetSplitterVisible(i, SplitterVisible(r.cfg.Services, i, len(r.slots)))
	}
}

func (r *Reconciler) navigate(slot int, url string) {
	if err := r.slots[slot].Browser.Navigate(url); err != nil {
		r.logger.Warnf("navigation of slot %d to %s failed: %v", slot, url, err)
	}
}

func isBlank(source string) bool {
	return source == "" || source == BlankAddress
}
