package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/navguard"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// Manager owns the shared browser process and the panes opened in it.
type Manager struct {
	mu       sync.Mutex
	opts     config.ResolvedBrowserOptions
	guard    *navguard.Guard
	logger   *logging.Logger
	driver   driver
	panes    []*Pane
	started  bool
	startErr error
	closed   bool
}

// NewManager creates a manager for the engine named in opts. Nothing is
// launched until the first pane is prepared.
func NewManager(opts config.ResolvedBrowserOptions, guard *navguard.Guard, logger *logging.Logger) (*Manager, error) {
	if guard == nil {
		guard = navguard.Default(opts.AcceptLanguage)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var d driver
	switch opts.Engine {
	case config.EnginePlaywright:
		d = newPlaywrightDriver(opts, guard, logger)
	case config.EngineRod:
		d = newRodDriver(opts, guard, logger)
	default:
		return nil, fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownEngine, opts.Engine, config.EnginePlaywright, config.EngineRod)
	}
	return newManager(opts, guard, logger, d), nil
}

func newManager(opts config.ResolvedBrowserOptions, guard *navguard.Guard, logger *logging.Logger, d driver) *Manager {
	return &Manager{
		opts:   opts,
		guard:  guard,
		logger: logger,
		driver: d,
	}
}

// Engine returns the name of the engine in use.
func (m *Manager) Engine() string {
	return m.driver.name()
}

// Browsers creates n unprepared panes, one per slot.
func (m *Manager) Browsers(n int) []pane.Browser {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]pane.Browser, n)
	for i := 0; i < n; i++ {
		p := &Pane{slot: i, mgr: m}
		m.panes = append(m.panes, p)
		out[i] = p
	}
	return out
}

// open starts the engine on first use and opens a page for p.
func (m *Manager) open(ctx context.Context, p *Pane) (page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrShutdown
	}
	if !m.started {
		m.started = true
		m.logger.Infof("launching %s browser (headless=%t, profile=%s)", m.driver.name(), m.opts.Headless, m.opts.UserDataDir)
		if err := m.driver.start(ctx); err != nil {
			m.startErr = fmt.Errorf("failed to start %s: %w", m.driver.name(), err)
			m.logger.Errorf("%v", m.startErr)
		}
	}
	if m.startErr != nil {
		return nil, m.startErr
	}

	pg, err := m.driver.openPage(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return pg, nil
}

// Shutdown closes every pane, waits for outstanding loads and stops the
// engine. It is safe to call more than once.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	panes := m.panes
	started := m.started && m.startErr == nil
	m.mu.Unlock()

	var errs []error
	for _, p := range panes {
		if err := p.close(); err != nil {
			errs = append(errs, fmt.Errorf("slot %d: %w", p.slot, err))
		}
	}
	if started {
		if err := m.driver.stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", m.driver.name(), err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		m.logger.Warnf("browser shutdown: %v", err)
		return err
	}
	m.logger.Debugf("browser shut down")
	return nil
}
