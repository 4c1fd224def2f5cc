package browser

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/navguard"
	"github.com/playwright-community/playwright-go"
)

// playwrightDriver runs every pane as a page of one persistent Chromium
// context.
type playwrightDriver struct {
	opts   config.ResolvedBrowserOptions
	guard  *navguard.Guard
	logger *logging.Logger

	mu          sync.Mutex
	pw          *playwright.Playwright
	bctx        playwright.BrowserContext
	initialUsed bool
}

func newPlaywrightDriver(opts config.ResolvedBrowserOptions, guard *navguard.Guard, logger *logging.Logger) *playwrightDriver {
	return &playwrightDriver{opts: opts, guard: guard, logger: logger}
}

func (d *playwrightDriver) name() string { return config.EnginePlaywright }

func (d *playwrightDriver) start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Discard driver output so it does not draw over the TUI.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}
	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(
		filepath.Join(d.opts.UserDataDir, config.EnginePlaywright),
		playwright.BrowserTypeLaunchPersistentContextOptions{
			Headless:   playwright.Bool(d.opts.Headless),
			UserAgent:  playwright.String(d.opts.UserAgent),
			NoViewport: playwright.Bool(true),
		},
	)
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	d.mu.Lock()
	d.pw = pw
	d.bctx = bctx
	d.mu.Unlock()
	return nil
}

func (d *playwrightDriver) openPage(ctx context.Context, p *Pane) (page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	bctx := d.bctx
	var pg playwright.Page
	// The persistent context opens with one blank page; the first pane
	// takes it over instead of leaving an empty window behind.
	if !d.initialUsed {
		d.initialUsed = true
		if pages := bctx.Pages(); len(pages) > 0 {
			pg = pages[0]
		}
	}
	d.mu.Unlock()

	if pg == nil {
		var err error
		pg, err = bctx.NewPage()
		if err != nil {
			return nil, fmt.Errorf("failed to create page: %w", err)
		}
	}
	pg.SetDefaultNavigationTimeout(NavigationTimeout)

	if err := pg.Route("**/*", func(route playwright.Route) {
		d.handleRoute(p, route)
	}); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("failed to install request guard: %w", err)
	}

	return &playwrightPage{page: pg}, nil
}

// handleRoute guards navigations and adds the guard's headers to them.
// Subresource, fetch and XHR requests continue unchanged.
func (d *playwrightDriver) handleRoute(p *Pane, route playwright.Route) {
	req := route.Request()
	navigation := req.IsNavigationRequest()
	if navigation {
		if dec := p.check(req.URL()); dec.Cancel {
			if err := route.Abort(); err != nil {
				d.logger.Debugf("slot %d: abort failed: %v", p.slot, err)
			}
			p.redirect(dec.Redirect)
			return
		}
	}

	if err := route.Continue(playwright.RouteContinueOptions{
		Headers: navigationHeaders(d.guard, navigation, req.Headers()),
	}); err != nil {
		d.logger.Debugf("slot %d: continue failed: %v", p.slot, err)
	}
}

func (d *playwrightDriver) stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.bctx != nil {
		err = d.bctx.Close()
		d.bctx = nil
	}
	if d.pw != nil {
		if stopErr := d.pw.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
		d.pw = nil
	}
	return err
}

type playwrightPage struct {
	page playwright.Page
}

func (p *playwrightPage) goTo(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) reload() error {
	if _, err := p.page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

func (p *playwrightPage) url() string { return p.page.URL() }

func (p *playwrightPage) close() error { return p.page.Close() }
