package browser

import (
	"context"
	"sync"

	"github.com/entrhq/llmmixer/pkg/navguard"
	"github.com/entrhq/llmmixer/pkg/pane"
)

// Pane is one page of the shared browser bound to a grid slot.
type Pane struct {
	slot int
	mgr  *Manager

	mu     sync.Mutex
	pg     page
	home   string
	closed bool

	loads sync.WaitGroup
}

var _ pane.Browser = (*Pane)(nil)

// Prepare opens the pane's page, launching the shared browser first when
// this is the first pane.
func (p *Pane) Prepare(ctx context.Context) error {
	p.mu.Lock()
	switch {
	case p.closed:
		p.mu.Unlock()
		return ErrShutdown
	case p.pg != nil:
		p.mu.Unlock()
		return ErrAlreadyPrepared
	}
	p.mu.Unlock()

	pg, err := p.mgr.open(ctx, p)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		// Shut down while the page was opening.
		_ = pg.close()
		return ErrShutdown
	}
	p.pg = pg
	p.mu.Unlock()
	p.mgr.logger.Debugf("slot %d page ready", p.slot)
	return nil
}

// Ready reports whether the page is open.
func (p *Pane) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pg != nil
}

// Navigate makes url the pane's home endpoint and starts loading it.
func (p *Pane) Navigate(url string) error {
	return p.background("navigate to "+url, func() { p.home = url }, func(pg page) error { return pg.goTo(url) })
}

// Reload reloads the current page.
func (p *Pane) Reload() error {
	return p.background("reload", nil, page.reload)
}

// Source returns the page's address. A navigation that has been requested
// but not yet committed reports its target.
func (p *Pane) Source() string {
	p.mu.Lock()
	pg, home := p.pg, p.home
	p.mu.Unlock()
	if pg == nil {
		return ""
	}

	if u := pg.url(); u != "" && u != pane.BlankAddress {
		return u
	}
	return home
}

// Home returns the endpoint the pane was last navigated to.
func (p *Pane) Home() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.home
}

// Slot returns the grid slot the pane is bound to.
func (p *Pane) Slot() int {
	return p.slot
}

// check runs the guard for a navigation the page is about to make.
func (p *Pane) check(target string) navguard.Decision {
	d := p.mgr.guard.Check(p.Home(), target)
	if d.Cancel {
		p.mgr.logger.Infof("slot %d: navigation to %s cancelled by %s, redirecting to %s", p.slot, target, d.Rule, d.Redirect)
	}
	return d
}

// redirect loads url without changing the home endpoint. Engines call it
// from their request callbacks, so it must not block.
func (p *Pane) redirect(url string) {
	if url == "" {
		return
	}
	_ = p.background("redirect to "+url, nil, func(pg page) error { return pg.goTo(url) })
}

// background runs fn against the page off the calling goroutine. before, if
// set, runs under the pane lock once the page is known to be open. Loads are
// registered under the pane lock, so close waits for every one of them.
func (p *Pane) background(what string, before func(), fn func(page) error) error {
	p.mu.Lock()
	pg := p.pg
	if pg == nil || p.closed {
		p.mu.Unlock()
		return pane.ErrBrowserNotReady
	}
	if before != nil {
		before()
	}
	p.loads.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.loads.Done()
		if err := fn(pg); err != nil {
			p.mgr.logger.Warnf("slot %d: %s failed: %v", p.slot, what, err)
		}
	}()
	return nil
}

func (p *Pane) close() error {
	p.mu.Lock()
	pg := p.pg
	p.pg = nil
	p.closed = true
	p.mu.Unlock()

	var err error
	if pg != nil {
		err = pg.close()
	}
	p.loads.Wait()
	return err
}

// navigationHeaders returns the headers a routed request continues with: the
// guard's headers over the request's own for navigations, nil to leave any
// other request unchanged.
func navigationHeaders(g *navguard.Guard, navigation bool, existing map[string]string) map[string]string {
	if !navigation {
		return nil
	}
	return g.MergeHeaders(existing)
}
