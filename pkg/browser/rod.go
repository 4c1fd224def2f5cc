package browser

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/entrhq/llmmixer/pkg/navguard"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// rodDriver runs every pane as a target of one locally launched Chrome.
type rodDriver struct {
	opts   config.ResolvedBrowserOptions
	guard  *navguard.Guard
	logger *logging.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodDriver(opts config.ResolvedBrowserOptions, guard *navguard.Guard, logger *logging.Logger) *rodDriver {
	return &rodDriver{opts: opts, guard: guard, logger: logger}
}

func (d *rodDriver) name() string { return config.EngineRod }

func (d *rodDriver) start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := launcher.New().
		Headless(d.opts.Headless).
		UserDataDir(filepath.Join(d.opts.UserDataDir, config.EngineRod))
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	// Not bound to ctx: the browser outlives the preparation call.
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connect to chrome: %w", err)
	}

	d.mu.Lock()
	d.launcher = l
	d.browser = b
	d.mu.Unlock()
	return nil
}

func (d *rodDriver) openPage(ctx context.Context, p *Pane) (page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	b := d.browser
	d.mu.Unlock()

	pg, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := pg.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      d.opts.UserAgent,
		AcceptLanguage: d.opts.AcceptLanguage,
	}); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("failed to set user agent: %w", err)
	}

	router := pg.HijackRequests()
	if err := router.Add("*", proto.NetworkResourceTypeDocument, func(h *rod.Hijack) {
		d.handleHijack(p, h)
	}); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("failed to install request guard: %w", err)
	}
	go router.Run()

	rp := &rodPage{page: pg, router: router}
	go pg.EachEvent(func(ev *proto.PageFrameNavigated) {
		if ev.Frame.ParentID == "" {
			rp.setURL(ev.Frame.URL)
		}
	})()

	return rp, nil
}

// handleHijack sees document requests only, so every request here is a
// navigation of the main frame or an iframe.
func (d *rodDriver) handleHijack(p *Pane, h *rod.Hijack) {
	if dec := p.check(h.Request.URL().String()); dec.Cancel {
		h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
		p.redirect(dec.Redirect)
		return
	}
	existing := make(map[string]string)
	for k, v := range h.Request.Headers() {
		existing[k] = v.Str()
	}
	h.ContinueRequest(&proto.FetchContinueRequest{
		Headers: headerEntries(d.guard.MergeHeaders(existing)),
	})
}

func (d *rodDriver) stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if d.browser != nil {
		err = d.browser.Close()
		d.browser = nil
	}
	if d.launcher != nil {
		d.launcher.Kill()
		d.launcher = nil
	}
	return err
}

// headerEntries turns a header map into CDP header entries in key order.
func headerEntries(h map[string]string) []*proto.FetchHeaderEntry {
	out := make([]*proto.FetchHeaderEntry, 0, len(h))
	for _, k := range slices.Sorted(maps.Keys(h)) {
		out = append(out, &proto.FetchHeaderEntry{Name: k, Value: h[k]})
	}
	return out
}

type rodPage struct {
	page   *rod.Page
	router *rod.HijackRouter

	mu  sync.Mutex
	cur string
}

func (p *rodPage) setURL(u string) {
	p.mu.Lock()
	p.cur = u
	p.mu.Unlock()
}

func (p *rodPage) goTo(url string) error {
	pg := p.page.Timeout(NavigationTimeout * time.Millisecond)
	defer pg.CancelTimeout()
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (p *rodPage) reload() error {
	if err := p.page.Reload(); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	return nil
}

func (p *rodPage) url() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur
}

func (p *rodPage) close() error {
	_ = p.router.Stop()
	return p.page.Close()
}
