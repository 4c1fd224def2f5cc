// Package browser provides the embedded browser instances behind the pane
// grid.
//
// # Architecture
//
// The package is built around two concepts:
//
// 1. Manager: owns one shared browser process and profile for all panes
// 2. Pane: one page (window or tab) bound to a grid slot, implementing pane.Browser
//
// Two engines are supported. "playwright" drives Chromium through
// playwright-go using a persistent context, so logins survive restarts.
// "rod" drives a local Chrome through go-rod with its own user data
// directory.
//
// # Lifecycle
//
//  1. Create: NewManager selects the engine; Browsers hands out one Pane per slot
//  2. Prepare: the first Pane.Prepare launches the shared browser, every call opens a page
//  3. Use: Navigate and Reload return immediately; loading continues in the background
//  4. Shutdown: closes pages, waits for outstanding loads and stops the engine
//
// A launch failure is remembered, so every pane prepared after it fails
// with the same error instead of relaunching.
//
// # Navigation guard
//
// Every document request a page makes is checked against a navguard.Guard
// keyed by the pane's current home endpoint. Cancelled navigations are
// aborted and the page is sent to the rule's redirect instead. The guard's
// headers are injected into all requests.
//
// # Example Usage
//
//	mgr, err := browser.NewManager(opts, navguard.Default(opts.AcceptLanguage), logger)
//	if err != nil {
//	    return err
//	}
//	defer mgr.Shutdown()
//
//	panes := mgr.Browsers(config.SlotCount)
//	if err := panes[0].Prepare(ctx); err != nil {
//	    return err
//	}
//	_ = panes[0].Navigate("https://claude.ai")
package browser
