package browser

import (
	"context"
	"errors"
)

var (
	// ErrUnknownEngine is returned by NewManager for an unsupported engine name.
	ErrUnknownEngine = errors.New("unknown browser engine")

	// ErrAlreadyPrepared is returned when Prepare is called on a ready pane.
	ErrAlreadyPrepared = errors.New("browser already prepared")

	// ErrShutdown is returned when a pane is prepared after Shutdown.
	ErrShutdown = errors.New("browser manager shut down")
)

// Default timings for page operations.
const (
	// NavigationTimeout bounds a single Goto or Reload in milliseconds.
	NavigationTimeout = 60000
)

// driver is one browser engine. start and stop are called at most once
// each; openPage is called once per pane after a successful start.
type driver interface {
	name() string
	start(ctx context.Context) error
	openPage(ctx context.Context, p *Pane) (page, error)
	stop() error
}

// page is one engine page. goTo and reload may block until the load
// settles; callers run them off the UI goroutine.
type page interface {
	goTo(url string) error
	reload() error
	url() string
	close() error
}
