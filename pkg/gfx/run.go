// ABOUTME: Run wires an App to SIGINT/SIGTERM and reports any fatal error to a handler
// ABOUTME: The interrupt watcher lives in an errgroup goroutine that only calls Stop

package gfx

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termgfx/pkg/terminal"
)

// Run builds an App for scene, runs it until interrupted or until a fatal
// error, then restores the terminal. Construction, run and teardown
// failures are passed to handler; an interrupt is a normal stop.
func Run(scene Scene, cfg Config, handler func(error), opts ...Option) {
	report := func(err error) {
		if err != nil && handler != nil {
			handler(err)
		}
	}

	app, err := NewApp(scene, cfg, opts...)
	if err != nil {
		report(err)
		return
	}
	defer terminal.RestoreOnPanic(app.term)

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		defer terminal.RecoverGoroutine(app.term)
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
		return nil
	})

	runErr := app.Run()
	close(done)
	_ = g.Wait()

	report(errors.Join(runErr, app.Close()))
}
