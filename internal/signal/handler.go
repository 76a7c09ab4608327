// Package signal cancels in-flight build and flash operations when the user
// interrupts the CLI.
//
// One Ctrl-C (or SIGTERM) cancels the handler's context: the running
// arduino-cli child is killed through exec.CommandContext, the orchestrator
// still walks its cleanup phase, and the command returns a cancellation
// error. The handler keeps listening after the first signal instead of
// force-exiting the process — dying mid-cleanup would leave staging
// directories behind, and a flash that already started writing cannot be
// undone from this side of the serial port anyway.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler owns the cancellable context a panda command runs under.
type Handler struct {
	ctx         context.Context //nolint:containedctx // the handler's whole job is this context's lifecycle
	cancel      context.CancelFunc
	interrupted chan struct{}
	done        chan struct{}
	sigs        chan os.Signal

	interruptOnce sync.Once
	stopOnce      sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM on behalf of the given
// parent context.
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := cli.Execute(h.Context(), info)
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffered so a signal delivered while the loop is busy is not
		// dropped. See os/signal.Notify.
		sigs: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigs, syscall.SIGINT, syscall.SIGTERM)
	go h.listen()

	return h
}

// Context returns the context build operations run under. It is canceled on
// the first interrupt.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted reports user interruption: the returned channel closes on the
// first signal and stays closed. Callers distinguishing "operation failed"
// from "user gave up" select on it.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop deregisters the signal handler and cancels the context. Safe to call
// more than once; commands defer it next to handler construction.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigs)
		close(h.done) // release listen() before the channel goes quiet
		h.cancel()
	})
}

// interrupt records the first signal: cancel the context and mark the run as
// user-interrupted. Later signals change nothing.
func (h *Handler) interrupt() {
	h.interruptOnce.Do(func() {
		h.cancel()
		close(h.interrupted)
	})
}

// listen drains the signal channel until Stop is called or the context ends.
// Draining keeps repeated Ctrl-C presses from backing up in the buffered
// channel while toolchain teardown and staging cleanup finish.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case <-h.sigs:
			h.interrupt()
		}
	}
}
