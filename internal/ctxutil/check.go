// Package ctxutil holds small context helpers shared by the CLI commands.
package ctxutil

import "context"

// Canceled reports whether ctx is already done. Command entry points call it
// before staging a workspace or spawning the toolchain, so an interrupt that
// lands between flag parsing and execution never starts a build. The result
// is ctx.Err() — context.Canceled or context.DeadlineExceeded when done, nil
// while the context is live.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
