package signal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_InterruptCancelsBuildContext(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, h.Context().Err(), "context starts out live")

	h.interrupt()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	select {
	case <-h.Interrupted():
		// reported
	default:
		t.Fatal("Interrupted must report after the first signal")
	}
}

func TestHandler_RepeatedInterruptsAreIdempotent(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	h.interrupt()
	h.interrupt()
	h.interrupt()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	select {
	case <-h.Interrupted():
	default:
		t.Fatal("interrupted channel should stay closed")
	}
}

func TestHandler_InterruptedStaysOpenUntilSignal(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	select {
	case <-h.Interrupted():
		t.Fatal("no signal arrived yet")
	default:
		// open, as it should be
	}
}

func TestHandler_StopCancelsAndIsIdempotent(t *testing.T) {
	h := NewHandler(context.Background())

	h.Stop()
	h.Stop()
	h.Stop()

	assert.Error(t, h.Context().Err())
}

func TestHandler_StopDoesNotReportInterruption(t *testing.T) {
	h := NewHandler(context.Background())
	h.Stop()

	// A normal shutdown is not a user interrupt.
	select {
	case <-h.Interrupted():
		t.Fatal("Stop must not close the interrupted channel")
	default:
	}
}

func TestHandler_ParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()

	assert.Error(t, h.Context().Err())
}

func TestHandler_RepeatedSignalsDoNotBlockDelivery(t *testing.T) {
	h := NewHandler(context.Background())
	defer h.Stop()

	// Simulate hammering Ctrl-C while cleanup runs. Neither send may
	// deadlock: the first is processed, the rest are drained.
	h.sigs <- nil
	h.sigs <- nil

	select {
	case <-h.Interrupted():
	case <-time.After(time.Second):
		t.Fatal("interrupt was never processed")
	}
	require.ErrorIs(t, h.Context().Err(), context.Canceled)
}
