package worker

import (
	"context"
	"testing"
	"time"
)

func TestSignalIsIdempotentWhenNoWaiterPending(t *testing.T) {
	w := New("w", [6]byte{}, nil, nil, nil, nil)
	w.Signal()
	w.Signal() // second call must not block or panic

	ctx := context.Background()
	if err := w.Wait(ctx, 100*time.Millisecond); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestWaitTimesOutWithoutSignal(t *testing.T) {
	w := New("w", [6]byte{}, nil, nil, nil, nil)
	err := w.Wait(context.Background(), 20*time.Millisecond)
	if err == nil {
		t.Fatalf("Wait returned nil, want Timeout")
	}
}

func TestSendRecvRoundTrip(t *testing.T) {
	w := New("w", [6]byte{}, nil, nil, nil, nil)
	w.Send(42)
	got, err := w.RecvFromCoordinator(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("RecvFromCoordinator: %v", err)
	}
	if got.(int) != 42 {
		t.Fatalf("got %v, want 42", got)
	}

	w.SendToCoordinator("done")
	got, err = w.RecvFromWorker(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("RecvFromWorker: %v", err)
	}
	if got.(string) != "done" {
		t.Fatalf("got %v, want done", got)
	}
}

// TestRunMainReportsFailure covers the half of P10/S6 owned by worker: a
// Main that returns an error pushes the worker's name onto terminated and
// an Aborted value onto the abort channel exactly once.
func TestRunMainReportsFailure(t *testing.T) {
	terminated := make(chan string, 1)
	aborted := make(chan error, 1)
	w := New("flaky", [6]byte{}, nil, nil, terminated, aborted)

	w.RunMain(context.Background(), func(ctx context.Context, w *Worker) error {
		return errFail
	})

	select {
	case name := <-terminated:
		if name != "flaky" {
			t.Fatalf("terminated name = %q, want flaky", name)
		}
	default:
		t.Fatal("nothing pushed onto terminated queue")
	}

	select {
	case err := <-aborted:
		a, ok := err.(*Aborted)
		if !ok || a.Worker != "flaky" {
			t.Fatalf("aborted = %v (%T), want *Aborted{Worker: flaky}", err, err)
		}
	default:
		t.Fatal("nothing pushed onto abort channel")
	}
}

// TestRunMainRecoversPanic covers the panic half of §7 propagation policy 2.
func TestRunMainRecoversPanic(t *testing.T) {
	terminated := make(chan string, 1)
	aborted := make(chan error, 1)
	w := New("panicky", [6]byte{}, nil, nil, terminated, aborted)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.RunMain(context.Background(), func(ctx context.Context, w *Worker) error {
			panic("boom")
		})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunMain did not return after a panicking Main")
	}

	select {
	case <-terminated:
	default:
		t.Fatal("panic did not reach the terminated queue")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errFail = testError("scenario failed")
