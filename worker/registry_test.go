package worker

import (
	"context"
	"testing"
)

func TestRegisterTypeLookupTypeRoundTrip(t *testing.T) {
	RegisterType("test.Echo", func(ctx context.Context, w *Worker) error { return nil })

	fn, ok := LookupType("test.Echo")
	if !ok {
		t.Fatal("LookupType(test.Echo) = false, want true")
	}
	if fn == nil {
		t.Fatal("LookupType returned a nil Main")
	}
}

func TestLookupTypeUnknownClass(t *testing.T) {
	if _, ok := LookupType("test.DoesNotExist"); ok {
		t.Fatal("LookupType(test.DoesNotExist) = true, want false")
	}
}
