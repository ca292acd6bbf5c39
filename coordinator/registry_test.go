package coordinator

import (
	"context"
	"testing"
)

func TestRegisterMainLookupMainRoundTrip(t *testing.T) {
	RegisterMain("test.scenario", func(ctx context.Context, c *Coordinator) int { return 0 })

	fn, ok := LookupMain("test.scenario")
	if !ok {
		t.Fatal("LookupMain(test.scenario) = false, want true")
	}
	if fn == nil {
		t.Fatal("LookupMain returned a nil Main")
	}
}

func TestLookupMainUnknownName(t *testing.T) {
	if _, ok := LookupMain("test.does-not-exist"); ok {
		t.Fatal("LookupMain(test.does-not-exist) = true, want false")
	}
}
