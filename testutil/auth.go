package testutil

import (
	"context"
)

// FakeAuthorizer answers IsAuthorized from a fixed allowlist.
type FakeAuthorizer struct {
	Allowed map[string]bool
	// Err, when set, is returned from every check to simulate a
	// provider outage.
	Err error
}

func NewFakeAuthorizer(allowed ...string) *FakeAuthorizer {
	m := make(map[string]bool, len(allowed))
	for _, caller := range allowed {
		m[caller] = true
	}
	return &FakeAuthorizer{Allowed: m}
}

func (f *FakeAuthorizer) IsAuthorized(ctx context.Context, caller string) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	return f.Allowed[caller], nil
}
