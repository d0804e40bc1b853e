package credential

import (
	"cmp"
	"context"
	"slices"

	"github.com/spetersoncode/genstudio"
)

// Selector picks the least-loaded eligible credential for each call.
type Selector struct {
	store    *Store
	fallback string
}

// NewSelector creates a Selector over store. fallback, if non-empty, is
// returned when no stored credential is eligible. It is never persisted.
func NewSelector(store *Store, fallback string) *Selector {
	return &Selector{store: store, fallback: fallback}
}

// Select returns the eligible credential with the fewest errors, breaking
// ties by least recent use, and stamps it as used. Pick and stamp happen
// under the store lock so concurrent callers spread across keys.
func (sel *Selector) Select(ctx context.Context) (string, error) {
	var chosen string
	err := sel.store.update(ctx, func(creds []Credential) ([]Credential, error) {
		best := -1
		for i, c := range creds {
			if !c.Eligible() {
				continue
			}
			if best < 0 || less(c, creds[best]) {
				best = i
			}
		}
		if best < 0 {
			return creds, nil
		}
		creds[best].LastUsedAt = sel.store.now()
		chosen = creds[best].Secret
		return creds, nil
	})
	if err != nil {
		return "", err
	}
	if chosen != "" {
		return chosen, nil
	}
	if sel.fallback != "" {
		return sel.fallback, nil
	}
	return "", genstudio.ErrNoCredential
}

// less orders by error count, then last use. Equal records keep store order.
func less(a, b Credential) bool {
	if c := cmp.Compare(a.ErrorCount, b.ErrorCount); c != 0 {
		return c < 0
	}
	return a.LastUsedAt.Before(b.LastUsedAt)
}

// Ranked returns the eligible credentials in selection order without
// stamping any of them.
func (sel *Selector) Ranked(ctx context.Context) ([]Credential, error) {
	creds, err := sel.store.List(ctx)
	if err != nil {
		return nil, err
	}
	creds = slices.DeleteFunc(creds, func(c Credential) bool { return !c.Eligible() })
	slices.SortStableFunc(creds, func(a, b Credential) int {
		if c := cmp.Compare(a.ErrorCount, b.ErrorCount); c != 0 {
			return c
		}
		return a.LastUsedAt.Compare(b.LastUsedAt)
	})
	return creds, nil
}

// Pool bundles a Store and a Selector. It is the credential source handed to
// the executor.
type Pool struct {
	*Store
	*Selector
}

// NewPool creates a Pool over store with the given fallback secret.
func NewPool(store *Store, fallback string) *Pool {
	return &Pool{Store: store, Selector: NewSelector(store, fallback)}
}
