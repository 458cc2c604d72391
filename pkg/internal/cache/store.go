package cache

import (
	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// NewStore builds the in-process cache backend shared by the lookup
// layers. Entries are cheap and short-lived; the sizing below is far
// beyond what category resolution ever needs.
func NewStore() (*ristretto_store.RistrettoStore, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     10 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return ristretto_store.NewRistretto(client), nil
}
