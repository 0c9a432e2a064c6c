package store

import (
	"context"
	"time"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/observability"
)

// Instrument wraps a store so every operation reports its name, duration
// and outcome through the observability store hooks. The zero-overhead
// noop hooks make the wrapper safe to apply unconditionally.
func Instrument(s Store) Store {
	return &observedStore{inner: s}
}

type observedStore struct {
	inner Store
}

var _ Store = (*observedStore)(nil)

func (o *observedStore) Get(ctx context.Context, id string) (*document.Document, error) {
	start := time.Now()
	d, err := o.inner.Get(ctx, id)
	observability.Store().OnStoreOp(ctx, "get", time.Since(start), err)
	return d, err
}

func (o *observedStore) Put(ctx context.Context, d *document.Document) error {
	start := time.Now()
	err := o.inner.Put(ctx, d)
	observability.Store().OnStoreOp(ctx, "put", time.Since(start), err)
	return err
}

func (o *observedStore) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := o.inner.Delete(ctx, id)
	observability.Store().OnStoreOp(ctx, "delete", time.Since(start), err)
	return err
}

func (o *observedStore) List(ctx context.Context) ([]Summary, error) {
	start := time.Now()
	out, err := o.inner.List(ctx)
	observability.Store().OnStoreOp(ctx, "list", time.Since(start), err)
	return out, err
}

func (o *observedStore) Close(ctx context.Context) error {
	return o.inner.Close(ctx)
}
