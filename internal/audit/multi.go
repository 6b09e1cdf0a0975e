package audit

import (
	"context"
	"errors"
)

// FanOutStore appends each event to every wrapped store. A failure in one
// store does not stop the others; errors are joined for the worker to log.
type FanOutStore struct {
	stores []Store
}

func NewFanOutStore(stores ...Store) *FanOutStore {
	return &FanOutStore{stores: stores}
}

func (f *FanOutStore) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f.stores {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
