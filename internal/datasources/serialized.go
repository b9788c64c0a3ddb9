package datasources

import (
	"context"
	"fmt"
	"sync"

	"github.com/soozu/stove-license/internal/domain"
)

var _ LicenseTransactor = (*SerializedStore)(nil)

// SerializedStore guards a LicenseStore with a single mutex so concurrent
// read-modify-write sequences cannot lose updates within this process.
type SerializedStore struct {
	store LicenseStore
	mu    sync.Mutex
}

func NewSerializedStore(store LicenseStore) *SerializedStore {
	return &SerializedStore{store: store}
}

func (s *SerializedStore) ViewLicenses(ctx context.Context, fn LicenseViewFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	licenses, exists, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(licenses, exists)
}

func (s *SerializedStore) UpdateLicenses(ctx context.Context, fn LicenseViewFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	licenses, exists, err := s.load(ctx)
	if err != nil {
		return err
	}

	if err := fn(licenses, exists); err != nil {
		return err
	}

	if err := s.store.SaveLicenses(ctx, licenses); err != nil {
		return fmt.Errorf("saving licenses: %w", err)
	}
	return nil
}

func (s *SerializedStore) load(ctx context.Context) (domain.Licenses, bool, error) {
	exists, err := s.store.LicenseStoreExists(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("checking license store: %w", err)
	}

	licenses, err := s.store.LoadLicenses(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("loading licenses: %w", err)
	}
	if licenses == nil {
		licenses = domain.Licenses{}
	}
	return licenses, exists, nil
}
