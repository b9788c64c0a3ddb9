package datasources

import (
	"context"
	"maps"
	"sync"

	"github.com/soozu/stove-license/internal/domain"
)

var _ LicenseStore = (*MemoryLicenseStore)(nil)

// MemoryLicenseStore keeps licenses in process memory. Loads and saves copy
// the mapping so callers never share state with the store.
type MemoryLicenseStore struct {
	mu       sync.Mutex
	licenses domain.Licenses
}

// NewMemoryLicenseStore returns a store seeded with licenses.
// A nil seed gives an absent store until the first save.
func NewMemoryLicenseStore(seed domain.Licenses) *MemoryLicenseStore {
	return &MemoryLicenseStore{licenses: maps.Clone(seed)}
}

func (s *MemoryLicenseStore) LoadLicenses(_ context.Context) (domain.Licenses, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.licenses == nil {
		return domain.Licenses{}, nil
	}
	return maps.Clone(s.licenses), nil
}

func (s *MemoryLicenseStore) SaveLicenses(_ context.Context, licenses domain.Licenses) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.licenses = maps.Clone(licenses)
	if s.licenses == nil {
		s.licenses = domain.Licenses{}
	}
	return nil
}

func (s *MemoryLicenseStore) LicenseStoreExists(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.licenses != nil, nil
}
