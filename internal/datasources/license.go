package datasources

import (
	"context"
	"errors"

	"github.com/soozu/stove-license/internal/domain"
)

// ErrStorage marks failures reading or writing the license store.
var ErrStorage = errors.New("license storage error")

// LicenseLoader reads the full license mapping.
// An absent store yields an empty mapping, not an error.
type LicenseLoader interface {
	LoadLicenses(ctx context.Context) (domain.Licenses, error)
}

// LicenseSaver overwrites the full license mapping.
type LicenseSaver interface {
	SaveLicenses(ctx context.Context, licenses domain.Licenses) error
}

// LicenseStoreChecker reports whether the backing store has been created.
type LicenseStoreChecker interface {
	LicenseStoreExists(ctx context.Context) (bool, error)
}

// LicenseStore combines all persistence operations of a store driver.
type LicenseStore interface {
	LicenseLoader
	LicenseSaver
	LicenseStoreChecker
}

// LicenseViewFunc inspects the mapping. exists is false when the store is absent.
type LicenseViewFunc func(licenses domain.Licenses, exists bool) error

// LicenseViewer gives read access to a consistent snapshot of the store.
type LicenseViewer interface {
	ViewLicenses(ctx context.Context, fn LicenseViewFunc) error
}

// LicenseUpdater runs a load, mutate, save sequence.
// The mapping is only saved when fn returns nil.
type LicenseUpdater interface {
	UpdateLicenses(ctx context.Context, fn LicenseViewFunc) error
}

// LicenseTransactor combines viewing and updating.
type LicenseTransactor interface {
	LicenseViewer
	LicenseUpdater
}
