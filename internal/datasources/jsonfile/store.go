// Package jsonfile persists licenses as a single human-readable JSON object.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/renameio"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/domain"
)

const filePerm fs.FileMode = 0o600

var _ datasources.LicenseStore = (*Store)(nil)

// Store reads and rewrites the whole license file on every call.
// Writes go to a temporary file which is then renamed over the original, so a
// crash mid-write leaves the previous contents readable.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) LoadLicenses(_ context.Context) (domain.Licenses, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Licenses{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading license file [%s]: %w", datasources.ErrStorage, s.path, err)
	}

	licenses := domain.Licenses{}
	if err := json.Unmarshal(data, &licenses); err != nil {
		return nil, fmt.Errorf("%w: decoding license file [%s]: %w", datasources.ErrStorage, s.path, err)
	}
	return licenses, nil
}

func (s *Store) SaveLicenses(_ context.Context, licenses domain.Licenses) error {
	if licenses == nil {
		licenses = domain.Licenses{}
	}

	data, err := json.MarshalIndent(licenses, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding licenses: %w", datasources.ErrStorage, err)
	}

	if err := renameio.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("%w: writing license file [%s]: %w", datasources.ErrStorage, s.path, err)
	}
	return nil
}

func (s *Store) LicenseStoreExists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: checking license file [%s]: %w", datasources.ErrStorage, s.path, err)
	}
	return true, nil
}
