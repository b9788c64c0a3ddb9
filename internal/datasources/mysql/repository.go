package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/huandu/go-sqlbuilder"
	"github.com/soozu/stove-license/internal/datasources"
	"github.com/soozu/stove-license/internal/domain"
)

const licensesTable = "licenses"

var licenseColumns = []string{
	"license_key",
	"user_id",
	"created_at",
	"expiry_date",
	"discord_contact",
	"is_active",
}

// Schema creates the licenses table. Timestamps are kept as the same strings
// the JSON store writes so both drivers validate identically.
const Schema = `CREATE TABLE IF NOT EXISTS licenses (
	license_key VARCHAR(64) NOT NULL PRIMARY KEY,
	user_id VARCHAR(255) NOT NULL,
	created_at VARCHAR(19) NOT NULL,
	expiry_date VARCHAR(19) NOT NULL,
	discord_contact VARCHAR(255) NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE
)`

var _ datasources.LicenseStore = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the licenses table if it is missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating licenses table: %w", err)
	}
	return nil
}

func (r *Repository) LoadLicenses(ctx context.Context) (domain.Licenses, error) {
	sb := sqlbuilder.Select(licenseColumns...)
	sb.From(licensesTable)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: running licenses query: %w", datasources.ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	licenses := domain.Licenses{}
	for rows.Next() {
		var l domain.License
		if err := rows.Scan(
			&l.LicenseKey,
			&l.UserID,
			&l.CreatedAt,
			&l.ExpiryDate,
			&l.DiscordContact,
			&l.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning licenses: %w", datasources.ErrStorage, err)
		}
		licenses[l.LicenseKey] = l
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing rows iterator: %w", datasources.ErrStorage, err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %w", datasources.ErrStorage, err)
	}

	return licenses, nil
}

// SaveLicenses replaces every row with the given mapping in one transaction.
func (r *Repository) SaveLicenses(ctx context.Context, licenses domain.Licenses) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %w", datasources.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs := sqlbuilder.DeleteFrom(licensesTable).Build()
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: clearing licenses: %w", datasources.ErrStorage, err)
	}

	if len(licenses) > 0 {
		ib := sqlbuilder.InsertInto(licensesTable)
		ib.Cols(licenseColumns...)
		for key, l := range licenses {
			ib.Values(key, l.UserID, l.CreatedAt, l.ExpiryDate, l.DiscordContact, l.IsActive)
		}

		insertQuery, insertArgs := ib.Build()
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("%w: inserting licenses: %w", datasources.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", datasources.ErrStorage, err)
	}
	return nil
}

// LicenseStoreExists treats an empty table as an absent store.
func (r *Repository) LicenseStoreExists(ctx context.Context) (bool, error) {
	sb := sqlbuilder.Select("COUNT(*)")
	sb.From(licensesTable)

	query, args := sb.Build()
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: counting licenses: %w", datasources.ErrStorage, err)
	}
	return count > 0, nil
}
