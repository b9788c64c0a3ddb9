package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
)

const (
	maxOpenConns = 4
	dialTimeout  = 5 * time.Second
)

// Connect opens a pool against uri, a go-sql-driver DSN, and checks it is reachable.
func Connect(ctx context.Context, uri string) (*sql.DB, error) {
	cfg, err := mysqldriver.ParseDSN(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing MySQL DSN: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = dialTimeout
	}

	connector, err := mysqldriver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating MySQL connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("checking MySQL DB connection: %w", err)
	}

	return db, nil
}
