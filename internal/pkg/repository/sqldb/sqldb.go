// Package sqldb opens the relational backends and runs short-lived queries
// against them.
package sqldb

import (
	"context"
	"database/sql"
	"os"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"hrpayroll/backend/internal/pkg/dialect"
)

// Database is one backend: a bun handle plus the dialect chosen for it.
type Database struct {
	*bun.DB
	Name    string
	Dialect dialect.Dialect
}

// Options configure Open.
type Options struct {
	Name         string
	Vendor       string
	DSN          string
	MaxOpenConns int
	Debug        bool
}

// Open connects to a backend and verifies the connection.
func Open(ctx context.Context, opts Options) (*Database, error) {
	d, err := dialect.New(opts.Vendor)
	if err != nil {
		return nil, err
	}

	sqlDB, err := openSQL(d.Vendor(), opts.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s database", opts.Name)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	db := bun.NewDB(sqlDB, d.Bun())
	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(opts.Debug),
		bundebug.WithVerbose(true),
		bundebug.WithWriter(os.Stderr),
	))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "pinging %s database", opts.Name)
	}

	return &Database{DB: db, Name: opts.Name, Dialect: d}, nil
}

func openSQL(vendor dialect.Vendor, dsn string) (*sql.DB, error) {
	switch vendor {
	case dialect.SQLServer:
		return sql.Open("sqlserver", dsn)
	case dialect.MySQL:
		return sql.Open("mysql", dsn)
	case dialect.Postgres:
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), nil
	case dialect.SQLite:
		return sql.Open("sqlite3", dsn)
	}
	return nil, errors.Wrapf(dialect.ErrUnknownVendor, "%q", vendor)
}

// MySQLDSN builds a MySQL DSN from its parts. Found rows are reported as
// affected so that an UPDATE that changes nothing still counts as a match.
func MySQLDSN(host, user, password, name string) string {
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.User = user
	cfg.Passwd = password
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.ClientFoundRows = true

	return cfg.FormatDSN()
}

// NormalizeMySQLDSN parses an explicit MySQL DSN and forces the options the
// repositories depend on: time columns scanned into time.Time and found rows
// reported as affected.
func NormalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", errors.Wrap(err, "parsing mysql dsn")
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true

	return cfg.FormatDSN(), nil
}
