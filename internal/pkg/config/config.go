package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"hrpayroll/backend/internal/pkg/dialect"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

// Namespace prefixes every environment variable, e.g. HR_PRIMARY_VENDOR.
const Namespace = "HR"

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Backend selects and tunes one database.
type Backend struct {
	Vendor       string
	DSN          string `conf:"noprint"`
	MaxOpenConns int
	Debug        bool
}

type Config struct {
	Web struct {
		Addr           string   `conf:"default:0.0.0.0:5000"`
		AllowedOrigins []string `conf:"default:*"`
	}
	Primary struct {
		Vendor       string `conf:"default:sqlserver"`
		DSN          string `conf:"noprint"`
		MaxOpenConns int    `conf:"default:10"`
		Debug        bool   `conf:"default:false"`
	}
	Secondary struct {
		Vendor       string `conf:"default:mysql"`
		DSN          string `conf:"noprint"`
		MaxOpenConns int    `conf:"default:10"`
		Debug        bool   `conf:"default:false"`
	}
	Mysql struct {
		Host     string `conf:"default:localhost:3306"`
		User     string `conf:"default:root"`
		Password string `conf:"noprint"`
		Name     string `conf:"default:hr_payroll"`
	}
	Mssql struct {
		ConnString string `conf:"noprint,default:sqlserver://sa@localhost:1433?database=hr_payroll"`
	}
	Postgres struct {
		DSN string `conf:"noprint,default:postgres://postgres@localhost:5432/hr_payroll?sslmode=disable"`
	}
	Sqlite struct {
		Path string `conf:"default:hr_payroll.db"`
	}
	Auth struct {
		BaseUrl string        `conf:"default:http://localhost:8080"`
		Timeout time.Duration `conf:"default:5s"`
	}
	Log struct {
		Level string `conf:"default:info"`
		Path  string
	}
	Notify struct {
		BotToken string   `conf:"noprint"`
		Chats    []string
	}
	Employee struct {
		ActiveStatus string `conf:"default:active"`
	}
}

// Load reads an optional .env file, then flags and HR_* environment
// variables. On --help it prints the usage and returns ErrHelp.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "loading .env")
	}

	var cfg Config
	if err := conf.Parse(args, Namespace, &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage(Namespace, &cfg)
			if err != nil {
				return Config{}, errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return Config{}, ErrHelp
		}
		return Config{}, errors.Wrap(err, "parsing config")
	}

	return cfg, nil
}

// String renders the config with secrets masked.
func (c Config) String() string {
	out, err := conf.String(&c)
	if err != nil {
		return err.Error()
	}
	return out
}

func (c Config) PrimaryBackend() Backend {
	p := c.Primary
	return Backend{Vendor: p.Vendor, DSN: p.DSN, MaxOpenConns: p.MaxOpenConns, Debug: p.Debug}
}

func (c Config) SecondaryBackend() Backend {
	s := c.Secondary
	return Backend{Vendor: s.Vendor, DSN: s.DSN, MaxOpenConns: s.MaxOpenConns, Debug: s.Debug}
}

// Options turns a backend into sqldb options. An explicit DSN wins over the
// vendor's connection settings.
func (c Config) Options(name string, b Backend) (sqldb.Options, error) {
	d, err := dialect.New(b.Vendor)
	if err != nil {
		return sqldb.Options{}, errors.Wrapf(err, "%s backend", name)
	}

	dsn := strings.TrimSpace(b.DSN)
	if dsn == "" {
		switch d.Vendor() {
		case dialect.SQLServer:
			dsn = c.Mssql.ConnString
		case dialect.MySQL:
			dsn = sqldb.MySQLDSN(c.Mysql.Host, c.Mysql.User, c.Mysql.Password, c.Mysql.Name)
		case dialect.Postgres:
			dsn = c.Postgres.DSN
		case dialect.SQLite:
			dsn = "file:" + c.Sqlite.Path
		}
	} else if d.Vendor() == dialect.MySQL {
		if dsn, err = sqldb.NormalizeMySQLDSN(dsn); err != nil {
			return sqldb.Options{}, errors.Wrapf(err, "%s backend", name)
		}
	}

	return sqldb.Options{
		Name:         name,
		Vendor:       string(d.Vendor()),
		DSN:          dsn,
		MaxOpenConns: b.MaxOpenConns,
		Debug:        b.Debug,
	}, nil
}
