package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Web.Addr)
	assert.Equal(t, "sqlserver", cfg.Primary.Vendor)
	assert.Equal(t, "mysql", cfg.Secondary.Vendor)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, "active", cfg.Employee.ActiveStatus)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HR_PRIMARY_VENDOR", "sqlite")
	t.Setenv("HR_SQLITE_PATH", "/tmp/hr.db")
	t.Setenv("HR_SECONDARY_DSN", "hr:pw@tcp(db:3306)/payroll")
	t.Setenv("HR_EMPLOYEE_ACTIVE_STATUS", "working")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "working", cfg.Employee.ActiveStatus)

	opts, err := cfg.Options("primary", cfg.PrimaryBackend())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", opts.Vendor)
	assert.Equal(t, "file:/tmp/hr.db", opts.DSN)

	opts, err = cfg.Options("secondary", cfg.SecondaryBackend())
	require.NoError(t, err)
	assert.Equal(t, "mysql", opts.Vendor)
	assert.Contains(t, opts.DSN, "hr:pw@tcp(db:3306)/payroll")
	assert.Contains(t, opts.DSN, "parseTime=true")
	assert.Contains(t, opts.DSN, "clientFoundRows=true")
}

func TestOptionsRejectsMalformedMySQLDSN(t *testing.T) {
	t.Setenv("HR_SECONDARY_DSN", "hr:pw@tcp(db:3306)payroll")

	cfg, err := Load(nil)
	require.NoError(t, err)

	_, err = cfg.Options("secondary", cfg.SecondaryBackend())
	assert.Error(t, err)
}

func TestOptionsBuildsMySQLDSN(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	cfg.Mysql.Host = "db:3306"
	cfg.Mysql.Password = "secret"

	opts, err := cfg.Options("secondary", cfg.SecondaryBackend())
	require.NoError(t, err)
	assert.Contains(t, opts.DSN, "root:secret@tcp(db:3306)/hr_payroll")
}

func TestOptionsRejectsUnknownVendor(t *testing.T) {
	var cfg Config
	_, err := cfg.Options("primary", Backend{Vendor: "oracle"})
	assert.Error(t, err)
}

func TestStringMasksSecrets(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	cfg.Notify.BotToken = "super-secret-token"

	assert.NotContains(t, cfg.String(), "super-secret-token")
}
