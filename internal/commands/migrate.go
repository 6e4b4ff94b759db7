package commands

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

// Scheme is one migration step. Query uses the $identity, $key, $int, $money,
// $name, $short, $month, $date, $created and $message type tokens.
type Scheme struct {
	Index       int
	Description string
	Query       string
}

var primaryScheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: departments.",
		Query: `
        CREATE TABLE departments (
            DepartmentID $identity,
            DepartmentName $name NOT NULL
        )`,
	},
	{
		Index:       2,
		Description: "Create table: positions.",
		Query: `
        CREATE TABLE positions (
            PositionID $identity,
            PositionName $name NOT NULL
        )`,
	},
	{
		Index:       3,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE employees (
            EmployeeID $identity,
            FullName $name NOT NULL,
            DateOfBirth $date NULL,
            Gender $short NULL,
            PhoneNumber $short NULL,
            Email $name NULL,
            HireDate $date NULL,
            DepartmentID $int NULL REFERENCES departments(DepartmentID),
            PositionID $int NULL REFERENCES positions(PositionID),
            Status $short NULL
        )`,
	},
	{
		Index:       4,
		Description: "Create table: dividends.",
		Query: `
        CREATE TABLE dividends (
            DividendID $identity,
            EmployeeID $int NULL REFERENCES employees(EmployeeID),
            DividendAmount $money NOT NULL DEFAULT 0,
            DividendDate $date NULL,
            CreatedAt $created
        )`,
	},
	{
		Index:       5,
		Description: "Create index: employees by department.",
		Query:       `CREATE INDEX idx_employees_department ON employees (DepartmentID)`,
	},
}

var secondaryScheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: departments (mirror).",
		Query: `
        CREATE TABLE departments (
            DepartmentID $key,
            DepartmentName $name NOT NULL
        )`,
	},
	{
		Index:       2,
		Description: "Create table: positions (mirror).",
		Query: `
        CREATE TABLE positions (
            PositionID $key,
            PositionName $name NOT NULL
        )`,
	},
	{
		Index:       3,
		Description: "Create table: employees (mirror).",
		Query: `
        CREATE TABLE employees (
            EmployeeID $key,
            FullName $name NOT NULL,
            HireDate $date NULL,
            DepartmentID $int NULL REFERENCES departments(DepartmentID),
            PositionID $int NULL REFERENCES positions(PositionID),
            Status $short NULL
        )`,
	},
	{
		Index:       4,
		Description: "Create table: dividends (mirror).",
		Query: `
        CREATE TABLE dividends (
            DividendID $key,
            EmployeeID $int NULL REFERENCES employees(EmployeeID),
            DividendAmount $money NOT NULL DEFAULT 0,
            DividendDate $date NULL,
            CreatedAt $created
        )`,
	},
	{
		Index:       5,
		Description: "Create table: salaries.",
		Query: `
        CREATE TABLE salaries (
            SalaryID $identity,
            EmployeeID $int NOT NULL REFERENCES employees(EmployeeID),
            SalaryMonth $month NOT NULL,
            BaseSalary $money NOT NULL DEFAULT 0,
            Bonus $money NOT NULL DEFAULT 0,
            Deductions $money NOT NULL DEFAULT 0,
            NetSalary $money NOT NULL DEFAULT 0,
            CreatedAt $created
        )`,
	},
	{
		Index:       6,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE attendance (
            AttendanceID $identity,
            EmployeeID $int NOT NULL REFERENCES employees(EmployeeID),
            AttendanceMonth $month NOT NULL,
            WorkDays $int NOT NULL DEFAULT 0,
            AbsentDays $int NOT NULL DEFAULT 0,
            LeaveDays $int NOT NULL DEFAULT 0,
            CreatedAt $created
        )`,
	},
	{
		Index:       7,
		Description: "Create index: salaries by employee and month.",
		Query:       `CREATE INDEX idx_salaries_employee_month ON salaries (EmployeeID, SalaryMonth)`,
	},
	{
		Index:       8,
		Description: "Create index: attendance by employee and month.",
		Query:       `CREATE INDEX idx_attendance_employee_month ON attendance (EmployeeID, AttendanceMonth)`,
	},
}

// Schemes returns the migration list of a backend role.
func Schemes(role string) ([]Scheme, error) {
	switch role {
	case cascade.Primary:
		return primaryScheme, nil
	case cascade.Secondary:
		return secondaryScheme, nil
	}
	return nil, errors.Errorf("unknown backend role %q", role)
}

// Migrate brings both backends up to date, primary first.
func Migrate(ctx context.Context, log zerolog.Logger, primary, secondary *sqldb.Database) error {
	if err := MigrateUP(ctx, log, primary, primaryScheme); err != nil {
		return errors.Wrap(err, "migrating primary")
	}
	if err := MigrateUP(ctx, log, secondary, secondaryScheme); err != nil {
		return errors.Wrap(err, "migrating secondary")
	}
	return nil
}

// MigrateUP applies every step of scheme above the recorded version. A failed
// step is recorded as dirty along with its error and is retried first on the
// next run.
func MigrateUP(ctx context.Context, log zerolog.Logger, db *sqldb.Database, scheme []Scheme) error {
	types := db.Dialect.Types()

	version, dirty, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	run := func(s Scheme) error {
		if _, err := db.Exec(ctx, types.Expand(s.Query)); err != nil {
			if _, uerr := db.Exec(ctx,
				"UPDATE schema_migrations SET version = ?, dirty = 1, last_error = ?",
				s.Index, err.Error()); uerr != nil {
				return errors.Wrapf(uerr, "recording failure of version %d", s.Index)
			}
			return errors.Wrapf(err, "migrate error version: %d", s.Index)
		}
		if _, err := db.Exec(ctx,
			"UPDATE schema_migrations SET version = ?, dirty = 0, last_error = NULL", s.Index); err != nil {
			return errors.Wrapf(err, "recording version %d", s.Index)
		}

		log.Info().
			Str("backend", db.Name).
			Int("version", s.Index).
			Msg(s.Description)

		return nil
	}

	for _, s := range scheme {
		if dirty && s.Index == version {
			if err := run(s); err != nil {
				return err
			}
			continue
		}
		if s.Index > version {
			if err := run(s); err != nil {
				return err
			}
		}
	}

	return nil
}

func currentVersion(ctx context.Context, db *sqldb.Database) (version int, dirty bool, err error) {
	exists, err := hasMigrationsTable(ctx, db)
	if err != nil {
		return 0, false, err
	}

	if !exists {
		ddl := db.Dialect.Types().Expand(
			"CREATE TABLE schema_migrations (version $int NOT NULL, dirty $int NOT NULL, last_error $message NULL)")
		if _, err := db.Exec(ctx, ddl); err != nil {
			return 0, false, errors.Wrap(err, "migrate schema_migrations create error")
		}
		if _, err := db.Exec(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (0, 0)"); err != nil {
			return 0, false, errors.Wrap(err, "migrate schema_migrations init error")
		}
		return 0, false, nil
	}

	rows, err := db.FetchRows(ctx, "SELECT version, dirty FROM schema_migrations")
	if err != nil {
		return 0, false, errors.Wrap(err, "migrate schema_migrations scan")
	}
	if len(rows) == 0 {
		if _, err := db.Exec(ctx, "INSERT INTO schema_migrations (version, dirty) VALUES (0, 0)"); err != nil {
			return 0, false, errors.Wrap(err, "migrate schema_migrations init error")
		}
		return 0, false, nil
	}

	return int(rows[0].Float("version")), rows[0].Float("dirty") != 0, nil
}

func hasMigrationsTable(ctx context.Context, db *sqldb.Database) (bool, error) {
	n, err := db.FetchInt(ctx, db.Dialect.TableExists("schema_migrations"))
	if err != nil {
		return false, errors.Wrap(err, "looking up schema_migrations")
	}
	return n > 0, nil
}
