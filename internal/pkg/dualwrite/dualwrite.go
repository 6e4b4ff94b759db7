// Package dualwrite applies one logical write to the primary and the
// secondary backend.
package dualwrite

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"hrpayroll/backend/internal/pkg/cascade"
	"hrpayroll/backend/internal/pkg/dialect"
	"hrpayroll/backend/internal/pkg/notify"
	"hrpayroll/backend/internal/pkg/repository/sqldb"
)

// ErrDuplicateKey means the secondary already holds the id the primary minted.
var ErrDuplicateKey = errors.New("duplicate key on secondary backend")

// Tx is an open transaction on one backend.
type Tx struct {
	bun.Tx
	Dialect dialect.Dialect
	Backend string
}

// Step runs statements inside one backend's transaction.
type Step func(ctx context.Context, tx Tx) error

// Op is one logical write. Primary runs first and mints identifiers,
// Secondary runs second and reuses them. Steps share state via closures.
type Op struct {
	Name      string
	Primary   Step
	Secondary Step
}

// DualWriter applies an Op to both backends.
//
// The guarantee is weak. Either every statement of both steps is committed,
// or the op fails and both transactions are rolled back, with one exception:
// the primary commits before the secondary, so a secondary commit failure
// (or a crash between the two commits) leaves the primary durable and the
// secondary without the change. That case is reported as *CommitGapError and
// needs manual reconciliation. There is no log to replay it from.
type DualWriter interface {
	Write(ctx context.Context, op Op) error
}

// CommitGapError reports a primary commit whose secondary commit failed.
type CommitGapError struct {
	Op  string
	Err error
}

func (e *CommitGapError) Error() string {
	return fmt.Sprintf("%s: primary committed, secondary commit failed: %v", e.Op, e.Err)
}

func (e *CommitGapError) Unwrap() error {
	return e.Err
}

// Coordinator is the DualWriter over two sqldb backends.
type Coordinator struct {
	primary   *sqldb.Database
	secondary *sqldb.Database
	log       zerolog.Logger
	notifier  notify.Notifier
}

func NewCoordinator(primary, secondary *sqldb.Database, log zerolog.Logger, notifier notify.Notifier) *Coordinator {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Coordinator{
		primary:   primary,
		secondary: secondary,
		log:       log,
		notifier:  notifier,
	}
}

// Write takes one connection per backend, runs op in a transaction on each
// and commits primary then secondary. On any step error both transactions
// are rolled back, rollback errors are dropped, and the step's error is
// returned as is.
func (c *Coordinator) Write(ctx context.Context, op Op) (err error) {
	pconn, err := c.primary.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "connecting to primary")
	}
	defer pconn.Close()

	sconn, err := c.secondary.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "connecting to secondary")
	}
	defer sconn.Close()

	ptx, err := pconn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning primary transaction")
	}
	stx, err := sconn.BeginTx(ctx, nil)
	if err != nil {
		_ = ptx.Rollback()
		return errors.Wrap(err, "beginning secondary transaction")
	}

	rollback := func() {
		_ = ptx.Rollback()
		_ = stx.Rollback()
	}

	if op.Primary != nil {
		if err := op.Primary(ctx, Tx{Tx: ptx, Dialect: c.primary.Dialect, Backend: cascade.Primary}); err != nil {
			rollback()
			return err
		}
	}
	if op.Secondary != nil {
		if err := op.Secondary(ctx, Tx{Tx: stx, Dialect: c.secondary.Dialect, Backend: cascade.Secondary}); err != nil {
			rollback()
			return err
		}
	}

	if err := ptx.Commit(); err != nil {
		rollback()
		return errors.Wrap(err, "committing primary")
	}
	if err := stx.Commit(); err != nil {
		_ = stx.Rollback()

		gap := &CommitGapError{Op: op.Name, Err: err}
		c.log.Error().Err(err).Str("op", op.Name).Msg("commit gap: primary committed, secondary did not")
		c.notifier.Notify(ctx, gap.Error())

		return gap
	}

	return nil
}

// EnsureAbsent fails with ErrDuplicateKey when table already has a row with
// the id.
//
// The check and the following insert are not atomic: two concurrent writes
// of the same id can both pass it. The secondary primary key constraint is
// then the only guard left.
func EnsureAbsent(ctx context.Context, tx Tx, table, idColumn string, id int64) error {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", table, idColumn)
	if err := tx.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return errors.Wrapf(err, "checking %s %d on %s", table, id, tx.Backend)
	}
	if n > 0 {
		return errors.Wrapf(ErrDuplicateKey, "%s %s=%d", table, idColumn, id)
	}
	return nil
}
