// Package databasemodule owns the unit-of-work boundary used by the catalog:
// every mutating operation runs inside one transaction opened here.
package databasemodule

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/filmadmin/internal/logger"
	"gorm.io/gorm"
)

// TransactionOptions applies to every transaction opened by a manager
type TransactionOptions struct {
	// Timeout bounds the whole unit of work. Zero means no bound beyond the
	// caller's context.
	Timeout time.Duration
}

// TransactionManager handles database transactions
type TransactionManager struct {
	db   *gorm.DB
	opts TransactionOptions
	log  hclog.Logger
	seq  atomic.Uint64

	committed  atomic.Uint64
	rolledBack atomic.Uint64
}

// transaction is one open unit of work
type transaction struct {
	tm      *TransactionManager
	tx      *gorm.DB
	started time.Time
	id      string
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *gorm.DB, opts TransactionOptions) *TransactionManager {
	return &TransactionManager{
		db:   db,
		opts: opts,
		log:  logger.Named("tx"),
	}
}

func (tm *TransactionManager) begin(ctx context.Context) (*transaction, error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	t := &transaction{
		tm:      tm,
		tx:      tx,
		started: time.Now(),
		id:      fmt.Sprintf("tx_%d", tm.seq.Add(1)),
	}

	tm.log.Trace("started transaction", "tx", t.id)
	return t, nil
}

func (t *transaction) active() bool {
	return t.tx != nil
}

func (t *transaction) commit() error {
	if !t.active() {
		return fmt.Errorf("transaction %s is no longer active", t.id)
	}

	if err := t.tx.Commit().Error; err != nil {
		t.tm.log.Error("failed to commit transaction", "tx", t.id, "error", err)
		t.tx = nil
		t.tm.rolledBack.Add(1)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	t.tm.log.Trace("committed transaction", "tx", t.id, "duration", time.Since(t.started))
	t.tx = nil
	t.tm.committed.Add(1)
	return nil
}

func (t *transaction) rollback() error {
	if !t.active() {
		return fmt.Errorf("transaction %s is no longer active", t.id)
	}

	err := t.tx.Rollback().Error
	t.tx = nil
	t.tm.rolledBack.Add(1)
	if err != nil {
		t.tm.log.Error("failed to roll back transaction", "tx", t.id, "error", err)
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	t.tm.log.Trace("rolled back transaction", "tx", t.id, "duration", time.Since(t.started))
	return nil
}

// WithTransaction executes fn within a transaction. The transaction commits
// when fn returns nil and rolls back otherwise, including on panic. When the
// manager has a timeout, fn's statements run under a context bounded by it.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(*gorm.DB) error) error {
	if tm.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tm.opts.Timeout)
		defer cancel()
	}

	t, err := tm.begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if t.active() {
			t.rollback()
		}
	}()

	if err := fn(t.tx); err != nil {
		if rollbackErr := t.rollback(); rollbackErr != nil && ctx.Err() == nil {
			tm.log.Error("failed to roll back after error", "tx", t.id, "error", rollbackErr)
		}
		return withContextErr(ctx, err)
	}

	return withContextErr(ctx, t.commit())
}

// withContextErr attaches ctx's error to err. Once ctx is done database/sql
// rolls the transaction back itself, so statements issued afterwards fail
// with sql.ErrTxDone rather than the deadline that caused it.
func withContextErr(ctx context.Context, err error) error {
	ctxErr := ctx.Err()
	if err == nil || ctxErr == nil || errors.Is(err, ctxErr) {
		return err
	}
	return fmt.Errorf("%w: %w", ctxErr, err)
}

// GetStats returns transaction manager statistics
func (tm *TransactionManager) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"started":     tm.seq.Load(),
		"committed":   tm.committed.Load(),
		"rolled_back": tm.rolledBack.Load(),
		"timeout":     tm.opts.Timeout.String(),
	}

	if sqlDB, err := tm.db.DB(); err == nil {
		dbStats := sqlDB.Stats()
		stats["connection_stats"] = map[string]interface{}{
			"open_connections": dbStats.OpenConnections,
			"in_use":           dbStats.InUse,
			"idle":             dbStats.Idle,
		}
	}

	return stats
}
