package store

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/models"
)

// Tx is a scoped transaction handle implementing the entity store contract
// from §4.1: eager fetch of related rows, Refresh of specific associations,
// Add/AddAll/Delete, and Commit/Rollback. Mutating component operations run
// inside one Tx (StartDeleteObjects commits and opens a new one after each
// key that receives a new delete marker) and emit at most one error kind
// before rolling back.
type Tx struct {
	db   *gorm.DB
	conn *sql.Conn // non-nil only for a BEGIN IMMEDIATE sqlite transaction
	done bool
}

// Begin opens a transaction under the store's default isolation. Used by
// every endpoint except start_upload and start_delete_objects, which need
// BeginImmediate instead (§4.1, §5).
func (s *GORMStore) Begin(ctx context.Context) (*Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	return &Tx{db: tx}, nil
}

// BeginImmediate opens a transaction that acquires a write-intent lock
// before its first read (§4.1, §5). start_upload and start_delete_objects
// are the two endpoints that race to create or mutate the latest version of
// a (bucket, key) and must use this instead of Begin.
//
// On SQLite this issues a raw BEGIN IMMEDIATE on a connection pinned out of
// the pool, since the database/sql driver's own Begin always issues a plain
// (deferred) BEGIN. On PostgreSQL, which has no DEFERRED/IMMEDIATE
// distinction, a SERIALIZABLE isolation transaction is the equivalent:
// concurrent writers conflict at commit time instead of at lock-acquisition
// time, but conflicts are still detected rather than silently lost.
func (s *GORMStore) BeginImmediate(ctx context.Context) (*Tx, error) {
	if s.config.Type != DatabaseTypeSQLite {
		sqlDB, err := s.db.DB()
		if err != nil {
			return nil, fmt.Errorf("get underlying database: %w", err)
		}
		sqlTx, err := sqlDB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return nil, fmt.Errorf("begin serializable transaction: %w", err)
		}
		gdb, err := gormSessionOnConn(s.db, sqlTx)
		if err != nil {
			_ = sqlTx.Rollback()
			return nil, err
		}
		return &Tx{db: gdb}, nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying database: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("begin immediate: %w", err)
	}
	gdb, err := gormSessionOnConn(s.db, conn)
	if err != nil {
		_, _ = conn.ExecContext(ctx, "ROLLBACK")
		conn.Close()
		return nil, err
	}
	return &Tx{db: gdb, conn: conn}, nil
}

// gormSessionOnConn builds a *gorm.DB that issues every statement over the
// already-transactional connPool, so gorm's own query/create/update builders
// participate in a transaction opened by raw SQL outside gorm's control.
func gormSessionOnConn(base *gorm.DB, connPool gorm.ConnPool) (*gorm.DB, error) {
	session := base.Session(&gorm.Session{NewDB: true, SkipDefaultTransaction: true})
	session.Statement.ConnPool = connPool
	return session, nil
}

// DB returns the transaction's underlying *gorm.DB, for callers (store query
// files) that need direct GORM query building inside the transaction.
func (t *Tx) DB() *gorm.DB {
	return t.db
}

// Add inserts a single new entity.
func (t *Tx) Add(ctx context.Context, entity any) error {
	if err := t.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// AddAll inserts multiple new entities of the same type in one statement.
func (t *Tx) AddAll(ctx context.Context, entities any) error {
	if err := t.db.WithContext(ctx).Create(entities).Error; err != nil {
		return fmt.Errorf("add all: %w", err)
	}
	return nil
}

// Save updates an existing entity in place (all fields).
func (t *Tx) Save(ctx context.Context, entity any) error {
	if err := t.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Delete removes an existing entity.
func (t *Tx) Delete(ctx context.Context, entity any) error {
	if err := t.db.WithContext(ctx).Delete(entity).Error; err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Refresh reloads the given relations on entity from the database, so that
// mutations performed earlier in the transaction (e.g. a sibling insert) are
// visible without re-running the full eager-load query.
func (t *Tx) Refresh(ctx context.Context, entity any, relations ...string) error {
	q := t.db.WithContext(ctx)
	for _, r := range relations {
		q = q.Preload(r)
	}
	if err := q.First(entity).Error; err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return nil
}

// Commit commits the transaction. For a BEGIN IMMEDIATE sqlite transaction it
// releases the pinned connection back to the pool afterward.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if t.conn != nil {
		defer t.conn.Close()
		if _, err := t.conn.ExecContext(ctx, "COMMIT"); err != nil {
			return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
		}
		return nil
	}
	if err := t.db.Commit().Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrTransientStore, err)
	}
	return nil
}

// Rollback aborts the transaction. Safe to call after a successful Commit
// (no-op) so callers can unconditionally `defer tx.Rollback(ctx)`.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	if t.conn != nil {
		defer t.conn.Close()
		_, err := t.conn.ExecContext(ctx, "ROLLBACK")
		return err
	}
	return t.db.Rollback().Error
}
