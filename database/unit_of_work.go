package database

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/kbukum/fixturekit/errors"
)

// UnitOfWork stages objects and writes them to the database in one
// transaction on Flush. Objects are saved in the order they were staged;
// staging the same pointer twice keeps its first position.
type UnitOfWork struct {
	db      *DB
	mu      sync.Mutex
	pending []interface{}
	staged  map[interface{}]struct{}
	flushes int
	written int
}

// NewUnitOfWork creates a unit of work writing through db.
func NewUnitOfWork(db *DB) *UnitOfWork {
	return &UnitOfWork{db: db, staged: make(map[interface{}]struct{})}
}

// Persist stages obj for the next Flush. obj must be a non-nil pointer to a struct.
func (u *UnitOfWork) Persist(_ context.Context, obj interface{}) error {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return apperrors.InvalidInput("object", fmt.Sprintf("expected a non-nil pointer to a struct, got %T", obj))
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.staged[obj]; ok {
		return nil
	}
	u.staged[obj] = struct{}{}
	u.pending = append(u.pending, obj)
	return nil
}

// Flush saves every staged object inside a single transaction. On failure
// the transaction is rolled back and the staged objects are kept.
func (u *UnitOfWork) Flush(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.flushes++
	if len(u.pending) == 0 {
		return nil
	}

	err := u.db.WithTransaction(ctx, func(tx *gorm.DB) error {
		for _, obj := range u.pending {
			if err := tx.Omit(clause.Associations).Save(obj).Error; err != nil {
				return fmt.Errorf("save %T: %w", obj, err)
			}
		}
		return nil
	})
	if err != nil {
		return FromDatabase(err, "fixture")
	}

	u.written += len(u.pending)
	u.pending = nil
	u.staged = make(map[interface{}]struct{})
	return nil
}

// Pending returns the number of objects staged and not yet flushed.
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}

// Flushes returns how many times Flush has been called.
func (u *UnitOfWork) Flushes() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.flushes
}

// Written returns how many objects have been saved by successful flushes.
func (u *UnitOfWork) Written() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.written
}
