package database_test

import (
	"context"
	"testing"

	"github.com/kbukum/fixturekit/database"
	dbtest "github.com/kbukum/fixturekit/database/testutil"
	apperrors "github.com/kbukum/fixturekit/errors"
	"github.com/kbukum/fixturekit/testutil"
)

type account struct {
	database.BaseModel
	Email string `gorm:"uniqueIndex"`
}

func setupDB(t *testing.T) *dbtest.Component {
	t.Helper()
	c := dbtest.NewComponent().WithModels(&account{})
	testutil.T(t).Setup(c)
	return c
}

func TestUnitOfWorkFlushWritesInOneBatch(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	uow := database.NewUnitOfWork(db.DB())

	a := &account{Email: "a@example.com"}
	b := &account{Email: "b@example.com"}
	for _, obj := range []*account{a, b, a} {
		if err := uow.Persist(ctx, obj); err != nil {
			t.Fatalf("Persist failed: %v", err)
		}
	}
	if uow.Pending() != 2 {
		t.Errorf("expected duplicate pointer to be staged once, pending = %d", uow.Pending())
	}
	dbtest.AssertTableEmpty(t, db.Gorm(), "accounts")

	if err := uow.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	dbtest.AssertRowCount(t, db.Gorm(), "accounts", 2)
	if uow.Pending() != 0 || uow.Written() != 2 || uow.Flushes() != 1 {
		t.Errorf("unexpected counters: pending=%d written=%d flushes=%d", uow.Pending(), uow.Written(), uow.Flushes())
	}
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected BeforeCreate to assign an ID")
	}
}

func TestUnitOfWorkEmptyFlush(t *testing.T) {
	db := setupDB(t)
	uow := database.NewUnitOfWork(db.DB())
	if err := uow.Flush(context.Background()); err != nil {
		t.Fatalf("empty Flush failed: %v", err)
	}
	if uow.Flushes() != 1 {
		t.Errorf("expected empty flush to be counted, got %d", uow.Flushes())
	}
}

func TestUnitOfWorkRejectsNonPointers(t *testing.T) {
	db := setupDB(t)
	uow := database.NewUnitOfWork(db.DB())

	for _, obj := range []interface{}{nil, account{}, (*account)(nil), new(int)} {
		err := uow.Persist(context.Background(), obj)
		if !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("Persist(%T) = %v, want INVALID_INPUT", obj, err)
		}
	}
}

func TestUnitOfWorkFlushFailureRollsBack(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	uow := database.NewUnitOfWork(db.DB())

	uow.Persist(ctx, &account{Email: "dup@example.com"})
	uow.Persist(ctx, &account{Email: "dup@example.com"})

	err := uow.Flush(ctx)
	if !apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
	dbtest.AssertTableEmpty(t, db.Gorm(), "accounts")
	if uow.Pending() != 2 {
		t.Errorf("failed flush should keep staged objects, pending = %d", uow.Pending())
	}
}

func TestPurgeKeepsSchema(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	uow := database.NewUnitOfWork(db.DB())
	uow.Persist(ctx, &account{Email: "x@example.com"})
	if err := uow.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	purged, err := db.DB().Purge(ctx)
	if err != nil {
		t.Fatalf("Purge failed: %v", err)
	}
	found := false
	for _, name := range purged {
		if name == "accounts" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected accounts in purged tables, got %v", purged)
	}
	dbtest.AssertTableEmpty(t, db.Gorm(), "accounts")
}

func TestComponentDescribe(t *testing.T) {
	c := database.NewComponent(database.Config{Enabled: true, AutoMigrate: true}, nil)
	d := c.Describe()
	if d.Type != "database" || d.Details != "sqlite pool=1/1 auto-migrate=on" {
		t.Errorf("unexpected description: %+v", d)
	}
}
