// Package database provides the GORM-backed persistence layer fixtures are
// written through: connection setup with retries, the driver registry
// (sqlite, postgres), table purging, a lifecycle component, and UnitOfWork,
// the persist/flush collaborator the fixture iterator talks to.
//
// # Quick Start
//
//	db, err := database.NewWithContext(ctx, dialector, cfg, log)
//	uow := database.NewUnitOfWork(db)
//	_ = uow.Persist(ctx, &user)
//	_ = uow.Flush(ctx) // one transaction for everything staged
//
// # Subpackages
//
//   - migration: file-based migrations using golang-migrate
//   - testutil: in-memory SQLite component and table assertions for tests
package database
