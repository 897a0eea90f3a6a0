// Package testutil provides an in-memory SQLite database component and
// table assertions for tests that write fixtures through GORM.
//
//	db := dbtest.NewComponent().WithModels(&demo.User{})
//	testutil.T(t).Setup(db)
//	uow := database.NewUnitOfWork(db.DB())
//	...
//	dbtest.AssertRowCount(t, db.Gorm(), "users", 10)
package testutil
