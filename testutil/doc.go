// Package testutil provides lifecycle helpers for components used in tests.
//
// A TestComponent is a component.Component that can also be reset between
// test cases. T(t).Setup starts one and registers its Stop with t.Cleanup:
//
//	func TestLoad(t *testing.T) {
//	    db := dbtest.NewComponent().WithModels(&User{})
//	    testutil.T(t).Setup(db)
//	    ...
//	}
package testutil
