// Package fixture generates database fixtures: it repeatedly calls a
// producer to create N objects, registers each under a symbolic reference
// name, persists them through a Manager with occasional intermediate
// flushes, and lets later fixtures read them back.
//
// A fixture embeds Base and implements DoLoad:
//
//	type UserFixture struct{ fixture.Base }
//
//	func (f *UserFixture) Order() int { return 10 }
//
//	func (f *UserFixture) DoLoad(ctx context.Context) error {
//	    return f.Create(ctx, 10, "user", func(ctx context.Context, s fixture.Step) (any, error) {
//	        return &User{Name: fmt.Sprintf("user %d", s.Position)}, nil
//	    })
//	}
//
// Later fixtures resolve what earlier ones created:
//
//	author, err := fixture.Random[*User](f, "user")
//
// Objects registered with Count(n).As(name) are stored under the keys
// "name-0" through "name-(n-1)"; a second batch under the same name
// continues the numbering. Replay(name) walks those keys in order.
//
// All state for one run lives in an Env. Fixtures of a run share it and
// run sequentially; nothing here is safe for concurrent use.
package fixture
