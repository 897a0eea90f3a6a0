package fakedata

import "testing"

func TestChanceBounds(t *testing.T) {
	f := New(1)
	for i := 0; i < 1000; i++ {
		if f.Chance(0) {
			t.Fatal("Chance(0) fired")
		}
		if !f.Chance(1) {
			t.Fatal("Chance(1) did not fire")
		}
		if f.Chance(-0.5) || !f.Chance(1.5) {
			t.Fatal("out of range probabilities should clamp")
		}
	}
}

func TestChanceRate(t *testing.T) {
	f := New(42)
	hits := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if f.Chance(0.05) {
			hits++
		}
	}
	if hits < 300 || hits > 700 {
		t.Errorf("Chance(0.05) fired %d/%d times, expected around 500", hits, n)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 20; i++ {
		if x, y := a.Number(0, 1000), b.Number(0, 1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	if a.Seed() != 7 {
		t.Errorf("Seed() = %d", a.Seed())
	}
}

func TestNumberRange(t *testing.T) {
	f := New(3)
	for i := 0; i < 500; i++ {
		if n := f.Number(0, 4); n < 0 || n > 4 {
			t.Fatalf("Number(0, 4) = %d", n)
		}
	}
	if n := f.Number(0, 0); n != 0 {
		t.Errorf("Number(0, 0) = %d", n)
	}
}

type profile struct {
	Bio   string `faker:"sentence"`
	Tags  []string
	Extra interface{}
}

func TestZeroSeedIsResolved(t *testing.T) {
	f := New(0)
	if f.Seed() == 0 {
		t.Fatal("Seed() = 0, want the seed actually used")
	}
	again := New(f.Seed())
	for i := 0; i < 20; i++ {
		if x, y := f.Number(0, 1000), again.Number(0, 1000); x != y {
			t.Fatalf("draw %d differs after reseeding with %d: %d vs %d", i, f.Seed(), x, y)
		}
	}
}

func TestFakeStructFollowsSeed(t *testing.T) {
	var a, b profile
	if err := New(11).FakeStruct(&a); err != nil {
		t.Fatalf("FakeStruct failed: %v", err)
	}
	if err := New(11).FakeStruct(&b); err != nil {
		t.Fatalf("FakeStruct failed: %v", err)
	}
	if a.Bio != b.Bio {
		t.Errorf("same seed gave %q and %q", a.Bio, b.Bio)
	}
}

func TestFakeStruct(t *testing.T) {
	var p profile
	if err := New(5).FakeStruct(&p); err != nil {
		t.Fatalf("FakeStruct failed: %v", err)
	}
	if p.Bio == "" {
		t.Error("expected Bio to be filled")
	}
	if len(p.Tags) > 2 {
		t.Errorf("slice size should be capped at 2, got %d", len(p.Tags))
	}
}
