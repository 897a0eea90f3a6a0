// Package fakedata provides the random source fixtures draw from. Faker is
// a seeded gofakeit generator with the two decisions the iterator needs
// (Chance and Number); FakeStruct fills whole structs through go-faker.
package fakedata

import (
	mathrand "math/rand"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-faker/faker/v4"
)

func init() {
	// Structs with interface{} fields would otherwise make FakeData fail.
	faker.SetIgnoreInterface(true)
	if err := faker.SetRandomMapAndSliceMaxSize(2); err != nil {
		panic(err)
	}
}

// go-faker keeps its random source in package state.
var structMu sync.Mutex

// Faker is a seeded generator. The full gofakeit API (Name, Email,
// Sentence, ...) is available through the embedded *gofakeit.Faker.
type Faker struct {
	*gofakeit.Faker
	seed int64
}

// New creates a generator. A zero seed picks a random non-zero one, which
// Seed reports so the run can be repeated; any other seed is used as is.
func New(seed int64) *Faker {
	for seed == 0 {
		seed = gofakeit.NewCrypto().Int64()
	}
	return &Faker{Faker: gofakeit.New(seed), seed: seed}
}

// Seed returns the seed the generator runs on.
func (f *Faker) Seed() int64 { return f.seed }

// Chance returns true with probability p. p <= 0 never fires and p >= 1
// always does.
func (f *Faker) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return f.Float64() < p
}

// FakeStruct fills the struct pointed to by a with random data, honoring
// `faker:"..."` tags. The go-faker source is reseeded from f on every call,
// so the result follows f's seed.
func (f *Faker) FakeStruct(a interface{}) error {
	structMu.Lock()
	defer structMu.Unlock()
	faker.SetRandomSource(mathrand.NewSource(f.Int64()))
	return faker.FakeData(a)
}
