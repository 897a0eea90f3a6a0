package fixture

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kbukum/fixturekit/errors"
)

// Store keeps the references created during one load run.
type Store struct {
	counts map[string]int
	refs   map[string]any
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		counts: make(map[string]int),
		refs:   make(map[string]any),
	}
}

// Key returns the store key of the object at index under name.
func Key(name string, index int) string {
	return name + "-" + strconv.Itoa(index)
}

// declare makes name known with zero objects if it is not known yet.
func (s *Store) declare(name string) {
	if _, ok := s.counts[name]; !ok {
		s.counts[name] = 0
	}
}

// register stores obj at the next free index under name and returns that
// index. It fails if a named reference already holds that key.
func (s *Store) register(name string, obj any) (int, error) {
	idx := s.counts[name]
	key := Key(name, idx)
	if _, taken := s.refs[key]; taken {
		return idx, errors.InvalidInput("reference",
			fmt.Sprintf("reference %q is already taken, cannot add object %d of %q", key, idx, name)).
			WithDetail("reference", key)
	}
	s.refs[key] = obj
	s.counts[name] = idx + 1
	return idx, nil
}

// reserved reports whether key is a not yet filled slot of a counted group.
func (s *Store) reserved(key string) bool {
	cut := strings.LastIndexByte(key, '-')
	if cut <= 0 {
		return false
	}
	name := key[:cut]
	n, counted := s.counts[name]
	if !counted {
		return false
	}
	idx, err := strconv.Atoi(key[cut+1:])
	return err == nil && idx >= n && Key(name, idx) == key
}

// Count returns how many objects have been registered under name, and
// whether name is known at all.
func (s *Store) Count(name string) (int, bool) {
	n, ok := s.counts[name]
	return n, ok
}

// Names returns every known reference name in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.counts))
	for name := range s.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the object at index under name.
func (s *Store) At(name string, index int) (any, bool) {
	obj, ok := s.refs[Key(name, index)]
	return obj, ok
}

// All returns the objects registered under name in index order.
func (s *Store) All(name string) ([]any, error) {
	n, ok := s.counts[name]
	if !ok {
		return nil, unknownReference(name)
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.refs[Key(name, i)])
	}
	return out, nil
}

// Random returns one object under name, chosen uniformly with f.
func (s *Store) Random(name string, f Faker) (any, error) {
	n, ok := s.counts[name]
	if !ok {
		return nil, unknownReference(name)
	}
	if n == 0 {
		return nil, errors.InvalidInput("reference", fmt.Sprintf("reference %q has no objects", name)).
			WithDetail("reference", name)
	}
	return s.refs[Key(name, f.Number(0, n-1))], nil
}

// Set stores obj under key, replacing any previous object. Keys past the
// end of a counted group belong to that group and are rejected.
func (s *Store) Set(key string, obj any) error {
	if s.reserved(key) {
		return reservedKey(key)
	}
	s.refs[key] = obj
	return nil
}

// Add stores obj under key and fails if key is already taken or is
// reserved by a counted group.
func (s *Store) Add(key string, obj any) error {
	if _, exists := s.refs[key]; exists {
		return errors.InvalidInput("reference", fmt.Sprintf("reference %q already exists", key)).
			WithDetail("reference", key)
	}
	if s.reserved(key) {
		return reservedKey(key)
	}
	s.refs[key] = obj
	return nil
}

// Lookup returns the object stored under key.
func (s *Store) Lookup(key string) (any, bool) {
	obj, ok := s.refs[key]
	return obj, ok
}

func reservedKey(key string) *errors.AppError {
	return errors.InvalidInput("reference", fmt.Sprintf("reference %q is reserved by a counted group", key)).
		WithDetail("reference", key)
}

func unknownReference(name string) *errors.AppError {
	return errors.InvalidInput("reference", fmt.Sprintf("reference %q does not exist", name)).
		WithDetail("reference", name)
}
