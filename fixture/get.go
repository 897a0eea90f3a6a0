package fixture

import (
	"fmt"

	"github.com/kbukum/fixturekit/errors"
)

// Source is anything references can be read from: a *Base or an embedding fixture.
type Source interface {
	All(name string) ([]any, error)
	Random(name string) (any, error)
	Reference(key string) (any, error)
}

// All returns the objects registered under name as []T.
func All[T any](src Source, name string) ([]T, error) {
	objs, err := src.All(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(objs))
	for i, obj := range objs {
		v, ok := obj.(T)
		if !ok {
			return nil, typeMismatch[T](Key(name, i), obj)
		}
		out = append(out, v)
	}
	return out, nil
}

// Random returns one object registered under name as a T.
func Random[T any](src Source, name string) (T, error) {
	var zero T
	obj, err := src.Random(name)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, typeMismatch[T](name, obj)
	}
	return v, nil
}

// Reference returns the object stored under key as a T.
func Reference[T any](src Source, key string) (T, error) {
	var zero T
	obj, err := src.Reference(key)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, typeMismatch[T](key, obj)
	}
	return v, nil
}

func typeMismatch[T any](key string, obj any) *errors.AppError {
	var zero T
	return errors.InvalidInput("reference", fmt.Sprintf("reference %q holds %T, not %T", key, obj, zero)).
		WithDetail("reference", key)
}
