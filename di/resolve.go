package di

import "fmt"

// Resolve looks key up in c and asserts the instance to T.
//
//	hasher, err := di.Resolve[demo.PasswordHasher](env.Container, demo.HasherKey)
func Resolve[T any](c Container, key string) (T, error) {
	instance, err := c.Resolve(key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("di: failed to resolve %s: %w", key, err)
	}
	return as[T](key, instance)
}

// MustResolve is Resolve for wiring code that cannot continue without key.
func MustResolve[T any](c Container, key string) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// TryResolve reports false instead of failing, for optional services.
func TryResolve[T any](c Container, key string) (T, bool) {
	v, err := Resolve[T](c, key)
	return v, err == nil
}

func as[T any](key string, instance interface{}) (T, error) {
	v, ok := instance.(T)
	if !ok {
		return v, fmt.Errorf("di: component %s is %T, expected %T", key, instance, v)
	}
	return v, nil
}
