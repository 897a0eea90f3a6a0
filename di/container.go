package di

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Container resolves services by key.
type Container interface {
	Register(key string, constructor interface{}) error
	RegisterSingleton(key string, instance interface{}) error
	Resolve(key string) (interface{}, error)
	Has(key string) bool
	Keys() []string
	Close() error
}

// ErrNotRegistered is returned by Resolve for unknown keys.
var ErrNotRegistered = errors.New("component not registered")

type registration struct {
	constructor interface{}
	instance    interface{}
	initialized bool
	mu          sync.Mutex
}

type container struct {
	components map[string]*registration
	mu         sync.RWMutex
}

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{components: make(map[string]*registration)}
}

// Register adds a lazily constructed component. Registering a key twice is an error.
func (c *container) Register(key string, constructor interface{}) error {
	if reflect.ValueOf(constructor).Kind() != reflect.Func {
		return fmt.Errorf("constructor for %s must be a function, got %T", key, constructor)
	}
	return c.add(key, &registration{constructor: constructor})
}

// RegisterSingleton adds a pre-built instance.
func (c *container) RegisterSingleton(key string, instance interface{}) error {
	return c.add(key, &registration{instance: instance, initialized: true})
}

func (c *container) add(key string, reg *registration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[key]; exists {
		return fmt.Errorf("component %s already registered", key)
	}
	c.components[key] = reg
	return nil
}

// Resolve returns the instance for key, constructing it on first use.
// A failed construction is not cached.
func (c *container) Resolve(key string) (interface{}, error) {
	c.mu.RLock()
	reg, exists := c.components[key]
	c.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, key)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.initialized {
		return reg.instance, nil
	}
	instance, err := c.callConstructor(reg.constructor)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", key, err)
	}
	reg.instance = instance
	reg.initialized = true
	return instance, nil
}

// Has reports whether key is registered.
func (c *container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.components[key]
	return ok
}

// Keys returns registered keys in sorted order.
func (c *container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.components))
	for k := range c.components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close closes every constructed instance that implements io.Closer.
func (c *container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for key, reg := range c.components {
		if !reg.initialized || reg.instance == nil {
			continue
		}
		if closer, ok := reg.instance.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", key, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *container) callConstructor(constructor interface{}) (interface{}, error) {
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()

	var args []reflect.Value
	switch fnType.NumIn() {
	case 0:
	case 1:
		if fnType.In(0) == contextType {
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		} else {
			args = []reflect.Value{reflect.ValueOf(Container(c))}
		}
	default:
		return nil, fmt.Errorf("unsupported constructor signature %s", fnType)
	}
	return handleResults(fn.Call(args))
}

func handleResults(results []reflect.Value) (interface{}, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if errVal := results[1].Interface(); errVal != nil {
			err, ok := errVal.(error)
			if !ok {
				return nil, fmt.Errorf("constructor second return value must be an error")
			}
			return nil, err
		}
		return results[0].Interface(), nil
	default:
		return nil, fmt.Errorf("constructor must return 1 or 2 values, got %d", len(results))
	}
}
