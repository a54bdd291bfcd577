// Package reconcile synchronizes a persisted child collection with a client-supplied desired state.
package reconcile

import (
	"reflect"
	"sync"

	"quiz-course/internal/domain"
)

// Identifiable is implemented by both desired records and persisted entities.
// A non-positive id on a desired record means "not persisted yet".
type Identifiable interface {
	GetID() int64
}

type ruleKey struct {
	desired   reflect.Type
	persisted reflect.Type
}

// Registry maps a (desired kind, persisted kind) pair to the function that copies
// fields from one onto the other.
type Registry struct {
	mu    sync.RWMutex
	rules map[ruleKey]any
}

func NewRegistry() *Registry {
	return &Registry{rules: make(map[ruleKey]any)}
}

// Register installs the copy rule for D -> E, replacing any previous one.
func Register[D, E any](r *Registry, copyFn func(src D, dst E)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[keyFor[D, E]()] = copyFn
}

// Lookup returns the copy rule for D -> E or an UNSUPPORTED_RELATION error.
func Lookup[D, E any](r *Registry) (func(src D, dst E), error) {
	key := keyFor[D, E]()

	r.mu.RLock()
	rule, ok := r.rules[key]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NewUnsupportedRelationError(key.desired.String(), key.persisted.String())
	}
	return rule.(func(D, E)), nil
}

// Copy applies the registered D -> E rule to a single pair.
func Copy[D, E any](r *Registry, src D, dst E) error {
	copyFn, err := Lookup[D, E](r)
	if err != nil {
		return err
	}
	copyFn(src, dst)
	return nil
}

func keyFor[D, E any]() ruleKey {
	return ruleKey{desired: reflect.TypeFor[D](), persisted: reflect.TypeFor[E]()}
}
