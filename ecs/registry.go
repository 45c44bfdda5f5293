package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry maps component types to pool factories. Each Storage owns
// its pools, so several registries and storages can coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentPool
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentPool),
	}
}

// RegisterComponent registers T so entities can carry it.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentPool {
		return newPool[T]()
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// componentPool is the type-erased face of pool[T].
type componentPool interface {
	put(id EntityId, component any) bool
	get(id EntityId) any
	has(id EntityId) bool
	remove(id EntityId) bool
	len() int
}

// pool stores one component type densely. Removal swaps the last element
// into the hole, so pointers returned by lookup are only stable until the
// next structural change.
type pool[T any] struct {
	index *intmap.Map[EntityId, int]
	ids   []EntityId
	items []T
}

func newPool[T any]() *pool[T] {
	return &pool[T]{index: intmap.New[EntityId, int](64)}
}

func (p *pool[T]) put(id EntityId, component any) bool {
	var value T
	switch c := component.(type) {
	case T:
		value = c
	case *T:
		value = *c
	default:
		return false
	}

	if i, ok := p.index.Get(id); ok {
		p.items[i] = value
		return true
	}
	p.index.Put(id, len(p.items))
	p.ids = append(p.ids, id)
	p.items = append(p.items, value)
	return true
}

func (p *pool[T]) lookup(id EntityId) *T {
	i, ok := p.index.Get(id)
	if !ok {
		return nil
	}
	return &p.items[i]
}

func (p *pool[T]) get(id EntityId) any {
	if c := p.lookup(id); c != nil {
		return c
	}
	return nil
}

func (p *pool[T]) has(id EntityId) bool {
	_, ok := p.index.Get(id)
	return ok
}

func (p *pool[T]) remove(id EntityId) bool {
	i, ok := p.index.Get(id)
	if !ok {
		return false
	}
	last := len(p.items) - 1
	if i != last {
		p.items[i] = p.items[last]
		p.ids[i] = p.ids[last]
		p.index.Put(p.ids[i], i)
	}
	var zero T
	p.items[last] = zero
	p.items = p.items[:last]
	p.ids = p.ids[:last]
	p.index.Del(id)
	return true
}

func (p *pool[T]) len() int {
	return len(p.items)
}
