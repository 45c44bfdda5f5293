package ecs

import (
	"iter"
	"reflect"
)

// Query iterates every entity carrying a T component. Declare it as a
// system field and the Scheduler wires it up on registration.
type Query[T any] struct {
	storage *Storage
	typ     reflect.Type
}

// NewQuery creates a query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.typ = reflect.TypeFor[T]()
}

func (q *Query[T]) pool() *pool[T] {
	if q.storage == nil {
		return nil
	}
	p, ok := q.storage.pools[q.typ]
	if !ok {
		return nil
	}
	return p.(*pool[T])
}

// Iter yields entity ids with a pointer to their component. The storage must
// not be structurally modified during iteration; use Commands for that.
func (q *Query[T]) Iter() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		p := q.pool()
		if p == nil {
			return
		}
		for i := range p.items {
			if !yield(p.ids[i], &p.items[i]) {
				return
			}
		}
	}
}

// Values yields component pointers only.
func (q *Query[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, c := range q.Iter() {
			if !yield(c) {
				return
			}
		}
	}
}

// First returns the first matching entity, if any.
func (q *Query[T]) First() (EntityId, *T, bool) {
	for id, c := range q.Iter() {
		return id, c, true
	}
	return 0, nil, false
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	if p := q.pool(); p != nil {
		return p.len()
	}
	return 0
}
