package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns entities, their component pools and singleton resources.
type Storage struct {
	registry   *ComponentRegistry
	nextId     EntityId
	entities   *intmap.Map[EntityId, []reflect.Type]
	pools      map[reflect.Type]componentPool
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		entities:   intmap.New[EntityId, []reflect.Type](64),
		pools:      make(map[reflect.Type]componentPool),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func (s *Storage) pool(t reflect.Type) componentPool {
	if p, ok := s.pools[t]; ok {
		return p
	}
	factory, ok := s.registry.factories[t]
	if !ok {
		panic(fmt.Sprintf("ecs: component type %s is not registered", t))
	}
	p := factory()
	s.pools[t] = p
	return p
}

// Spawn creates an entity holding components. Components may be values or
// pointers; pointers are copied. Spawning with no components panics.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	s.nextId++
	id := s.nextId
	types := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		t := componentType(c)
		s.pool(t).put(id, c)
		types = append(types, t)
	}
	s.entities.Put(id, types)
	return id
}

// Alive reports whether id refers to a spawned, undeleted entity.
func (s *Storage) Alive(id EntityId) bool {
	_, ok := s.entities.Get(id)
	return ok
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.entities.Len()
}

// Entities yields every live entity with its component types in
// attachment order. The storage must not change during iteration.
func (s *Storage) Entities() iter.Seq2[EntityId, []reflect.Type] {
	return func(yield func(EntityId, []reflect.Type) bool) {
		s.entities.ForEach(func(id EntityId, types []reflect.Type) bool {
			return yield(id, types)
		})
	}
}

// ComponentTypes returns the component types of id, or nil when it is not alive.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	types, _ := s.entities.Get(id)
	return types
}

// Delete removes the entity and all its components.
func (s *Storage) Delete(id EntityId) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	for _, t := range types {
		s.pools[t].remove(id)
	}
	s.entities.Del(id)
	return true
}

// AddComponent attaches or replaces a component on a live entity.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	t := componentType(component)
	p := s.pool(t)
	if !p.has(id) {
		s.entities.Put(id, append(types, t))
	}
	return p.put(id, component)
}

// RemoveComponent detaches a component. An entity left with no components is deleted.
func (s *Storage) RemoveComponent(id EntityId, t reflect.Type) bool {
	types, ok := s.entities.Get(id)
	if !ok {
		return false
	}
	p, ok := s.pools[t]
	if !ok || !p.remove(id) {
		return false
	}

	kept := make([]reflect.Type, 0, len(types))
	for _, typ := range types {
		if typ != t {
			kept = append(kept, typ)
		}
	}
	if len(kept) == 0 {
		s.entities.Del(id)
		return true
	}
	s.entities.Put(id, kept)
	return true
}

// GetComponent returns a pointer to the component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	p, ok := s.pools[t]
	if !ok {
		return nil
	}
	return p.get(id)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	p, ok := s.pools[t]
	return ok && p.has(id)
}

// Get returns a pointer to the T component of id, or nil.
func Get[T any](s *Storage, id EntityId) *T {
	p, ok := s.pools[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return p.(*pool[T]).lookup(id)
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value in place so cached pointers stay valid. Pointers are
// dereferenced.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	s.setSingleton(v.Type(), v)
}

func (s *Storage) setSingleton(t reflect.Type, v reflect.Value) *singletonEntry {
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return entry
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	entry := &singletonEntry{value: ptr, dataPtr: ptr.UnsafePointer()}
	s.singletons[t] = entry
	return entry
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// StorageStats summarises what a storage holds.
type StorageStats struct {
	TotalEntityCount int
	PoolCount        int
	SingletonCount   int
	PoolBreakdown    []PoolStats
	SingletonTypes   []string
}

// PoolStats is the population of one component pool.
type PoolStats struct {
	ComponentType string
	Count         int
}

// CollectStats gathers a sorted snapshot of the storage contents.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.entities.Len(),
		PoolCount:        len(s.pools),
		SingletonCount:   len(s.singletons),
	}
	for t, p := range s.pools {
		stats.PoolBreakdown = append(stats.PoolBreakdown, PoolStats{ComponentType: t.String(), Count: p.len()})
	}
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Slice(stats.PoolBreakdown, func(i, j int) bool {
		return stats.PoolBreakdown[i].ComponentType < stats.PoolBreakdown[j].ComponentType
	})
	sort.Strings(stats.SingletonTypes)
	return stats
}
