package ecs

import "reflect"

// Commands buffers structural changes made during a frame. They are applied
// in the order they were issued when the scheduler flushes at frame end.
type Commands struct {
	ops []func(*Storage)
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after all systems have executed.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, func(*Storage) { fn() })
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, func(s *Storage) { s.Spawn(components...) })
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, func(s *Storage) { s.Delete(entity) })
}

// AddComponent queues a component attach.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, func(s *Storage) { s.AddComponent(entity, component) })
}

// RemoveComponent queues a component detach.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, func(s *Storage) { s.RemoveComponent(entity, compType) })
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies every queued operation to storage and empties the buffer.
// Operations queued while flushing run in the same flush.
func (c *Commands) Flush(storage *Storage) {
	for i := 0; i < len(c.ops); i++ {
		c.ops[i](storage)
	}
	clear(c.ops)
	c.ops = c.ops[:0]
}
