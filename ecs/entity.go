package ecs

// EntityId identifies an entity within one Storage. Zero is never issued.
type EntityId uint32
