package ecs_test

import (
	"testing"

	"github.com/plus3/ruzzle/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Clock struct {
	Elapsed float64
}

func TestSingleton(t *testing.T) {
	t.Run("initializer is used once", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		a := ecs.NewSingleton[Clock](storage, Clock{Elapsed: 1})
		b := ecs.NewSingleton[Clock](storage, Clock{Elapsed: 99})

		assert.Equal(t, 1.0, b.Get().Elapsed)
		a.Get().Elapsed = 2
		assert.Equal(t, 2.0, b.Get().Elapsed)
	})

	t.Run("zero value without initializer", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		s := ecs.NewSingleton[Clock](storage)
		assert.True(t, s.Exists())
		assert.Zero(t, s.Get().Elapsed)
	})

	t.Run("pointer singletons keep their type", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		c := &Clock{Elapsed: 4}
		s := ecs.NewSingleton[*Clock](storage, c)
		assert.Same(t, c, *s.Get())
		assert.Zero(t, ecs.NewSingleton[Clock](storage).Get().Elapsed, "value and pointer singletons are distinct")
	})

	t.Run("add singleton replaces in place", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		s := ecs.NewSingleton[Clock](storage)
		ptr := s.Get()
		storage.AddSingleton(&Clock{Elapsed: 5})
		assert.Same(t, ptr, s.Get())
		assert.Equal(t, 5.0, ptr.Elapsed)
	})

	t.Run("init before add", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		var s ecs.Singleton[Clock]
		s.Init(storage)
		assert.False(t, s.Exists())
		assert.Nil(t, s.Get())

		storage.AddSingleton(Clock{Elapsed: 7})
		require.True(t, s.Exists())
		assert.Equal(t, 7.0, s.Get().Elapsed)
	})
}
