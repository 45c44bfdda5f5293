package ecs_test

import (
	"fmt"

	"github.com/plus3/ruzzle/ecs"
)

type GravitySystem struct {
	Falling ecs.Query[Position]
	Clock   ecs.Singleton[Clock]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Elapsed = frame.Elapsed
	for pos := range s.Falling.Values() {
		pos.Y += 1
	}
}

func Example() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[Clock](storage)
	id := storage.Spawn(Position{X: 3})

	scheduler := ecs.NewScheduler(storage)
	gravity := &GravitySystem{}
	scheduler.Register(gravity)

	for range 4 {
		scheduler.Once(0.5)
	}

	fmt.Println(*ecs.Get[Position](storage, id))
	fmt.Println(gravity.Clock.Get().Elapsed)
	// Output:
	// {3 4}
	// 2
}

func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Name](registry)
	storage := ecs.NewStorage(registry)

	var cmds ecs.Commands
	cmds.Spawn(Name("ghost"))
	fmt.Println(storage.EntityCount())

	cmds.Flush(storage)
	fmt.Println(storage.EntityCount())
	// Output:
	// 0
	// 1
}
