package ecs

// UpdateFrame is the per-tick context handed to every system.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt, elapsed float64, storage *Storage, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Commands:  commands,
		Storage:   storage,
	}
}
