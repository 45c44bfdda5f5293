package ecs

// System is one step of the frame. Exported Query and Singleton fields are
// wired by the Scheduler; any other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
