package common

const (
	ScreenWidth  = 800
	ScreenHeight = 600

	// TPS is the fixed simulation rate; one physics step per tick.
	TPS = 60

	Gravity = 300.0
)

// TickSeconds is the duration of one simulation step.
const TickSeconds = 1.0 / TPS
