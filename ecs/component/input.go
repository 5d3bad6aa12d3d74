package component

// Input stores per-frame input state for an entity.
type Input struct {
	Left  bool
	Right bool
	Up    bool
}

var InputComponent = NewComponent[Input]()
