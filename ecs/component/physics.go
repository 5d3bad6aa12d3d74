package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Width and Height are the unscaled texture size; the collider uses them
// multiplied by the transform scale.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width  float64
	Height float64
	// Bounce is the restitution against platforms. BounceY overrides it
	// when non-zero.
	Bounce             float64
	BounceY            float64
	Static             bool
	CollideWorldBounds bool
	IgnoreGravity      bool
	// Disabled bodies are removed from the space and skip overlaps.
	Disabled bool

	VelX float64
	VelY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Restitution returns the vertical bounce used for platform contacts.
func (b *PhysicsBody) Restitution() float64 {
	if b.BounceY != 0 {
		return b.BounceY
	}
	return b.Bounce
}

// Touching holds the contact flags of the last physics step. World bounds
// never set them.
type Touching struct {
	Down  bool
	Up    bool
	Left  bool
	Right bool
}

var TouchingComponent = NewComponent[Touching]()
