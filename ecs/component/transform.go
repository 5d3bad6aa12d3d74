package component

// Transform positions an entity by the centre of its body, in screen pixels
// with y growing downward.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
