package component

import "image/color"

// Label is screen-space text. Centered labels are drawn with their middle on
// the transform; others with their top-left corner there.
type Label struct {
	Text       string
	Size       float64
	Color      color.Color
	Background color.Color
	Centered   bool
}

var LabelComponent = NewComponent[Label]()
