package component

import "image/color"

// Sprite references a texture by key. Frame selects a cell when the texture
// is registered as a sheet.
type Sprite struct {
	Texture string
	Frame   int
	// Tint multiplies the texture colour; nil draws it unchanged.
	Tint   color.Color
	Hidden bool
}

var SpriteComponent = NewComponent[Sprite]()

// Rect is a solid filled rectangle centred on the transform.
type Rect struct {
	Width  float64
	Height float64
	Color  color.Color
}

var RectComponent = NewComponent[Rect]()
