package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sheet is a texture cut into equal frames, left to right then top to bottom.
type Sheet struct {
	Image  *ebiten.Image
	FrameW int
	FrameH int
}

// Registry stores textures by key. Plain images count as one-frame sheets.
type Registry struct {
	images map[string]*ebiten.Image
	sheets map[string]Sheet
	frames map[frameKey]*ebiten.Image
}

type frameKey struct {
	texture string
	frame   int
}

func NewRegistry() *Registry {
	return &Registry{
		images: make(map[string]*ebiten.Image),
		sheets: make(map[string]Sheet),
		frames: make(map[frameKey]*ebiten.Image),
	}
}

// RegisterImage stores an image by key.
func (r *Registry) RegisterImage(key string, img *ebiten.Image) {
	if r == nil || key == "" || img == nil {
		return
	}
	r.images[key] = img
}

func (r *Registry) RegisterSheet(key string, sheet Sheet) {
	if r == nil || key == "" || sheet.Image == nil {
		return
	}
	r.sheets[key] = sheet
}

// GetImage returns a cached image by key.
func (r *Registry) GetImage(key string) *ebiten.Image {
	if r == nil || key == "" {
		return nil
	}
	return r.images[key]
}

// Frame returns the cell of a sheet, or the whole image for a plain texture.
// Out-of-range frames yield nil.
func (r *Registry) Frame(key string, frame int) *ebiten.Image {
	if r == nil || key == "" {
		return nil
	}
	sheet, ok := r.sheets[key]
	if !ok {
		return r.GetImage(key)
	}

	fk := frameKey{texture: key, frame: frame}
	if img, ok := r.frames[fk]; ok {
		return img
	}
	b := sheet.Image.Bounds()
	rect, ok := FrameRect(b.Dx(), b.Dy(), sheet.FrameW, sheet.FrameH, frame)
	if !ok {
		return nil
	}
	img, _ := sheet.Image.SubImage(rect.Add(b.Min)).(*ebiten.Image)
	r.frames[fk] = img
	return img
}

// FrameRect locates frame inside a sheet of the given size.
func FrameRect(sheetW, sheetH, frameW, frameH, frame int) (image.Rectangle, bool) {
	if frameW <= 0 || frameH <= 0 || frame < 0 {
		return image.Rectangle{}, false
	}
	cols := sheetW / frameW
	rows := sheetH / frameH
	if cols == 0 || rows == 0 || frame >= cols*rows {
		return image.Rectangle{}, false
	}
	x := (frame % cols) * frameW
	y := (frame / cols) * frameH
	return image.Rect(x, y, x+frameW, y+frameH), true
}
