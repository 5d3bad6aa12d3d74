package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flagrun/assets"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/prefabs"
)

// LoadTextures decodes every image and sheet named in spec into a registry.
func LoadTextures(spec prefabs.AssetsSpec) (*Registry, error) {
	reg := NewRegistry()
	for _, im := range spec.Images {
		img, err := assets.LoadImage(im.File)
		if err != nil {
			return nil, fmt.Errorf("render: image %s: %w", im.Name, err)
		}
		reg.RegisterImage(im.Name, img)
	}
	for _, sh := range spec.Sheets {
		img, err := assets.LoadImage(sh.File)
		if err != nil {
			return nil, fmt.Errorf("render: sheet %s: %w", sh.Name, err)
		}
		reg.RegisterSheet(sh.Name, Sheet{Image: img, FrameW: sh.FrameW, FrameH: sh.FrameH})
		reg.RegisterImage(sh.Name, img)
	}
	return reg, nil
}

// LoadClips builds the animation library from the clip list in spec.
func LoadClips(spec prefabs.AssetsSpec) *component.AnimationLibrary {
	lib := component.NewAnimationLibrary()
	for _, a := range spec.Animations {
		lib.Register(component.AnimationDef{
			Name:   a.Name,
			Frames: a.FrameList(),
			FPS:    a.FPS,
			Loop:   a.Loop,
		})
	}
	return lib
}

// Placeholder returns a solid image, used when a texture key is unknown.
func Placeholder(w, h int) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(placeholderColor)
	return img
}
