package scene

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/ecs/render"
	"github.com/milk9111/flagrun/prefabs"
)

// Resources are the assets decoded once at boot and shared with the
// gameplay scene.
type Resources struct {
	Spec     prefabs.AssetsSpec
	Textures *render.Registry
	Clips    *component.AnimationLibrary
	Sounds   *render.SoundBank
}

// PreloadScene shows "Loading..." for one frame, decodes every asset, then
// calls onReady.
type PreloadScene struct {
	audio   *audio.Context
	gain    func() float64
	onReady func(*Resources) error

	face   *text.GoTextFace
	drawn  bool
	loaded bool
}

func NewPreloadScene(ctx *audio.Context, gain func() float64, onReady func(*Resources) error) (*PreloadScene, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("preload: font: %w", err)
	}
	return &PreloadScene{
		audio:   ctx,
		gain:    gain,
		onReady: onReady,
		face:    &text.GoTextFace{Source: src, Size: 32},
	}, nil
}

// Load decodes the textures, sounds and clips named in assets.yaml. The
// first failing asset aborts the load.
func (p *PreloadScene) Load() (*Resources, error) {
	spec, err := prefabs.LoadSpec[prefabs.AssetsSpec]("assets.yaml")
	if err != nil {
		return nil, fmt.Errorf("preload: %w", err)
	}
	textures, err := render.LoadTextures(spec)
	if err != nil {
		return nil, fmt.Errorf("preload: %w", err)
	}
	return &Resources{
		Spec:     spec,
		Textures: textures,
		Clips:    render.LoadClips(spec),
		Sounds:   render.NewSoundBank(p.audio, spec, p.gain),
	}, nil
}

func (p *PreloadScene) Update() error {
	// let "Loading..." reach the screen before the decode stalls the loop
	if !p.drawn || p.loaded {
		return nil
	}
	res, err := p.Load()
	if err != nil {
		return err
	}
	p.loaded = true
	common.Log("scene").Info("assets loaded", "images", len(res.Spec.Images), "sheets", len(res.Spec.Sheets), "sounds", len(res.Spec.Sounds))
	return p.onReady(res)
}

func (p *PreloadScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	msg := "Loading..."
	w, h := text.Measure(msg, p.face, p.face.Size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(common.ScreenWidth/2-w/2, common.ScreenHeight/2-h/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, p.face, op)
	p.drawn = true
}
