// clipview previews the animation clips declared in prefabs/assets.yaml.
// Left and Right cycle through clips.
package main

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
	"github.com/milk9111/flagrun/ecs/render"
	"github.com/milk9111/flagrun/ecs/system"
	"github.com/milk9111/flagrun/prefabs"
)

const viewSize = 256

type viewer struct {
	world    *ecs.World
	anims    *system.AnimationSystem
	renderer *render.RenderSystem
	keys     system.KeyState
	actor    ecs.Entity
	names    []string
	current  int
}

func newViewer() (*viewer, error) {
	spec, err := prefabs.LoadSpec[prefabs.AssetsSpec]("assets.yaml")
	if err != nil {
		return nil, err
	}
	textures, err := render.LoadTextures(spec)
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderSystem(textures)
	if err != nil {
		return nil, err
	}

	clips := render.LoadClips(spec)
	defs := clips.Defs()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("clipview: no clips in assets.yaml")
	}
	sort.Strings(names)

	texture := ""
	if len(spec.Sheets) > 0 {
		texture = spec.Sheets[0].Name
	}
	for _, a := range spec.Animations {
		if a.Name == names[0] && a.Sheet != "" {
			texture = a.Sheet
		}
	}

	w := ecs.NewWorld()
	actor := ecs.CreateEntity(w)
	if err := ecs.Add(w, actor, component.TransformComponent.Kind(), &component.Transform{X: viewSize / 2, Y: viewSize / 2, ScaleX: 3, ScaleY: 3}); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, actor, component.SpriteComponent.Kind(), &component.Sprite{Texture: texture}); err != nil {
		return nil, err
	}
	anim := &component.Animation{Defs: defs}
	system.PlayAnimation(anim, names[0], false)
	if err := ecs.Add(w, actor, component.AnimationComponent.Kind(), anim); err != nil {
		return nil, err
	}

	return &viewer{
		world:    w,
		anims:    system.NewAnimationSystem(),
		renderer: renderer,
		keys:     render.EbitenKeys{},
		actor:    actor,
		names:    names,
	}, nil
}

func (v *viewer) Update() error {
	step := 0
	if v.keys.JustPressed(system.KeyRight) {
		step = 1
	}
	if v.keys.JustPressed(system.KeyLeft) {
		step = -1
	}
	if step != 0 {
		v.current = (v.current + step + len(v.names)) % len(v.names)
		if anim, ok := ecs.Get(v.world, v.actor, component.AnimationComponent.Kind()); ok {
			system.PlayAnimation(anim, v.names[v.current], false)
		}
	}
	v.anims.Update(v.world)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	v.renderer.Draw(v.world, screen)

	frame := 0
	if spr, ok := ecs.Get(v.world, v.actor, component.SpriteComponent.Kind()); ok {
		frame = spr.Frame
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("clip: %s  frame: %d", v.names[v.current], frame))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	log := common.Log("clipview")
	v, err := newViewer()
	if err != nil {
		log.Fatal("load clips", "err", err)
	}
	ebiten.SetWindowSize(viewSize*2, viewSize*2)
	ebiten.SetWindowTitle("flagrun clips")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal("run", "err", err)
	}
}
