package render

import (
	"bytes"
	"image/color"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/ecs/component"
)

var placeholderColor = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

const labelPadding = 8

// RenderSystem draws rects, sprites and labels, sorted by render layer.
type RenderSystem struct {
	textures *Registry
	font     *text.GoTextFaceSource
	faces    map[float64]*text.GoTextFace
	missing  map[string]*ebiten.Image
	log      *log.Logger
}

// NewRenderSystem creates a RenderSystem. A nil registry draws every sprite
// as a placeholder box.
func NewRenderSystem(textures *Registry) (*RenderSystem, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &RenderSystem{
		textures: textures,
		font:     src,
		faces:    make(map[float64]*text.GoTextFace),
		missing:  make(map[string]*ebiten.Image),
		log:      common.Log("render"),
	}, nil
}

// Update is a no-op (render occurs in Draw).
func (s *RenderSystem) Update(w *ecs.World) {}

type drawItem struct {
	entity ecs.Entity
	layer  int
	seq    int
}

// drawOrder lists drawable entities by layer. Within a layer, creation order
// wins so later entities paint over earlier ones.
func drawOrder(w *ecs.World) []drawItem {
	var items []drawItem
	for seq, e := range ecs.Entities(w) {
		if !ecs.Has(w, e, component.TransformComponent.Kind()) {
			continue
		}
		if !ecs.Has(w, e, component.SpriteComponent.Kind()) &&
			!ecs.Has(w, e, component.RectComponent.Kind()) &&
			!ecs.Has(w, e, component.LabelComponent.Kind()) {
			continue
		}
		layer := 0
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		items = append(items, drawItem{entity: e, layer: layer, seq: seq})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].layer == items[j].layer {
			return items[i].seq < items[j].seq
		}
		return items[i].layer < items[j].layer
	})
	return items
}

// Draw renders the world onto screen.
func (s *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}
	for _, it := range drawOrder(w) {
		tx, _ := ecs.Get(w, it.entity, component.TransformComponent.Kind())
		if rect, ok := ecs.Get(w, it.entity, component.RectComponent.Kind()); ok {
			drawRect(screen, rect, tx)
		}
		if spr, ok := ecs.Get(w, it.entity, component.SpriteComponent.Kind()); ok {
			bw, bh := bodySize(w, it.entity)
			s.drawSprite(screen, spr, tx, bw, bh)
		}
		if label, ok := ecs.Get(w, it.entity, component.LabelComponent.Kind()); ok {
			s.drawLabel(screen, label, tx)
		}
	}
}

func drawRect(screen *ebiten.Image, rect *component.Rect, tx *component.Transform) {
	if rect.Color == nil || rect.Width <= 0 || rect.Height <= 0 {
		return
	}
	x := tx.X - rect.Width/2
	y := tx.Y - rect.Height/2
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(rect.Width), float32(rect.Height), rect.Color, false)
}

// bodySize is the collider size, used to size placeholders.
func bodySize(w *ecs.World, e ecs.Entity) (float64, float64) {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		return body.Width, body.Height
	}
	return 32, 32
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, spr *component.Sprite, tx *component.Transform, bodyW, bodyH float64) {
	if spr.Hidden {
		return
	}
	img := s.textures.Frame(spr.Texture, spr.Frame)
	if img == nil {
		img = s.missing[spr.Texture]
		if img == nil {
			s.log.Warn("missing texture", "key", spr.Texture, "frame", spr.Frame)
			img = Placeholder(int(bodyW), int(bodyH))
			s.missing[spr.Texture] = img
		}
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	if w <= 0 || h <= 0 {
		return
	}

	sx, sy := tx.ScaleX, tx.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(math.Round(tx.X), math.Round(tx.Y))
	op.Filter = ebiten.FilterNearest
	if spr.Tint != nil {
		op.ColorScale.ScaleWithColor(spr.Tint)
	}
	screen.DrawImage(img, op)
}

func (s *RenderSystem) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 16
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.font, Size: size}
	s.faces[size] = f
	return f
}

func (s *RenderSystem) drawLabel(screen *ebiten.Image, label *component.Label, tx *component.Transform) {
	if label.Text == "" {
		return
	}
	face := s.face(label.Size)
	lineSpacing := face.Size * 1.2
	tw, th := text.Measure(label.Text, face, lineSpacing)

	x, y := tx.X, tx.Y
	if label.Centered {
		x -= tw / 2
		y -= th / 2
	}

	if label.Background != nil {
		vector.DrawFilledRect(screen,
			float32(x-labelPadding), float32(y-labelPadding),
			float32(tw+2*labelPadding), float32(th+2*labelPadding),
			label.Background, false)
	}

	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing
	op.GeoM.Translate(math.Round(x), math.Round(y))
	fg := label.Color
	if fg == nil {
		fg = color.Black
	}
	op.ColorScale.ScaleWithColor(fg)
	text.Draw(screen, label.Text, face, op)
}
