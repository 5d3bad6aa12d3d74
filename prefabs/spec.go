package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// AssetsSpec lists every texture, sheet, sound and animation clip loaded at
// boot.
type AssetsSpec struct {
	Images     []ImageSpec        `yaml:"images"`
	Sheets     []SheetSpec        `yaml:"sheets"`
	Sounds     []AudioSpec        `yaml:"sounds"`
	Animations []AnimationDefSpec `yaml:"animations"`
}

type ImageSpec struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type SheetSpec struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	FrameW int    `yaml:"frame_w"`
	FrameH int    `yaml:"frame_h"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// AnimationDefSpec describes a clip either by an explicit frame list or by
// an inclusive Start..End range.
type AnimationDefSpec struct {
	Name   string  `yaml:"name"`
	Sheet  string  `yaml:"sheet"`
	Frames []int   `yaml:"frames"`
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// FrameList expands the clip into frame indices.
func (s AnimationDefSpec) FrameList() []int {
	if len(s.Frames) > 0 {
		return append([]int(nil), s.Frames...)
	}
	if s.End < s.Start {
		return nil
	}
	out := make([]int, 0, s.End-s.Start+1)
	for i := s.Start; i <= s.End; i++ {
		out = append(out, i)
	}
	return out
}

type LevelSpec struct {
	Name       string         `yaml:"name"`
	Background BackgroundSpec `yaml:"background"`
	Ground     ColliderSpec   `yaml:"ground"`
	GroundSkin SpriteSpec     `yaml:"ground_sprite"`
	Platforms  []PlatformSpec `yaml:"platforms"`
	Player     PositionSpec   `yaml:"player"`
	Enemies    []PositionSpec `yaml:"enemies"`
	Coins      CoinRowSpec    `yaml:"coins"`
	Flag       FlagSpec       `yaml:"flag"`
	ScoreLabel LabelSpec      `yaml:"score_label"`
}

type BackgroundSpec struct {
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type PlatformSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CoinRowSpec places Count coins starting at X, Y, StepX apart.
type CoinRowSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	StepX float64 `yaml:"step_x"`
	Count int     `yaml:"count"`
}

type FlagSpec struct {
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Collider ColliderSpec `yaml:"collider"`
	Sprite   SpriteSpec   `yaml:"sprite"`
}

type LabelSpec struct {
	X     float64    `yaml:"x"`
	Y     float64    `yaml:"y"`
	Size  float64    `yaml:"size"`
	Color *YAMLColor `yaml:"color"`
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	MoveSpeed   float64         `yaml:"move_speed"`
	JumpSpeed   float64         `yaml:"jump_speed"`
	StompBounce float64         `yaml:"stomp_bounce"`
	Bounce      float64         `yaml:"bounce"`
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	Animation   string          `yaml:"animation"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type EnemySpec struct {
	Name        string          `yaml:"name"`
	PatrolSpeed float64         `yaml:"patrol_speed"`
	MinX        float64         `yaml:"min_x"`
	MaxX        float64         `yaml:"max_x"`
	StompValue  int             `yaml:"stomp_value"`
	Bounce      float64         `yaml:"bounce"`
	Script      string          `yaml:"script"`
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type CoinSpec struct {
	Name        string          `yaml:"name"`
	Value       int             `yaml:"value"`
	BounceMin   float64         `yaml:"bounce_min"`
	BounceMax   float64         `yaml:"bounce_max"`
	Collider    ColliderSpec    `yaml:"collider"`
	Sprite      SpriteSpec      `yaml:"sprite"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SpriteSpec struct {
	Image string `yaml:"image"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the decoded colour, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
