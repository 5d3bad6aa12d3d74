package component

type AnimationDef struct {
	Name   string
	Frames []int
	FPS    float64
	Loop   bool
}

type Animation struct {
	Defs       map[string]AnimationDef
	Current    string
	Frame      int // index into Defs[Current].Frames
	FrameTimer int // ticks spent on Frame
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()

// AnimationLibrary stores named clips shared by every animated entity.
type AnimationLibrary struct {
	defs map[string]AnimationDef
}

func NewAnimationLibrary() *AnimationLibrary {
	return &AnimationLibrary{defs: make(map[string]AnimationDef)}
}

// Register adds or replaces a clip. Clips without frames are ignored.
func (l *AnimationLibrary) Register(def AnimationDef) {
	if l == nil || def.Name == "" || len(def.Frames) == 0 {
		return
	}
	l.defs[def.Name] = def
}

func (l *AnimationLibrary) Get(name string) (AnimationDef, bool) {
	if l == nil {
		return AnimationDef{}, false
	}
	def, ok := l.defs[name]
	return def, ok
}

// Defs returns a copy of every registered clip, keyed by name.
func (l *AnimationLibrary) Defs() map[string]AnimationDef {
	out := make(map[string]AnimationDef)
	if l == nil {
		return out
	}
	for k, v := range l.defs {
		out[k] = v
	}
	return out
}
