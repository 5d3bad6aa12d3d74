package render

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/milk9111/flagrun/assets"
	"github.com/milk9111/flagrun/common"
	"github.com/milk9111/flagrun/ecs"
	"github.com/milk9111/flagrun/prefabs"
)

const sampleRate = 44100

// soundForEvent maps gameplay events to sound names in assets.yaml.
var soundForEvent = map[ecs.EventKind]string{
	ecs.EventCoinCollected: "coin",
	ecs.EventEnemyStomped:  "stomp",
	ecs.EventPlayerHurt:    "hurt",
	ecs.EventFlagReached:   "win",
}

// SoundBank plays a short effect for each gameplay event.
type SoundBank struct {
	players map[string]*audio.Player
	volumes map[string]float64
	gain    func() float64
	log     *log.Logger
}

// NewSoundBank decodes every sound in spec. Sounds that fail to decode are
// logged and skipped. gain scales each sound's own volume at play time and
// may be nil.
func NewSoundBank(ctx *audio.Context, spec prefabs.AssetsSpec, gain func() float64) *SoundBank {
	sb := &SoundBank{
		players: make(map[string]*audio.Player),
		volumes: make(map[string]float64),
		gain:    gain,
		log:     common.Log("audio"),
	}
	if ctx == nil {
		ctx = audio.CurrentContext()
	}
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	for _, s := range spec.Sounds {
		p, err := assets.LoadAudioPlayer(ctx, s.File)
		if err != nil {
			sb.log.Warn("skip sound", "name", s.Name, "err", err)
			continue
		}
		sb.players[s.Name] = p
		sb.volumes[s.Name] = s.Volume
	}
	return sb
}

// Play rewinds and starts the named sound. Nothing plays at zero gain.
func (sb *SoundBank) Play(name string) {
	if sb == nil {
		return
	}
	p, ok := sb.players[name]
	if !ok {
		return
	}
	gain := 1.0
	if sb.gain != nil {
		gain = sb.gain()
	}
	vol := mixVolume(sb.volumes[name], gain)
	if vol <= 0 {
		return
	}
	p.SetVolume(vol)
	if err := p.Rewind(); err != nil {
		sb.log.Debug("rewind", "name", name, "err", err)
	}
	p.Play()
}

// PlayEvents plays the sound mapped to each event.
func (sb *SoundBank) PlayEvents(events []ecs.Event) {
	for _, ev := range events {
		if name, ok := soundForEvent[ev.Kind]; ok {
			sb.Play(name)
		}
	}
}

// mixVolume scales a sound's volume by gain. An unset volume counts as 1.
func mixVolume(volume, gain float64) float64 {
	if volume <= 0 {
		volume = 1
	}
	return common.Clamp(volume*gain, 0, 1)
}
