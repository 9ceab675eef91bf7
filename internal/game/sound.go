package game

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/Garsondee/Pong/internal/pong"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	sampleRate = 44100
	amplitude  = 9000
)

// note is one synthesized tone. Freq slides linearly to EndFreq when set.
type note struct {
	Freq    float64
	EndFreq float64
	Seconds float64
	Square  bool
}

// soundNotes defines the sound effects. No asset files ship with the game,
// so every effect is generated at startup.
var soundNotes = map[string][]note{
	pong.SoundBounce: {{Freq: 520, Seconds: 0.04, Square: true}},
	pong.SoundHit:    {{Freq: 780, Seconds: 0.06, Square: true}},
	pong.SoundMissed: {{Freq: 300, EndFreq: 90, Seconds: 0.35}},
	pong.SoundWin: {
		{Freq: 523, Seconds: 0.12, Square: true},
		{Freq: 659, Seconds: 0.12, Square: true},
		{Freq: 784, Seconds: 0.12, Square: true},
		{Freq: 1046, Seconds: 0.30, Square: true},
	},
}

// synthesize renders notes back to back as 16-bit little-endian stereo PCM,
// the format audio.Context players expect.
func synthesize(notes []note, rate int) []byte {
	var total int
	for _, n := range notes {
		total += int(n.Seconds * float64(rate))
	}
	buf := make([]byte, 0, total*4)
	for _, n := range notes {
		samples := int(n.Seconds * float64(rate))
		end := n.EndFreq
		if end == 0 {
			end = n.Freq
		}
		fade := samples / 10
		phase := 0.0
		for i := 0; i < samples; i++ {
			t := float64(i) / float64(samples)
			freq := n.Freq + (end-n.Freq)*t
			phase += 2 * math.Pi * freq / float64(rate)
			v := math.Sin(phase)
			if n.Square {
				v = math.Copysign(1, v)
			}
			if left := samples - i; fade > 0 && left < fade {
				v *= float64(left) / float64(fade)
			}
			s := uint16(int16(v * amplitude))
			buf = binary.LittleEndian.AppendUint16(buf, s)
			buf = binary.LittleEndian.AppendUint16(buf, s)
		}
	}
	return buf
}

// soundBank plays the effects through one shared audio context.
// It implements pong.SoundPlayer.
type soundBank struct {
	players map[string]*audio.Player
	muted   bool
}

func newSoundBank(muted bool) *soundBank {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	sb := &soundBank{players: make(map[string]*audio.Player, len(soundNotes)), muted: muted}
	for name, notes := range soundNotes {
		sb.players[name] = ctx.NewPlayerFromBytes(synthesize(notes, sampleRate))
	}
	return sb
}

func (sb *soundBank) PlaySound(name string) {
	if sb == nil || sb.muted {
		return
	}
	p, ok := sb.players[name]
	if !ok {
		slog.Debug("unknown sound", "name", name)
		return
	}
	if err := p.SetPosition(0); err != nil {
		slog.Debug("rewind sound", "name", name, "err", err)
		return
	}
	p.Play()
}

// ToggleMute flips the mute flag and returns the new value.
func (sb *soundBank) ToggleMute() bool {
	sb.muted = !sb.muted
	return sb.muted
}
