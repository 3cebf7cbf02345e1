package tui

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog/log"
)

const sampleRate = beep.SampleRate(44100)

// Sounder plays the completion jingle.
type Sounder interface {
	Play()
}

// Chime is a two-note rising jingle on the default audio device.
type Chime struct {
	ok bool
}

// NewChime opens the speaker. Audio is optional: on failure the chime is
// silent and the error is only logged.
func NewChime() *Chime {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn().Err(err).Msg("audio unavailable, celebrations will be silent")
		return &Chime{}
	}
	return &Chime{ok: true}
}

// Play queues the jingle and returns immediately.
func (c *Chime) Play() {
	if !c.ok {
		return
	}
	first, err := note(987.77, 90*time.Millisecond) // B5
	if err != nil {
		log.Debug().Err(err).Msg("chime")
		return
	}
	second, err := note(1318.51, 180*time.Millisecond) // E6
	if err != nil {
		log.Debug().Err(err).Msg("chime")
		return
	}
	speaker.Play(beep.Seq(first, second))
}

func note(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(d), sine), nil
}

// silent is used when audio is disabled.
type silent struct{}

func (silent) Play() {}
