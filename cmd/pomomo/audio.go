package main

import (
	"math"
	"time"

	"github.com/benjamonnguyen/pomomo-tui"
	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const (
	audioSampleRate = beep.SampleRate(44100)
	alertVolume     = 0.5
)

type audioPlayer interface {
	Play(pomomo.NotificationSound) error
	Close()
}

type note struct {
	freq float64
	dur  time.Duration
}

var soundNotes = map[pomomo.NotificationSound][]note{
	pomomo.BellSound: {
		{freq: 880, dur: 900 * time.Millisecond},
	},
	pomomo.ChimeSound: {
		{freq: 659.25, dur: 250 * time.Millisecond},
		{freq: 783.99, dur: 250 * time.Millisecond},
		{freq: 1046.5, dur: 600 * time.Millisecond},
	},
}

// renderSound synthesizes every note of a sound into a replayable buffer.
func renderSound(sr beep.SampleRate, notes []note) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, decayingSine(sr, n.freq, n.dur))
	}
	buf.Append(beep.Seq(streamers...))
	return buf
}

// decayingSine streams a sine wave at freq for d with an exponential fade out.
func decayingSine(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := float64(pos) / float64(sr)
			v := 0.4 * math.Sin(2*math.Pi*freq*t) * math.Exp(-4*t/d.Seconds())
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

type beepPlayer struct {
	sounds map[pomomo.NotificationSound]*beep.Buffer
	l      *log.Logger
}

// newBeepPlayer opens the default audio device. It fails when no device is
// available; callers run without sound in that case.
func newBeepPlayer(logger *log.Logger) (*beepPlayer, error) {
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	sounds := make(map[pomomo.NotificationSound]*beep.Buffer)
	for sound, notes := range soundNotes {
		logger.Debug("rendering sound", "sound", sound, "notes", len(notes))
		sounds[sound] = renderSound(audioSampleRate, notes)
	}
	return &beepPlayer{
		sounds: sounds,
		l:      logger,
	}, nil
}

func (p *beepPlayer) Play(sound pomomo.NotificationSound) error {
	if sound == pomomo.NoSound {
		return nil
	}
	buf := p.sounds[sound]
	if buf == nil {
		p.l.Warn("no buffer for sound", "sound", sound)
		return nil
	}
	speaker.Play(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   alertVolume,
	})
	return nil
}

func (p *beepPlayer) Close() {
	speaker.Close()
}
