package media

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// Soundtrack plays one WAV file through the speaker and follows play/pause.
type Soundtrack struct {
	mu sync.Mutex

	sampleRate beep.SampleRate
	streamer   beep.StreamSeekCloser
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	playing    bool
}

// openTrack decodes the WAV header and returns a seekable stream.
func openTrack(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}
	return streamer, format, nil
}

// NewSoundtrack initializes the speaker and queues the file, paused.
func NewSoundtrack(path string, loop bool, volume float64, muted bool) (*Soundtrack, error) {
	streamer, format, err := openTrack(path)
	if err != nil {
		return nil, err
	}

	s := &Soundtrack{
		sampleRate: DefaultSampleRate,
		streamer:   streamer,
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/30)); err != nil {
		streamer.Close()
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	var source beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		source = beep.Resample(4, format.SampleRate, s.sampleRate, streamer)
	}
	if loop {
		source = &loopStreamer{streamer: streamer, resampled: source}
	}

	s.ctrl = &beep.Ctrl{Streamer: source, Paused: true}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   volumeToDb(volume),
		Silent:   muted || volume <= 0,
	}

	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		s.mu.Lock()
		s.playing = false
		s.mu.Unlock()
	})))
	return s, nil
}

// Resume continues playback.
func (s *Soundtrack) Resume() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()

	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

// Pause holds playback at the current position.
func (s *Soundtrack) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()

	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// Playing reports whether audio is currently audible.
func (s *Soundtrack) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Close stops playback and releases the speaker.
func (s *Soundtrack) Close() {
	speaker.Clear()
	speaker.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
}

// volumeToDb converts a 0-1 volume to the base-2 exponent effects.Volume expects.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(math.Min(vol, 1))
}

// loopStreamer restarts the underlying stream when it runs out.
type loopStreamer struct {
	streamer  beep.StreamSeekCloser
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	restarted := false
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if n > 0 {
			restarted = false
		}
		if ok {
			continue
		}
		// An empty or unreadable track would otherwise spin forever.
		if restarted || l.streamer.Seek(0) != nil {
			return filled, filled > 0
		}
		restarted = true
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.streamer.Err()
}
