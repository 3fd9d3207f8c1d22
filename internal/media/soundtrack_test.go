package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func writeWAV(t *testing.T, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("failed to encode wav: %v", err)
	}
	return path
}

func TestOpenTrack(t *testing.T) {
	streamer, format, err := openTrack(writeWAV(t, 800))
	if err != nil {
		t.Fatalf("openTrack failed: %v", err)
	}
	defer streamer.Close()

	if format.SampleRate != 8000 {
		t.Errorf("expected 8000 Hz, got %v", format.SampleRate)
	}
	if streamer.Len() != 800 {
		t.Errorf("expected 800 samples, got %d", streamer.Len())
	}
}

func TestOpenTrackInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, _, err := openTrack(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoopStreamerWraps(t *testing.T) {
	streamer, _, err := openTrack(writeWAV(t, 100))
	if err != nil {
		t.Fatalf("openTrack failed: %v", err)
	}
	defer streamer.Close()

	loop := &loopStreamer{streamer: streamer, resampled: streamer}
	buf := make([][2]float64, 350)
	n, ok := loop.Stream(buf)
	if !ok || n != 350 {
		t.Errorf("expected 350 looped samples, got %d ok=%v", n, ok)
	}
}

func TestVolumeToDb(t *testing.T) {
	if v := volumeToDb(1); v != 0 {
		t.Errorf("full volume should be 0, got %v", v)
	}
	if v := volumeToDb(0.5); v != -1 {
		t.Errorf("half volume should be -1, got %v", v)
	}
	if v := volumeToDb(0); v != -10 {
		t.Errorf("silence should be -10, got %v", v)
	}
}
