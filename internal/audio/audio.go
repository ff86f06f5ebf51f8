// Package audio decodes uploaded audio into a normalized mono waveform
// suitable for the spoof classifier.
package audio

import (
	"errors"
	"time"
)

var (
	// ErrEmptyAudio is returned when the upload contains no audio data.
	ErrEmptyAudio = errors.New("empty audio data")

	// ErrUnsupportedFormat is returned when the upload is not a recognized
	// audio container.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// SupportedFormats lists the audio containers Decode accepts.
var SupportedFormats = []string{"wav"}

// Waveform holds mono audio samples normalized to [-1.0, 1.0].
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}
