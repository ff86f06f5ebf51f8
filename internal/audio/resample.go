package audio

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample converts the waveform to the given sample rate. The receiver is
// returned unchanged when the rates already match.
func (w Waveform) Resample(rate int) (Waveform, error) {
	if rate <= 0 {
		return Waveform{}, fmt.Errorf("resample: invalid target rate %d", rate)
	}
	if rate == w.SampleRate || len(w.Samples) == 0 {
		return Waveform{Samples: w.Samples, SampleRate: rate}, nil
	}

	config := &resampling.Config{
		InputRate:  float64(w.SampleRate),
		OutputRate: float64(rate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	}
	resampler, err := resampling.New(config)
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to create resampler: %w", err)
	}

	input := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		input[i] = float64(s)
	}

	output, err := resampler.Process(input)
	if err != nil {
		return Waveform{}, fmt.Errorf("resample error: %w", err)
	}

	samples := make([]float32, len(output))
	for i, s := range output {
		switch {
		case s > 1.0:
			samples[i] = 1.0
		case s < -1.0:
			samples[i] = -1.0
		default:
			samples[i] = float32(s)
		}
	}

	return Waveform{Samples: samples, SampleRate: rate}, nil
}
