// Package detect turns raw classifier output into the public detection
// verdict: classification, bounded confidence, and explanation copy.
package detect

import (
	"fmt"

	"github.com/dineshd07/audio-spoof-api/internal/audio"
	"github.com/dineshd07/audio-spoof-api/internal/model"
)

// Result is the detection verdict returned to clients. Immutable once
// constructed; never stored server-side.
type Result struct {
	Classification  Classification
	ConfidenceScore float64
	Explanation     string
	Language        string
}

// Detector runs the full pipeline over a decoded waveform: resample to the
// model's rate, score, and map the raw output to a Result.
type Detector struct {
	scorer     model.Scorer
	sampleRate int
	thresholds Thresholds
}

// NewDetector builds a detector around a scorer expecting input at
// sampleRate. A nil scorer yields a detector that is never ready, so the
// HTTP boundary can report 503 while still serving health checks.
func NewDetector(scorer model.Scorer, sampleRate int, thresholds Thresholds) *Detector {
	if sampleRate <= 0 {
		sampleRate = model.DefaultSampleRate
	}
	return &Detector{
		scorer:     scorer,
		sampleRate: sampleRate,
		thresholds: thresholds,
	}
}

// Ready reports whether a classifier is loaded and able to score.
func (d *Detector) Ready() bool {
	return d.scorer != nil
}

// SampleRate reports the rate input is normalized to before scoring.
func (d *Detector) SampleRate() int {
	return d.sampleRate
}

// Detect scores the waveform and returns the mapped verdict. The language
// tag is metadata only; it is echoed into the result untouched.
func (d *Detector) Detect(wave audio.Waveform, language string) (Result, error) {
	if d.scorer == nil {
		return Result{}, model.ErrUnavailable
	}

	wave, err := wave.Resample(d.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("normalize audio: %w", err)
	}

	raw, err := d.scorer.Score(wave.Samples)
	if err != nil {
		return Result{}, err
	}

	classification, err := mapLabel(raw.Label)
	if err != nil {
		return Result{}, err
	}

	score := clamp01(raw.Score)
	return Result{
		Classification:  classification,
		ConfidenceScore: score,
		Explanation:     explanationFor(classification, score, d.thresholds),
		Language:        language,
	}, nil
}
