package detect

import (
	"fmt"

	"github.com/dineshd07/audio-spoof-api/internal/model"
)

// Classification is the public verdict vocabulary.
type Classification string

const (
	Human       Classification = "HUMAN"
	AIGenerated Classification = "AI_GENERATED"
)

// Thresholds define the confidence bands used to pick explanation text.
// They are presentation settings, not model parameters.
type Thresholds struct {
	Strong   float64
	Moderate float64
}

// DefaultThresholds match the service's original explanation bands.
func DefaultThresholds() Thresholds {
	return Thresholds{Strong: 0.85, Moderate: 0.70}
}

// mapLabel translates the model's raw label vocabulary to the public one.
func mapLabel(label string) (Classification, error) {
	switch label {
	case model.LabelBonafide:
		return Human, nil
	case model.LabelSpoof:
		return AIGenerated, nil
	default:
		return "", fmt.Errorf("unknown model label %q", label)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// explanationFor picks display copy for the verdict by confidence band.
// score must already be clamped to [0,1].
func explanationFor(c Classification, score float64, t Thresholds) string {
	if c == AIGenerated {
		switch {
		case score >= t.Strong:
			return "Strong synthetic patterns detected (unnatural pitch consistency and robotic speech patterns)"
		case score >= t.Moderate:
			return "Moderate synthetic artifacts detected (artificial harmonics and phase inconsistencies)"
		default:
			return "Possible synthetic characteristics detected (some unnatural spectral features)"
		}
	}
	switch {
	case score >= t.Strong:
		return "Strong natural speech characteristics (organic pitch variations and human breathing patterns)"
	case score >= t.Moderate:
		return "Moderate natural speech patterns (typical human vocal characteristics)"
	default:
		return "Mostly natural characteristics detected (human-like vocal patterns)"
	}
}
