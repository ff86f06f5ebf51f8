package model

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Default sample rate the feature analysis expects.
const DefaultSampleRate = 16000

// Feature weights and decision threshold for the rule-based classifier.
const (
	zcrWeight      = 0.3
	spectralWeight = 0.4
	energyWeight   = 0.3

	spoofThreshold = 0.6
	confidenceCap  = 0.95
)

// FeatureScorer classifies speech with hand-tuned acoustic features: zero
// crossing rate, spectral centroid, spectral flatness, and frame energy
// variation. It needs no model file, so it serves as the fallback when no
// ONNX model is configured. Stateless and safe for concurrent use.
type FeatureScorer struct {
	sampleRate int
}

// NewFeatureScorer returns a feature-based scorer analyzing audio at the
// given sample rate.
func NewFeatureScorer(sampleRate int) *FeatureScorer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &FeatureScorer{sampleRate: sampleRate}
}

// SampleRate reports the rate the analysis expects input at.
func (f *FeatureScorer) SampleRate() int {
	return f.sampleRate
}

// Score extracts acoustic features from the waveform and applies the
// weighted rule classifier.
func (f *FeatureScorer) Score(samples []float32) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrUnavailable
	}

	feats := extractFeatures(samples, f.sampleRate)

	zcrScore := math.Min(feats.zcr/0.5, 1.0)
	spectralScore := 1.0 - math.Min(feats.spectralFlatness, 1.0)
	energyScore := 1.0 - math.Min(feats.energyStd/10000.0, 1.0)

	aiScore := zcrScore*zcrWeight + spectralScore*spectralWeight + energyScore*energyWeight

	if aiScore > spoofThreshold {
		return Result{
			Label: LabelSpoof,
			Score: math.Min(aiScore, confidenceCap),
		}, nil
	}
	return Result{
		Label: LabelBonafide,
		Score: math.Min(1.0-aiScore, confidenceCap),
	}, nil
}

type features struct {
	zcr              float64
	spectralCentroid float64
	spectralFlatness float64
	energyStd        float64
}

func extractFeatures(samples []float32, sampleRate int) features {
	signal := make([]float64, len(samples))
	for i, s := range samples {
		signal[i] = float64(s)
	}

	magnitude, freqs := spectrum(signal, sampleRate)

	return features{
		zcr:              zeroCrossingRate(signal),
		spectralCentroid: spectralCentroid(magnitude, freqs),
		spectralFlatness: spectralFlatness(magnitude),
		energyStd:        frameEnergyStd(signal, sampleRate),
	}
}

// zeroCrossingRate is the mean absolute sign change between adjacent
// samples.
func zeroCrossingRate(signal []float64) float64 {
	if len(signal) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(signal); i++ {
		sum += math.Abs(sign(signal[i]) - sign(signal[i-1]))
	}
	return sum / float64(len(signal)-1)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// spectrum returns the magnitude of the positive-frequency half of the
// signal's Fourier transform along with each bin's frequency in Hz.
func spectrum(signal []float64, sampleRate int) (magnitude, freqs []float64) {
	fft := fourier.NewFFT(len(signal))
	coeffs := fft.Coefficients(nil, signal)

	magnitude = make([]float64, len(coeffs))
	freqs = make([]float64, len(coeffs))
	for i, c := range coeffs {
		magnitude[i] = cmplx.Abs(c)
		freqs[i] = fft.Freq(i) * float64(sampleRate)
	}
	return magnitude, freqs
}

func spectralCentroid(magnitude, freqs []float64) float64 {
	var weighted, total float64
	for i := range magnitude {
		weighted += freqs[i] * magnitude[i]
		total += magnitude[i]
	}
	return weighted / (total + 1e-10)
}

// spectralFlatness is the ratio of the geometric to arithmetic mean of the
// magnitude spectrum; near 1 means noise-like, near 0 means tonal.
func spectralFlatness(magnitude []float64) float64 {
	if len(magnitude) == 0 {
		return 0
	}
	var logSum, sum float64
	for _, m := range magnitude {
		logSum += math.Log(m + 1e-10)
		sum += m
	}
	n := float64(len(magnitude))
	return math.Exp(logSum/n) / (sum/n + 1e-10)
}

// frameEnergyStd measures energy variation across 25ms frames at a 10ms
// hop. Natural speech shows larger swings than flat synthetic output.
func frameEnergyStd(signal []float64, sampleRate int) float64 {
	frameLength := int(0.025 * float64(sampleRate))
	hopLength := int(0.010 * float64(sampleRate))
	if frameLength <= 0 || hopLength <= 0 || len(signal) <= frameLength {
		return 0
	}

	var energies []float64
	for i := 0; i+frameLength <= len(signal); i += hopLength {
		var energy float64
		for _, s := range signal[i : i+frameLength] {
			energy += s * s
		}
		energies = append(energies, energy)
	}
	if len(energies) == 0 {
		return 0
	}

	var mean float64
	for _, e := range energies {
		mean += e
	}
	mean /= float64(len(energies))

	var variance float64
	for _, e := range energies {
		variance += (e - mean) * (e - mean)
	}
	return math.Sqrt(variance / float64(len(energies)))
}
