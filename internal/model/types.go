package model

import "errors"

// ErrUnavailable is returned when scoring is attempted before a classifier
// has been loaded.
var ErrUnavailable = errors.New("model not loaded")

// Raw output labels produced by the anti-spoofing classifier.
const (
	LabelBonafide = "bonafide"
	LabelSpoof    = "spoof"
)

// Metadata describes the ONNX model's tensor layout and label vocabulary.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	SampleRate  int      `json:"sample_rate"`
}

// Result is the raw classifier output: one of the model's two labels and a
// probability-like score for it.
type Result struct {
	Label string
	Score float64
}

// Scorer is the narrow capability the rest of the service depends on. A
// Scorer must be safe for concurrent use.
type Scorer interface {
	Score(samples []float32) (Result, error)
}
