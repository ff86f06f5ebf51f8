package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Server wraps a pretrained ONNX anti-spoofing classifier. The session and
// its tensors are created once at startup and reused for every request.
type Server struct {
	session      *ort.AdvancedSession
	Metadata     Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	// The input/output tensors are shared scratch space, so concurrent
	// Score calls must be serialized.
	mu sync.Mutex
}

// NewServer loads the ONNX model at modelPath together with its metadata
// JSON and prepares an inference session.
func NewServer(modelPath, metadataPath string) (*Server, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata lists no classes")
	}
	if metadata.SampleRate <= 0 {
		return nil, fmt.Errorf("metadata has invalid sample rate %d", metadata.SampleRate)
	}

	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Server{
		session:      session,
		Metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// SampleRate reports the sample rate the model was trained at.
func (s *Server) SampleRate() int {
	return s.Metadata.SampleRate
}

// Score runs the classifier over the waveform and returns the winning label
// with its softmax probability.
func (s *Server) Score(samples []float32) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	input := s.inputTensor.GetData()
	fitInput(input, samples)

	if err := s.session.Run(); err != nil {
		return Result{}, fmt.Errorf("inference failed: %w", err)
	}

	outputData := s.outputTensor.GetData()
	if len(outputData) < len(s.Metadata.Classes) {
		return Result{}, fmt.Errorf("model produced %d outputs for %d classes",
			len(outputData), len(s.Metadata.Classes))
	}

	probs := softmax(outputData[:len(s.Metadata.Classes)])
	maxIdx := 0
	for i, p := range probs {
		if p > probs[maxIdx] {
			maxIdx = i
		}
	}

	return Result{
		Label: s.Metadata.Classes[maxIdx],
		Score: probs[maxIdx],
	}, nil
}

// fitInput fills the fixed-size input tensor from a variable-length clip.
// Clips shorter than the model input are tiled; longer clips are truncated.
func fitInput(dst []float32, samples []float32) {
	if len(samples) == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return
	}
	for filled := 0; filled < len(dst); {
		filled += copy(dst[filled:], samples)
	}
}

func softmax(logits []float32) []float64 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	out := make([]float64, len(logits))
	for i, v := range logits {
		out[i] = math.Exp(float64(v - maxLogit))
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Close releases the ONNX session and its tensors.
func (s *Server) Close() {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
	ort.DestroyEnvironment()
}
