package detect

import (
	"errors"
	"strings"
	"testing"

	"github.com/dineshd07/audio-spoof-api/internal/audio"
	"github.com/dineshd07/audio-spoof-api/internal/model"
)

type stubScorer struct {
	result model.Result
	err    error
	calls  int
}

func (s *stubScorer) Score(samples []float32) (model.Result, error) {
	s.calls++
	return s.result, s.err
}

func testWave() audio.Waveform {
	return audio.Waveform{Samples: make([]float32, 16000), SampleRate: 16000}
}

func newTestDetector(scorer model.Scorer) *Detector {
	return NewDetector(scorer, 16000, DefaultThresholds())
}

func TestDetectSpoofStrong(t *testing.T) {
	scorer := &stubScorer{result: model.Result{Label: model.LabelSpoof, Score: 0.91}}
	d := newTestDetector(scorer)

	result, err := d.Detect(testWave(), "Tamil")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if result.Classification != AIGenerated {
		t.Errorf("classification: got %s, want AI_GENERATED", result.Classification)
	}
	if result.ConfidenceScore != 0.91 {
		t.Errorf("confidence: got %v, want 0.91", result.ConfidenceScore)
	}
	if result.Language != "Tamil" {
		t.Errorf("language: got %q, want Tamil", result.Language)
	}
	if !strings.Contains(result.Explanation, "Strong synthetic patterns") {
		t.Errorf("explanation: got %q, want strong synthetic message", result.Explanation)
	}
}

func TestConfidenceBands(t *testing.T) {
	cases := []struct {
		name     string
		label    string
		score    float64
		class    Classification
		fragment string
	}{
		{"spoof strong at boundary", model.LabelSpoof, 0.85, AIGenerated, "Strong synthetic patterns"},
		{"spoof moderate", model.LabelSpoof, 0.80, AIGenerated, "Moderate synthetic artifacts"},
		{"spoof moderate at boundary", model.LabelSpoof, 0.70, AIGenerated, "Moderate synthetic artifacts"},
		{"spoof low", model.LabelSpoof, 0.55, AIGenerated, "Possible synthetic characteristics"},
		{"human strong", model.LabelBonafide, 0.95, Human, "Strong natural speech"},
		{"human moderate", model.LabelBonafide, 0.75, Human, "Moderate natural speech"},
		{"human low", model.LabelBonafide, 0.60, Human, "Mostly natural characteristics"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := &stubScorer{result: model.Result{Label: tc.label, Score: tc.score}}
			result, err := newTestDetector(scorer).Detect(testWave(), "")
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if result.Classification != tc.class {
				t.Errorf("classification: got %s, want %s", result.Classification, tc.class)
			}
			if !strings.Contains(result.Explanation, tc.fragment) {
				t.Errorf("explanation: got %q, want fragment %q", result.Explanation, tc.fragment)
			}
		})
	}
}

func TestExplanationNeverCrossesClassification(t *testing.T) {
	scores := []float64{0.1, 0.5, 0.7, 0.85, 0.99}
	for _, score := range scores {
		human := explanationFor(Human, score, DefaultThresholds())
		if strings.Contains(human, "synthetic") {
			t.Errorf("human explanation at %v mentions synthetic: %q", score, human)
		}
		ai := explanationFor(AIGenerated, score, DefaultThresholds())
		if strings.Contains(ai, "natural") {
			t.Errorf("AI explanation at %v mentions natural: %q", score, ai)
		}
		if human == "" || ai == "" {
			t.Errorf("empty explanation at %v", score)
		}
	}
}

func TestScoreClamping(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{1.7, 1.0},
		{-0.3, 0.0},
		{0.42, 0.42},
	}
	for _, tc := range cases {
		scorer := &stubScorer{result: model.Result{Label: model.LabelBonafide, Score: tc.raw}}
		result, err := newTestDetector(scorer).Detect(testWave(), "")
		if err != nil {
			t.Fatalf("Detect: %v", err)
		}
		if result.ConfidenceScore != tc.want {
			t.Errorf("raw %v: got %v, want %v", tc.raw, result.ConfidenceScore, tc.want)
		}
	}
}

func TestUnknownLabel(t *testing.T) {
	scorer := &stubScorer{result: model.Result{Label: "uncertain", Score: 0.5}}
	if _, err := newTestDetector(scorer).Detect(testWave(), ""); err == nil {
		t.Error("expected error for unknown model label")
	}
}

func TestScorerErrorPropagates(t *testing.T) {
	wantErr := errors.New("inference blew up")
	scorer := &stubScorer{err: wantErr}
	if _, err := newTestDetector(scorer).Detect(testWave(), ""); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want wrapped scorer error", err)
	}
}

func TestNilScorerNotReady(t *testing.T) {
	d := newTestDetector(nil)
	if d.Ready() {
		t.Error("detector with nil scorer reports ready")
	}
	if _, err := d.Detect(testWave(), ""); !errors.Is(err, model.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestDetectDeterministic(t *testing.T) {
	scorer := model.NewFeatureScorer(16000)
	d := newTestDetector(scorer)

	wave := audio.Waveform{Samples: make([]float32, 16000), SampleRate: 16000}
	for i := range wave.Samples {
		wave.Samples[i] = float32(i%7) / 10
	}

	first, err := d.Detect(wave, "English")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	second, err := d.Detect(wave, "English")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if first != second {
		t.Errorf("detection not deterministic: %+v vs %+v", first, second)
	}
}
