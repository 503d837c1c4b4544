package classifier

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	apperrors "fitfans/internal/errors"
)

const (
	// InputSize is the square pixel dimension the model was trained on.
	InputSize = 150
	// NumClasses is the width of the model's output vector.
	NumClasses = 10
	// SentinelLabel is returned when no class reaches the confidence threshold.
	SentinelLabel = "not recognized"

	confidenceThreshold = 0.5
)

// Labels holds the class names in model output order.
var Labels = [NumClasses]string{
	"barbell",
	"dumbbell",
	"gym-ball",
	"kettle-ball",
	"leg-press",
	"punching-bag",
	"roller-abs",
	"static-bicycle",
	"step",
	"treadmill",
}

// Predictor runs one forward pass over a 1x150x150x3 row-major float32 input
// and returns the ten class probabilities. Implementations must be safe for
// concurrent use; the model is read-only after load.
type Predictor interface {
	Predict(ctx context.Context, input []float32) ([]float32, error)
}

// Result is the ephemeral outcome of classifying one image.
type Result struct {
	Prediction string  `json:"prediction"`
	Confidence float32 `json:"confidence"`
}

// Classifier wraps a Predictor with the image pre-processing and the
// confidence decision rule.
type Classifier struct {
	predictor Predictor
}

// New builds a Classifier around an already loaded predictor.
func New(p Predictor) *Classifier {
	return &Classifier{predictor: p}
}

// Classify decodes the image bytes, runs one forward pass, and applies the
// decision rule. It is stateless and safe to call concurrently.
func (c *Classifier) Classify(ctx context.Context, imageBytes []byte) (*Result, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, apperrors.ErrUndecodableImage
	}

	probs, err := c.predictor.Predict(ctx, Tensorize(img))
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if len(probs) != NumClasses {
		return nil, fmt.Errorf("predict: expected %d probabilities, got %d", NumClasses, len(probs))
	}
	return decide(probs), nil
}

// Tensorize stretches the image to the model's 150x150 input canvas and fills
// a row-major RGB tensor with channel values scaled into [0,1].
func Tensorize(img image.Image) []float32 {
	resized := imaging.Resize(img, InputSize, InputSize, imaging.Lanczos)

	buf := make([]float32, InputSize*InputSize*3)
	i := 0
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			buf[i] = float32(r>>8) / 255
			buf[i+1] = float32(g>>8) / 255
			buf[i+2] = float32(b>>8) / 255
			i += 3
		}
	}
	return buf
}

// decide picks the argmax label, falling back to the sentinel when the top
// probability is strictly below the threshold.
func decide(probs []float32) *Result {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	if probs[best] < confidenceThreshold {
		return &Result{Prediction: SentinelLabel, Confidence: probs[best]}
	}
	return &Result{Prediction: Labels[best], Confidence: probs[best]}
}
