package classifier

import (
	"context"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// Tensor names of the exported Keras model.
const (
	modelInputName  = "input_1"
	modelOutputName = "predictions"
)

// ONNXPredictor serves the pretrained gym-equipment model through ONNX
// Runtime. The session is created once and treated as read-only for the
// process lifetime.
type ONNXPredictor struct {
	session *ort.DynamicAdvancedSession
}

// NewONNXPredictor initializes the ONNX Runtime environment and loads the
// model artifact. libraryPath optionally points at the onnxruntime shared
// library; empty uses the platform default.
func NewONNXPredictor(modelPath, libraryPath string) (*ONNXPredictor, error) {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("init onnxruntime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{modelInputName},
		[]string{modelOutputName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	return &ONNXPredictor{session: session}, nil
}

// Predict runs one forward pass. The input is a 1x150x150x3 row-major tensor.
func (p *ONNXPredictor) Predict(_ context.Context, input []float32) ([]float32, error) {
	inputTensor, err := ort.NewTensor(ort.NewShape(1, InputSize, InputSize, 3), input)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, NumClasses))
	if err != nil {
		return nil, fmt.Errorf("output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := p.session.Run(
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
	); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}

	probs := make([]float32, NumClasses)
	copy(probs, outputTensor.GetData())
	return probs, nil
}

// Close releases the session and the runtime environment.
func (p *ONNXPredictor) Close() error {
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
	return ort.DestroyEnvironment()
}
