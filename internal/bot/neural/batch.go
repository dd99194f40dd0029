package neural

import (
	"fmt"

	"gorgonia.org/tensor"
)

// NewBatch packs encoded states into a [len(states), StateSize] float32
// tensor for the value network.
func NewBatch(states [][]float32) (*tensor.Dense, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("neural: empty batch")
	}
	data := make([]float32, 0, len(states)*StateSize)
	for i, s := range states {
		if len(s) != StateSize {
			return nil, fmt.Errorf("neural: state %d has %d features, want %d", i, len(s), StateSize)
		}
		data = append(data, s...)
	}
	return tensor.New(
		tensor.WithShape(len(states), StateSize),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(data),
	), nil
}

// Float32s converts a model output tensor's backing data to float32.
func Float32s(t tensor.Tensor) ([]float32, error) {
	switch d := t.Data().(type) {
	case []float32:
		return d, nil
	case []float64:
		f32 := make([]float32, len(d))
		for i, v := range d {
			f32[i] = float32(v)
		}
		return f32, nil
	case float32:
		return []float32{d}, nil
	default:
		return nil, fmt.Errorf("neural: unexpected output type %T", d)
	}
}
