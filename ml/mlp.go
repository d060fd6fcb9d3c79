package ml

import (
	"errors"
	"fmt"
	"math"
)

// MLP is a feed-forward network with a single logistic output unit.
type MLP struct {
	layers     []MLPLayer
	activation string
	classes    binaryClasses
	scaler     *Scaler
}

type MLPLayer struct {
	Weights [][]float64 `json:"weights"`
	Biases  []float64   `json:"biases"`
}

type MLPParams struct {
	Layers     []MLPLayer `json:"layers"`
	Activation string     `json:"activation"`
}

func newMLP(params MLPParams, classes binaryClasses, scaler *Scaler) (*MLP, error) {
	switch params.Activation {
	case "":
		params.Activation = "relu"
	case "relu", "tanh", "logistic", "identity":
	default:
		return nil, fmt.Errorf("unsupported activation %q", params.Activation)
	}
	if len(params.Layers) == 0 {
		return nil, errors.New("mlp has no layers")
	}
	width := FeatureCount
	for i, layer := range params.Layers {
		if len(layer.Weights) == 0 || len(layer.Weights) != len(layer.Biases) {
			return nil, fmt.Errorf("layer %d: %d weight rows for %d biases", i, len(layer.Weights), len(layer.Biases))
		}
		for j, row := range layer.Weights {
			if len(row) != width {
				return nil, fmt.Errorf("layer %d unit %d: expected %d inputs, got %d", i, j, width, len(row))
			}
		}
		width = len(layer.Weights)
	}
	if width != 1 {
		return nil, fmt.Errorf("output layer must have 1 unit, got %d", width)
	}
	return &MLP{layers: params.Layers, activation: params.Activation, classes: classes, scaler: scaler}, nil
}

// Probability returns the output unit's activation for the positive class.
func (m *MLP) Probability(features FeatureVector) float64 {
	x := m.scaler.Transform(features)
	activations := x[:]
	last := len(m.layers) - 1
	for i, layer := range m.layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			z := dot(row, activations) + layer.Biases[j]
			if i == last {
				next[j] = logistic(z)
			} else {
				next[j] = m.activate(z)
			}
		}
		activations = next
	}
	return activations[0]
}

func (m *MLP) Predict(features FeatureVector) (int, error) {
	return m.classes.pick(m.Probability(features) > 0.5), nil
}

func (m *MLP) activate(z float64) float64 {
	switch m.activation {
	case "tanh":
		return math.Tanh(z)
	case "logistic":
		return logistic(z)
	case "identity":
		return z
	default:
		return math.Max(0, z)
	}
}

func logistic(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
