package ml

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	idxPacketDropRate        = 3
	idxPacketDuplicationRate = 4
	idxRouteRequestFrequency = 9
)

func weights(pairs map[int]float64) []float64 {
	row := make([]float64, FeatureCount)
	for idx, w := range pairs {
		row[idx] = w
	}
	return row
}

func demoScaler() *Scaler {
	s := &Scaler{Mean: make([]float64, FeatureCount), Scale: make([]float64, FeatureCount)}
	for i := range s.Scale {
		s.Scale[i] = 1
	}
	s.Scale[idxRouteRequestFrequency] = 100
	return s
}

// DemoParams returns hand-set parameters for each model kind. They flag a
// node as malicious when it drops or duplicates a large share of packets
// or floods route requests.
func DemoParams(kind Kind) (interface{}, *Scaler, error) {
	switch kind {
	case KindSVM:
		// A single support vector over the rate features keeps identifiers
		// such as IP_Address out of the kernel.
		return SVMParams{
			Kernel: "poly",
			Gamma:  1,
			Coef0:  1,
			Degree: 2,
			SupportVectors: [][]float64{
				weights(map[int]float64{idxPacketDropRate: 1, idxPacketDuplicationRate: 1, idxRouteRequestFrequency: 1}),
			},
			DualCoef:  []float64{1},
			Intercept: -2.25,
		}, demoScaler(), nil
	case KindRandomForest:
		stump := func(feature int, threshold float64) []TreeNode {
			return []TreeNode{
				{FeatureIdx: feature, Threshold: threshold, LeftChild: 1, RightChild: 2},
				{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 0, IsLeaf: true},
				{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 1, IsLeaf: true},
			}
		}
		return RandomForestParams{Trees: [][]TreeNode{
			stump(idxPacketDropRate, 0.3),
			stump(idxPacketDuplicationRate, 0.2),
			stump(idxRouteRequestFrequency, 50),
		}}, nil, nil
	case KindMLP:
		return MLPParams{
			Activation: "relu",
			Layers: []MLPLayer{
				{
					Weights: [][]float64{
						weights(map[int]float64{idxPacketDropRate: 1}),
						weights(map[int]float64{idxPacketDuplicationRate: 1, idxRouteRequestFrequency: 0.01}),
					},
					Biases: []float64{0, 0},
				},
				{Weights: [][]float64{{8, 6}}, Biases: []float64{-2}},
			},
		}, nil, nil
	case KindLinear:
		return LinearParams{
			Coef: weights(map[int]float64{
				idxPacketDropRate:        4,
				idxPacketDuplicationRate: 3,
				idxRouteRequestFrequency: 0.02,
			}),
			Intercept: -2,
		}, nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported model kind %q", kind)
}

// WriteDemoModels writes one demo model file per spec into dir.
func WriteDemoModels(dir string, specs []ModelSpec) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	for _, spec := range specs {
		params, scaler, err := DemoParams(spec.Kind)
		if err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
		path := filepath.Join(dir, spec.File)
		if err := SaveModel(path, spec.Kind, []int{0, 1}, scaler, params); err != nil {
			return fmt.Errorf("%s: %w", spec.Name, err)
		}
	}
	return nil
}
