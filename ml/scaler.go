package ml

import (
	"errors"
	"fmt"
)

// Scaler standardises features as (x-mean)/scale before inference.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *Scaler) validate() error {
	if s == nil {
		return nil
	}
	if len(s.Mean) != FeatureCount || len(s.Scale) != FeatureCount {
		return fmt.Errorf("scaler needs %d means and scales, got %d and %d", FeatureCount, len(s.Mean), len(s.Scale))
	}
	return nil
}

func (s *Scaler) Transform(features FeatureVector) FeatureVector {
	if s == nil {
		return features
	}
	var out FeatureVector
	for i, v := range features {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out
}

// binaryClasses holds the two labels a model decides between.
type binaryClasses [2]int

func newBinaryClasses(classes []int) (binaryClasses, error) {
	if len(classes) == 0 {
		return binaryClasses{0, 1}, nil
	}
	if len(classes) != 2 {
		return binaryClasses{}, errors.New("classes must hold exactly two labels")
	}
	return binaryClasses{classes[0], classes[1]}, nil
}

func (c binaryClasses) pick(positive bool) int {
	if positive {
		return c[1]
	}
	return c[0]
}
