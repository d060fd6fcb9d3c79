package ml

import "fmt"

// Linear scores a weighted sum against a threshold, covering logistic
// regression and linear SVC style models alike.
type Linear struct {
	coef      []float64
	intercept float64
	threshold float64
	classes   binaryClasses
	scaler    *Scaler
}

type LinearParams struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
}

func newLinear(params LinearParams, classes binaryClasses, scaler *Scaler) (*Linear, error) {
	if len(params.Coef) != FeatureCount {
		return nil, fmt.Errorf("linear model needs %d coefficients, got %d", FeatureCount, len(params.Coef))
	}
	return &Linear{
		coef:      params.Coef,
		intercept: params.Intercept,
		threshold: params.Threshold,
		classes:   classes,
		scaler:    scaler,
	}, nil
}

func (l *Linear) Score(features FeatureVector) float64 {
	x := l.scaler.Transform(features)
	return dot(l.coef, x[:]) + l.intercept
}

func (l *Linear) Predict(features FeatureVector) (int, error) {
	return l.classes.pick(l.Score(features) > l.threshold), nil
}
