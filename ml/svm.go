package ml

import (
	"errors"
	"fmt"
	"math"
)

// SVM is a kernel support-vector classifier evaluated from its dual form.
type SVM struct {
	kernel         string
	gamma          float64
	coef0          float64
	degree         float64
	supportVectors []FeatureVector
	dualCoef       []float64
	intercept      float64
	classes        binaryClasses
	scaler         *Scaler
}

type SVMParams struct {
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         float64     `json:"degree"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       []float64   `json:"dual_coef"`
	Intercept      float64     `json:"intercept"`
}

func newSVM(params SVMParams, classes binaryClasses, scaler *Scaler) (*SVM, error) {
	switch params.Kernel {
	case "":
		params.Kernel = "rbf"
	case "linear", "rbf", "poly", "sigmoid":
	default:
		return nil, fmt.Errorf("unsupported svm kernel %q", params.Kernel)
	}
	if len(params.SupportVectors) == 0 {
		return nil, errors.New("svm has no support vectors")
	}
	if len(params.SupportVectors) != len(params.DualCoef) {
		return nil, fmt.Errorf("svm has %d support vectors but %d dual coefficients", len(params.SupportVectors), len(params.DualCoef))
	}
	if params.Gamma <= 0 {
		params.Gamma = 1.0 / FeatureCount
	}
	if params.Degree <= 0 {
		params.Degree = 3
	}
	svm := &SVM{
		kernel:    params.Kernel,
		gamma:     params.Gamma,
		coef0:     params.Coef0,
		degree:    params.Degree,
		dualCoef:  params.DualCoef,
		intercept: params.Intercept,
		classes:   classes,
		scaler:    scaler,
	}
	for i, sv := range params.SupportVectors {
		if len(sv) != FeatureCount {
			return nil, fmt.Errorf("support vector %d has %d features", i, len(sv))
		}
		var v FeatureVector
		copy(v[:], sv)
		svm.supportVectors = append(svm.supportVectors, v)
	}
	return svm, nil
}

func (s *SVM) Decision(features FeatureVector) float64 {
	x := s.scaler.Transform(features)
	sum := s.intercept
	for i, sv := range s.supportVectors {
		sum += s.dualCoef[i] * s.kernelValue(sv, x)
	}
	return sum
}

func (s *SVM) Predict(features FeatureVector) (int, error) {
	return s.classes.pick(s.Decision(features) > 0), nil
}

func (s *SVM) kernelValue(a, b FeatureVector) float64 {
	switch s.kernel {
	case "linear":
		return dot(a[:], b[:])
	case "poly":
		return math.Pow(s.gamma*dot(a[:], b[:])+s.coef0, s.degree)
	case "sigmoid":
		return math.Tanh(s.gamma*dot(a[:], b[:]) + s.coef0)
	default:
		dist := 0.0
		for i := range a {
			d := a[i] - b[i]
			dist += d * d
		}
		return math.Exp(-s.gamma * dist)
	}
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
