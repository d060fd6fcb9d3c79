package ml

import (
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

type Verdict string

const (
	Malicious    Verdict = "malicious"
	NotMalicious Verdict = "not malicious"
)

// VerdictFromLabel maps a class label to a verdict: only label 1 is malicious.
func VerdictFromLabel(label int) Verdict {
	if label == 1 {
		return Malicious
	}
	return NotMalicious
}

func (v Verdict) Message() string {
	if v == "" {
		return ""
	}
	return "The node is " + string(v)
}

// Observer receives prediction outcomes, typically a metrics sink.
type Observer interface {
	ObservePrediction(model string, verdict Verdict, elapsed time.Duration)
	ObserveError(model string, err error)
}

type cacheKey struct {
	model    string
	features FeatureVector
}

// Predictor turns raw form values into a verdict using a registry entry.
// Labels are memoised per (model, vector) since loaded models never change.
type Predictor struct {
	cache    *lru.Cache[cacheKey, int]
	logger   *zap.Logger
	observer Observer
}

type PredictorOption func(*Predictor)

func WithObserver(o Observer) PredictorOption {
	return func(p *Predictor) { p.observer = o }
}

func WithLogger(logger *zap.Logger) PredictorOption {
	return func(p *Predictor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPredictor creates a predictor; cacheSize <= 0 disables memoisation.
func NewPredictor(cacheSize int, opts ...PredictorOption) (*Predictor, error) {
	p := &Predictor{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, int](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create inference cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

func (p *Predictor) Predict(entry Entry, raw []string) (Verdict, error) {
	verdict, err := p.predict(entry, raw)
	if err != nil {
		p.logger.Warn("prediction failed", zap.String("model", entry.Name), zap.Error(err))
		if p.observer != nil {
			p.observer.ObserveError(entry.Name, err)
		}
		return "", err
	}
	return verdict, nil
}

func (p *Predictor) predict(entry Entry, raw []string) (Verdict, error) {
	features, err := ParseFeatures(raw)
	if err != nil {
		return "", err
	}
	if !fitted(entry.Classifier) {
		return "", &ModelNotFittedError{Model: entry.Name}
	}

	start := time.Now()
	key := cacheKey{model: entry.Name, features: features}
	label, cached := 0, false
	if p.cache != nil {
		label, cached = p.cache.Get(key)
	}
	if !cached {
		label, err = entry.Classifier.Predict(features)
		if err != nil {
			return "", fmt.Errorf("%s inference: %w", entry.Name, err)
		}
		if p.cache != nil {
			p.cache.Add(key, label)
		}
	}
	verdict := VerdictFromLabel(label)
	elapsed := time.Since(start)

	p.logger.Debug("prediction",
		zap.String("model", entry.Name),
		zap.Int("label", label),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", elapsed))
	if p.observer != nil {
		p.observer.ObservePrediction(entry.Name, verdict, elapsed)
	}
	return verdict, nil
}

// ErrorKind classifies a prediction error for reporting.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidNumber):
		return "invalid_number"
	case errors.Is(err, ErrModelNotFitted):
		return "model_not_fitted"
	default:
		return "inference"
	}
}
