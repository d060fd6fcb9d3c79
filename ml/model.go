package ml

import "reflect"

// Classifier is the inference capability every registry entry exposes.
type Classifier interface {
	Predict(features FeatureVector) (int, error)
}

// fitted reports whether c holds a usable model. A nil pointer wrapped in
// the interface counts as unfitted.
func fitted(c Classifier) bool {
	if c == nil {
		return false
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

type Kind string

const (
	KindSVM          Kind = "svm"
	KindRandomForest Kind = "random_forest"
	KindMLP          Kind = "mlp"
	KindLinear       Kind = "linear"
)

func (k Kind) Valid() bool {
	switch k {
	case KindSVM, KindRandomForest, KindMLP, KindLinear:
		return true
	}
	return false
}

var (
	_ Classifier = (*SVM)(nil)
	_ Classifier = (*RandomForest)(nil)
	_ Classifier = (*MLP)(nil)
	_ Classifier = (*Linear)(nil)
)
