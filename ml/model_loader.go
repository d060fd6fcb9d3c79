package ml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FormatVersion is the only model file layout this build understands.
const FormatVersion = 1

// ModelFile is the on-disk envelope shared by every model kind.
type ModelFile struct {
	FormatVersion int             `json:"format_version"`
	Kind          Kind            `json:"kind"`
	NFeatures     int             `json:"n_features"`
	Classes       []int           `json:"classes,omitempty"`
	Scaler        *Scaler         `json:"scaler,omitempty"`
	Params        json.RawMessage `json:"params"`
}

func LoadModel(path string) (Kind, Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	var file ModelFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return "", nil, fmt.Errorf("decode %s: %w", path, err)
	}
	model, err := file.Build()
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return file.Kind, model, nil
}

// Build validates the envelope and constructs the classifier it describes.
func (f *ModelFile) Build() (Classifier, error) {
	if f.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d (want %d)", f.FormatVersion, FormatVersion)
	}
	if f.NFeatures != FeatureCount {
		return nil, fmt.Errorf("model expects %d features, want %d", f.NFeatures, FeatureCount)
	}
	if !f.Kind.Valid() {
		return nil, fmt.Errorf("unsupported model kind %q", f.Kind)
	}
	if len(f.Params) == 0 {
		return nil, errors.New("model params missing")
	}
	if err := f.Scaler.validate(); err != nil {
		return nil, err
	}
	classes, err := newBinaryClasses(f.Classes)
	if err != nil {
		return nil, err
	}

	switch f.Kind {
	case KindSVM:
		var params SVMParams
		if err := decodeParams(f.Params, &params); err != nil {
			return nil, err
		}
		return newSVM(params, classes, f.Scaler)
	case KindRandomForest:
		var params RandomForestParams
		if err := decodeParams(f.Params, &params); err != nil {
			return nil, err
		}
		return newRandomForest(params, f.Scaler)
	case KindMLP:
		var params MLPParams
		if err := decodeParams(f.Params, &params); err != nil {
			return nil, err
		}
		return newMLP(params, classes, f.Scaler)
	default:
		var params LinearParams
		if err := decodeParams(f.Params, &params); err != nil {
			return nil, err
		}
		return newLinear(params, classes, f.Scaler)
	}
}

func decodeParams(raw json.RawMessage, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode params: %w", err)
	}
	return nil
}

// SaveModel writes a model envelope with the given parameters.
func SaveModel(path string, kind Kind, classes []int, scaler *Scaler, params interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	file := ModelFile{
		FormatVersion: FormatVersion,
		Kind:          kind,
		NFeatures:     FeatureCount,
		Classes:       classes,
		Scaler:        scaler,
		Params:        raw,
	}
	if _, err := file.Build(); err != nil {
		return fmt.Errorf("refusing to save invalid model: %w", err)
	}
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}
