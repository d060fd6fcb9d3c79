package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"nodeguard/ml"
)

// predictRequest carries raw values either positionally or by field name.
type predictRequest struct {
	Model  string            `json:"model,omitempty"`
	Inputs []string          `json:"inputs,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type predictResponse struct {
	Model   string `json:"model"`
	Verdict string `json:"verdict"`
	Message string `json:"message"`
}

type errorResponse struct {
	Model string `json:"model,omitempty"`
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var (
	errUnknownModel  = errors.New("unknown model")
	errUnknownField  = errors.New("unknown field")
	errMixedInputs   = errors.New("send either inputs or fields, not both")
	errTrailingInput = errors.New("unexpected data after JSON object")
)

// rawInputs returns the values in feature order. Positional inputs and
// named fields are mutually exclusive.
func (req *predictRequest) rawInputs() ([]string, error) {
	if req.Fields == nil {
		return req.Inputs, nil
	}
	if req.Inputs != nil {
		return nil, errMixedInputs
	}
	raw := make([]string, ml.FeatureCount)
	for name, value := range req.Fields {
		idx, ok := ml.FeatureIndex(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", errUnknownField, name)
		}
		raw[idx] = value
	}
	return raw, nil
}

// bodyErrorStatus maps a body read failure to 413 when the size cap was hit.
func bodyErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// predict resolves the model and scores the request. The returned status
// is meaningful only when err is non-nil.
func (h *Handlers) predict(req *predictRequest) (*predictResponse, int, error) {
	entry, ok := h.registry.Lookup(req.Model)
	if !ok {
		return nil, http.StatusNotFound, fmt.Errorf("%w %q", errUnknownModel, req.Model)
	}
	raw, err := req.rawInputs()
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	verdict, err := h.predictor.Predict(entry, raw)
	switch {
	case err == nil:
		return &predictResponse{Model: entry.Name, Verdict: string(verdict), Message: verdict.Message()}, http.StatusOK, nil
	case errors.Is(err, ml.ErrInvalidNumber):
		return nil, http.StatusBadRequest, err
	case errors.Is(err, ml.ErrModelNotFitted):
		return nil, http.StatusUnprocessableEntity, err
	default:
		return nil, http.StatusInternalServerError, err
	}
}

func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(&req)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); extra == nil {
			err = errTrailingInput
		} else if !errors.Is(extra, io.EOF) {
			err = extra
		}
	}
	if err != nil {
		respondJSON(w, bodyErrorStatus(err), errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	req.Model = r.PathValue("model")

	resp, status, err := h.predict(&req)
	if err != nil {
		if status == http.StatusInternalServerError {
			h.logger.Error("prediction failed",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("model", req.Model),
				zap.Error(err))
		}
		respondJSON(w, status, errorResponse{Model: req.Model, Error: err.Error(), Kind: errorKind(err)})
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, errUnknownModel):
		return "unknown_model"
	case errors.Is(err, errUnknownField):
		return "unknown_field"
	case errors.Is(err, errMixedInputs):
		return "invalid_request"
	}
	return ml.ErrorKind(err)
}
