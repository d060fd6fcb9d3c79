package http

import (
	"encoding/json"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"nodeguard/ml"
)

// Handlers serves every route against one registry and predictor.
type Handlers struct {
	registry  *ml.Registry
	predictor *ml.Predictor
	logger    *zap.Logger
}

func NewHandlers(registry *ml.Registry, predictor *ml.Predictor, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{registry: registry, predictor: predictor, logger: logger}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleSubmit)

	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("GET /api/models", h.handleModels)
	mux.HandleFunc("POST /api/predict/{model}", h.handlePredict)
	mux.HandleFunc("GET /api/ws/predict", h.handlePredictSocket)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type modelInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

func (h *Handlers) handleModels(w http.ResponseWriter, r *http.Request) {
	models := make([]modelInfo, 0, h.registry.Len())
	for _, entry := range h.registry.Entries() {
		models = append(models, modelInfo{
			Name:        entry.Name,
			Kind:        string(entry.Kind),
			DisplayName: kindLabel(entry.Kind),
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"models":   models,
		"features": ml.FeatureNames(),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
