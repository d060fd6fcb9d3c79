package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nodeguard/ml"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageTitle   = "Malicious Node Predictor"
	pageIcon    = "🛡️"
	menuTitle   = "Malicious Nodes Prediction System"
	submitLabel = "Test Result"
)

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var kindDescriptions = map[ml.Kind]string{
	ml.KindSVM:          "support vector machine",
	ml.KindRandomForest: "random forest",
	ml.KindMLP:          "neural network",
	ml.KindLinear:       "linear model",
}

// kindLabel is the human readable name of a model kind.
func kindLabel(kind ml.Kind) string {
	desc, ok := kindDescriptions[kind]
	if !ok {
		desc = strings.ReplaceAll(string(kind), "_", " ")
	}
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(desc)
}

type menuItem struct {
	Name   string
	Label  string
	Active bool
}

type pageData struct {
	Title       string
	Icon        string
	MenuTitle   string
	SubmitLabel string
	Menu        []menuItem
	Selected    string
	Known       bool
	Columns     [][]formField
	Success     string
	Error       string
}

// selectModel picks the requested model, defaulting to the first candidate.
// ok is false when the request names a model that is not a candidate.
func selectModel(candidates []string, requested string) (string, bool) {
	if requested == "" {
		if len(candidates) == 0 {
			return "", false
		}
		return candidates[0], true
	}
	for _, name := range candidates {
		if name == requested {
			return name, true
		}
	}
	return requested, false
}

func (h *Handlers) newPage(selected string, known bool) *pageData {
	page := &pageData{
		Title:       pageTitle,
		Icon:        pageIcon,
		MenuTitle:   menuTitle,
		SubmitLabel: submitLabel,
		Selected:    selected,
		Known:       known,
	}
	for _, entry := range h.registry.Entries() {
		page.Menu = append(page.Menu, menuItem{
			Name:   entry.Name,
			Label:  kindLabel(entry.Kind),
			Active: entry.Name == selected,
		})
	}
	return page
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	selected, known := selectModel(h.registry.Names(), r.FormValue("model"))
	page := h.newPage(selected, known)
	if known {
		page.Columns = FormColumns(nil, formColumns)
	}
	h.renderPage(w, r, page)
}

func (h *Handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := bodyErrorStatus(err)
		h.logger.Warn("unreadable form",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Int("status", status),
			zap.Error(err))
		http.Error(w, http.StatusText(status), status)
		return
	}
	selected, known := selectModel(h.registry.Names(), r.FormValue("model"))
	page := h.newPage(selected, known)
	if !known {
		// unknown selection: render navigation only
		h.renderPage(w, r, page)
		return
	}

	inputs := CollectInputs(r)
	page.Columns = FormColumns(inputs, formColumns)

	entry, _ := h.registry.Lookup(selected)
	verdict, err := h.predictor.Predict(entry, inputs)
	if err != nil {
		page.Error = err.Error()
	} else {
		page.Success = verdict.Message()
	}
	h.renderPage(w, r, page)
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, page *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		h.logger.Error("render page", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
