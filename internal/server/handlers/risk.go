// internal/server/handlers/risk.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"georisk/internal/domain/risk"
	"georisk/internal/service/analysis"
)

// RiskHandler handles risk-analysis HTTP requests
type RiskHandler struct {
	analyzer risk.Analyzer
	taxonomy analysis.Taxonomy
	sources  []string
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(analyzer risk.Analyzer, taxonomy analysis.Taxonomy, sources []string) *RiskHandler {
	return &RiskHandler{
		analyzer: analyzer,
		taxonomy: taxonomy,
		sources:  sources,
	}
}

// Analyze runs one risk assessment for the requested coordinates
func (h *RiskHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req risk.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.Latitude < -90 || req.Latitude > 90 {
		respondWithError(w, http.StatusBadRequest, "Latitude must be between -90 and 90", nil)
		return
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		respondWithError(w, http.StatusBadRequest, "Longitude must be between -180 and 180", nil)
		return
	}

	assessment, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, risk.ErrNoSourcesConfigured):
			respondWithError(w, http.StatusServiceUnavailable, err.Error(), nil)
		case errors.Is(err, risk.ErrNoDataFound), errors.Is(err, risk.ErrNoRelevantData):
			// Distinct messages: NoDataFound means broaden the location,
			// NoRelevantData means broaden the query.
			respondWithError(w, http.StatusNotFound, err.Error(), nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Analysis failed", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, assessment)
}

// keywordCategory is one taxonomy category in the keywords response.
// A slice keeps the taxonomy's declaration order on the wire; a map
// would serialize alphabetically.
type keywordCategory struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// Keywords returns the monitored risk keyword taxonomy
func (h *RiskHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	total := 0
	categories := make([]keywordCategory, 0, len(h.taxonomy.Categories))
	for _, cat := range h.taxonomy.Categories {
		categories = append(categories, keywordCategory{Name: cat.Name, Keywords: cat.Keywords})
		total += len(cat.Keywords)
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"categories":     categories,
		"total_keywords": total,
	})
}

// Sources reports which data sources are configured
func (h *RiskHandler) Sources(w http.ResponseWriter, r *http.Request) {
	configured := make(map[string]bool, len(risk.Sources))
	for _, source := range risk.Sources {
		configured[string(source)] = false
	}
	for _, name := range h.sources {
		configured[name] = true
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"sources": configured,
		"ready":   len(h.sources) > 0,
	})
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
