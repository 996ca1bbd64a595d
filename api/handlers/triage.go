package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chikitsa-health/chikitsa-api/classifier"
	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/models"
)

// Triage exported for testing purposes
type Triage struct {
	Classifier *classifier.Client
}

// TriageHandler forwards free-text symptoms to the symptom classifier and
// returns its label plus the suggested monitoring status. Advisory only;
// nothing is written and the caller decides what status to submit.
func (t Triage) TriageHandler(w http.ResponseWriter, r *http.Request) {
	if t.Classifier == nil {
		config.ErrorStatus("symptom classifier not configured", http.StatusServiceUnavailable, w, fmt.Errorf("no classifier URL set"))
		return
	}

	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Symptoms == "" {
		config.ErrorStatus("invalid triage request", http.StatusBadRequest, w, fmt.Errorf("symptoms is required"))
		return
	}

	resp, err := t.Classifier.Classify(r.Context(), req)
	if err != nil {
		config.ErrorStatus("symptom classifier unavailable", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
