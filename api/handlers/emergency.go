package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/api"
	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
	"github.com/chikitsa-health/chikitsa-api/pipeline"
)

// Emergency exported for testing purposes
type Emergency struct {
	Intake *pipeline.Intake
	DB     databases.EmergencyAlertDatabase
}

// DispatchHandler sends the patient's current monitoring state to the
// configured hospital and ambulance contacts. This only ever runs on an
// explicit request; no status change triggers it on its own.
func (e Emergency) DispatchHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	alert, err := e.Intake.SendToAuthorities(r.Context(), pID)
	if err != nil {
		config.ErrorStatus("failed to dispatch emergency alert", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(alert)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EmergencyAlertsHandler returns the emergency dispatch audit log, newest first
func (e Emergency) EmergencyAlertsHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	Page := getPage(0, r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := e.DB.List(ctx, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get emergency alerts", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.EmergencyAlert{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
