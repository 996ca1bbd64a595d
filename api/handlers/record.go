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

// Record exported for testing purposes
type Record struct {
	Intake *pipeline.Intake
	DB     databases.MedicalRecordDatabase
}

type createRecordRequest struct {
	PatientID      string   `json:"patientId"`
	HealthWorkerID string   `json:"healthWorkerId"`
	Status         string   `json:"status"`
	Diagnosis      string   `json:"diagnosis"`
	Symptoms       []string `json:"symptoms"`
	Treatment      string   `json:"treatment"`
	Medications    []string `json:"medications"`
	Notes          string   `json:"notes"`
	PatientName    string   `json:"patientName"`
	PatientPhone   string   `json:"patientPhone"`
}

// CreateRecordHandler appends a new medical record for an already-resolved
// patient. History only accumulates; nothing here ever overwrites an
// earlier record.
func (rec Record) CreateRecordHandler(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Diagnosis == "" {
		config.ErrorStatus("invalid record request", http.StatusBadRequest, w, fmt.Errorf("diagnosis is required"))
		return
	}

	pID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var workerID *primitive.ObjectID
	if req.HealthWorkerID != "" {
		wID, err := primitive.ObjectIDFromHex(req.HealthWorkerID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		workerID = &wID
	}

	dbResp, err := rec.Intake.CreateMedicalRecord(r.Context(), pipeline.RecordParams{
		PatientID:      pID,
		HealthWorkerID: workerID,
		Status:         req.Status,
		Diagnosis:      req.Diagnosis,
		Symptoms:       req.Symptoms,
		Treatment:      req.Treatment,
		Medications:    req.Medications,
		Notes:          req.Notes,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
	})
	if err != nil {
		config.ErrorStatus("failed to create medical record", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RecordsByPatientIDHandler returns the consultation history for a patient,
// newest first
func (rec Record) RecordsByPatientIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	Page := getPage(0, r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := rec.DB.FindByPatientID(ctx, pID, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get medical records by patient ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MedicalRecord{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
