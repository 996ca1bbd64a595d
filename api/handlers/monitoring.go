package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/api"
	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
	"github.com/chikitsa-health/chikitsa-api/pipeline"
)

// Monitoring exported for testing purposes
type Monitoring struct {
	Intake *pipeline.Intake
	DB     databases.MonitoringDatabase
	ADB    databases.AlertDatabase
}

type intakeRequest struct {
	PatientName       string        `json:"patientName"`
	PatientPhone      string        `json:"patientPhone"`
	PatientAge        int           `json:"patientAge"`
	PatientLocation   string        `json:"patientLocation"`
	Symptoms          string        `json:"symptoms"`
	Diagnosis         string        `json:"diagnosis"`
	Status            string        `json:"status"`
	Vitals            models.Vitals `json:"vitals"`
	HealthWorkerPhone string        `json:"healthWorkerPhone"`
	EmergencyID       string        `json:"emergencyId"`
	Treatment         string        `json:"treatment"`
	Medications       []string      `json:"medications"`
	Notes             string        `json:"notes"`
}

type intakeResponse struct {
	Monitoring *models.MonitoringRecord `json:"monitoring"`
	Record     *models.MedicalRecord    `json:"record"`
}

func (req intakeRequest) validate() error {
	if req.PatientName == "" {
		return fmt.Errorf("patientName is required")
	}
	if req.PatientPhone == "" {
		return fmt.Errorf("patientPhone is required")
	}
	if req.Symptoms == "" {
		return fmt.Errorf("symptoms is required")
	}
	if req.Diagnosis == "" {
		return fmt.Errorf("diagnosis is required")
	}
	switch req.Status {
	case models.StatusStable, models.StatusAttention, models.StatusCritical:
		return nil
	default:
		return fmt.Errorf("status must be one of stable, attention, critical")
	}
}

// IntakeHandler runs the full emergency intake: resolve the patient, upsert
// the single monitoring record (which emits one alert), and append the
// companion medical record. Validation happens before any write; a rejected
// request touches nothing.
func (m Monitoring) IntakeHandler(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := req.validate(); err != nil {
		config.ErrorStatus("invalid intake request", http.StatusBadRequest, w, err)
		return
	}

	ctx := r.Context()

	patient, err := m.Intake.ResolveOrCreatePatient(ctx, req.PatientPhone, req.PatientName, req.PatientAge, req.PatientLocation)
	if err != nil {
		config.ErrorStatus("failed to resolve patient", http.StatusInternalServerError, w, err)
		return
	}

	var workerID *primitive.ObjectID
	var workerName string
	if req.HealthWorkerPhone != "" {
		worker, err := m.Intake.ResolveOrCreateWorker(ctx, req.HealthWorkerPhone)
		if err != nil {
			config.ErrorStatus("failed to resolve health worker", http.StatusInternalServerError, w, err)
			return
		}
		workerID = &worker.ID
		if worker.Synthetic {
			workerName = "Emergency Health Worker"
		}
	}

	record := &models.MonitoringRecord{
		PatientID:         patient.ID,
		Status:            req.Status,
		Symptoms:          req.Symptoms,
		Diagnosis:         req.Diagnosis,
		EmergencyID:       req.EmergencyID,
		Location:          req.PatientLocation,
		Age:               req.PatientAge,
		Vitals:            req.Vitals,
		HealthWorkerPhone: req.HealthWorkerPhone,
	}
	record, err = m.Intake.UpsertMonitoring(ctx, record)
	if err != nil && record == nil {
		config.ErrorStatus("failed to upsert monitoring record", http.StatusInternalServerError, w, err)
		return
	}
	if err != nil {
		// The status change stands; only the alert append failed.
		zap.S().Errorw("alert append failed after monitoring upsert",
			"patientID", patient.ID.Hex(),
			"error", err,
		)
	}

	medRecord, err := m.Intake.CreateMedicalRecord(ctx, pipeline.RecordParams{
		PatientID:      patient.ID,
		HealthWorkerID: workerID,
		Status:         req.Status,
		Diagnosis:      req.Diagnosis,
		Symptoms:       []string{req.Symptoms},
		Treatment:      req.Treatment,
		Medications:    req.Medications,
		Notes:          req.Notes,
		PatientName:    req.PatientName,
		PatientPhone:   req.PatientPhone,
		WorkerName:     workerName,
	})
	if err != nil {
		config.ErrorStatus("failed to create medical record", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(intakeResponse{Monitoring: record, Record: medRecord})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MonitoringHandler returns all monitoring records
func (m Monitoring) MonitoringHandler(w http.ResponseWriter, r *http.Request) {
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	Page := getPage(0, r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.List(ctx, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get monitoring records", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.MonitoringRecord{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MonitoringByPatientIDHandler returns the single monitoring record for a patient
func (m Monitoring) MonitoringByPatientIDHandler(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patient_id"]

	zap.S().Debugf("patient_id: %v", patientID)

	pID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := m.DB.FindOne(r.Context(), bson.M{"patientID": pID})
	if err != nil {
		config.ErrorStatus("failed to get monitoring record by patient ID", http.StatusNotFound, w, err)
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

// AlertsByMonitoringIDHandler returns the alert history for a monitoring
// record, newest first
func (m Monitoring) AlertsByMonitoringIDHandler(w http.ResponseWriter, r *http.Request) {
	monitoringID := mux.Vars(r)["monitoring_id"]

	mID, err := primitive.ObjectIDFromHex(monitoringID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := m.ADB.FindByMonitoringRecordID(r.Context(), mID)
	if err != nil {
		config.ErrorStatus("failed to get alerts by monitoring record ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Alert{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkAlertReadHandler marks a single alert as read
func (m Monitoring) MarkAlertReadHandler(w http.ResponseWriter, r *http.Request) {
	alertID := mux.Vars(r)["alert_id"]

	aID, err := primitive.ObjectIDFromHex(alertID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	res, err := m.ADB.MarkRead(r.Context(), aID)
	if err != nil {
		config.ErrorStatus("failed to mark alert as read", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("alert not found", http.StatusNotFound, w, fmt.Errorf("no alert with id %s", alertID))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"read": true}`))
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		}
		if Page < 0 {
			zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", Page))
			return 0
		}
	}
	return Page
}
