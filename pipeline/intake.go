// Package pipeline implements the patient emergency intake flow: identity
// and patient resolution, the monitoring status upsert with its alert
// emission, durable medical record writes with the best-effort archival
// bridge, and the explicit send-to-authorities dispatch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
	"github.com/chikitsa-health/chikitsa-api/notify"
)

// Status-derived default treatment narratives, used when the caller leaves
// treatment empty.
const (
	TreatmentCritical    = "Emergency treatment initiated. Patient referred to nearest hospital."
	TreatmentObservation = "Under observation. Follow prescribed medication."
)

const alertSymptomsLimit = 100

// Archiver pushes a canonical record projection to the content-addressed
// store. Failure is non-fatal everywhere it is called.
type Archiver interface {
	Put(ctx context.Context, doc models.ArchivalDocument) (*models.ArchivalReceipt, error)
}

// AlertFeed receives every emitted alert for live delivery to connected
// dashboards. Publishing is fire-and-forget.
type AlertFeed interface {
	Publish(alert models.Alert)
}

// Intake orchestrates the emergency intake pipeline. Archiver, Notifier and
// Feed are optional; a nil value disables that side effect.
type Intake struct {
	IdentityDB   databases.IdentityDatabase
	PatientDB    databases.PatientDatabase
	WorkerDB     databases.HealthWorkerDatabase
	MonitoringDB databases.MonitoringDatabase
	AlertDB      databases.AlertDatabase
	RecordDB     databases.MedicalRecordDatabase
	EmergencyDB  databases.EmergencyAlertDatabase

	Archiver Archiver
	Notifier notify.Notifier
	Feed     AlertFeed

	HospitalPhone  string
	AmbulancePhone string
}

// ResolveOrCreatePatient finds or creates the identity and patient profile
// for a phone number. Idempotent: repeated calls with the same phone return
// the existing profile unchanged; age and address are only recorded at
// creation and are not refreshed on later calls.
func (i *Intake) ResolveOrCreatePatient(ctx context.Context, phone, name string, age int, address string) (*models.PatientProfile, error) {
	identity, err := i.IdentityDB.FindOne(ctx, bson.M{"phoneNumber": phone})
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := primitive.NewDateTimeFromTime(time.Now())
		identity = &models.Identity{
			ID:          primitive.NewObjectID(),
			DisplayName: name,
			PhoneNumber: phone,
			// Email is required by the store but irrelevant to this flow,
			// so a placeholder is synthesized from the phone number.
			EmailAddress: fmt.Sprintf("%s@phone.chikitsa.local", phone),
			Role:         models.RolePatient,
			Verified:     false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := i.IdentityDB.InsertOne(ctx, *identity); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	patient, err := i.PatientDB.FindOne(ctx, bson.M{"identityID": identity.ID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := primitive.NewDateTimeFromTime(time.Now())
		patient = &models.PatientProfile{
			ID:         primitive.NewObjectID(),
			IdentityID: identity.ID,
			Age:        age,
			Address:    address,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := i.PatientDB.InsertOne(ctx, *patient); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return patient, nil
}

// ResolveOrCreateWorker finds the health-worker profile for a phone number.
// When no registration matches, the named fallback actor is created instead
// of silently fabricating a clinician: an unverified identity plus a profile
// flagged synthetic with the EMERGENCY-DEFAULT license.
func (i *Intake) ResolveOrCreateWorker(ctx context.Context, phone string) (*models.HealthWorkerProfile, error) {
	identity, err := i.IdentityDB.FindOne(ctx, bson.M{"phoneNumber": phone})
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := primitive.NewDateTimeFromTime(time.Now())
		identity = &models.Identity{
			ID:           primitive.NewObjectID(),
			DisplayName:  "Emergency Health Worker",
			PhoneNumber:  phone,
			EmailAddress: fmt.Sprintf("%s@phone.chikitsa.local", phone),
			Role:         models.RoleHealthWorker,
			Verified:     false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := i.IdentityDB.InsertOne(ctx, *identity); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	worker, err := i.WorkerDB.FindOne(ctx, bson.M{"identityID": identity.ID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		now := primitive.NewDateTimeFromTime(time.Now())
		worker = &models.HealthWorkerProfile{
			ID:             primitive.NewObjectID(),
			IdentityID:     identity.ID,
			LicenseNumber:  models.EmergencyDefaultWorkerLicense,
			Specialization: "Emergency Response",
			AreaOrVillage:  "Unassigned",
			Synthetic:      true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := i.WorkerDB.InsertOne(ctx, *worker); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return worker, nil
}

// UpsertMonitoring writes the single monitoring record for the patient and
// appends exactly one alert whose severity maps from the new status. The
// status change is never undone when the alert append fails; the error is
// surfaced to the caller with the record intact. Notifying external
// authorities is deliberately NOT done here, even for critical status.
func (i *Intake) UpsertMonitoring(ctx context.Context, record *models.MonitoringRecord) (*models.MonitoringRecord, error) {
	if err := i.MonitoringDB.Upsert(ctx, record); err != nil {
		return nil, err
	}

	if record.ID.IsZero() {
		stored, err := i.MonitoringDB.FindOne(ctx, bson.M{"patientID": record.PatientID})
		if err != nil {
			return nil, err
		}
		record = stored
	}

	alert := models.Alert{
		ID:                 primitive.NewObjectID(),
		MonitoringRecordID: record.ID,
		Severity:           models.SeverityForStatus(record.Status),
		Message:            fmt.Sprintf("Patient status %s: %s", record.Status, truncate(record.Symptoms, alertSymptomsLimit)),
		IsRead:             false,
		CreatedAt:          primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := i.AlertDB.InsertOne(ctx, alert); err != nil {
		return record, err
	}

	if i.Feed != nil {
		i.Feed.Publish(alert)
	}

	return record, nil
}

// RecordParams carries the inputs for a medical record write. PatientName,
// PatientPhone and WorkerName only feed the archival projection.
type RecordParams struct {
	PatientID      primitive.ObjectID
	HealthWorkerID *primitive.ObjectID
	Status         string
	Diagnosis      string
	Symptoms       []string
	Treatment      string
	Medications    []string
	Notes          string
	PatientName    string
	PatientPhone   string
	WorkerName     string
}

// CreateMedicalRecord appends a new medical record; it never upserts. After
// the insert commits, the canonical projection is pushed to the archival
// store asynchronously and best-effort: the caller always gets a valid
// record back, with a null content address until (and unless) the push
// lands.
func (i *Intake) CreateMedicalRecord(ctx context.Context, params RecordParams) (*models.MedicalRecord, error) {
	treatment := params.Treatment
	if treatment == "" {
		if params.Status == models.StatusCritical {
			treatment = TreatmentCritical
		} else {
			treatment = TreatmentObservation
		}
	}

	recordedBy := models.RecordedBySystem
	if params.HealthWorkerID != nil {
		recordedBy = "health-worker"
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	record := models.MedicalRecord{
		ID:             primitive.NewObjectID(),
		PatientID:      params.PatientID,
		HealthWorkerID: params.HealthWorkerID,
		RecordedBy:     recordedBy,
		Diagnosis:      params.Diagnosis,
		Symptoms:       params.Symptoms,
		Treatment:      treatment,
		Medications:    params.Medications,
		Notes:          params.Notes,
		Attachments:    []string{},
		Encrypted:      false,
		NeedsArchival:  true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := i.RecordDB.InsertOne(ctx, record); err != nil {
		return nil, err
	}

	if i.Archiver != nil {
		go func(rec models.MedicalRecord, p RecordParams) {
			if err := i.archive(context.Background(), rec, p.PatientName, p.PatientPhone, p.WorkerName); err != nil {
				zap.S().Errorw("archival push failed, record remains valid without content address",
					"recordID", rec.ID.Hex(),
					"error", err,
				)
			}
		}(record, params)
	}

	return &record, nil
}

// ArchiveRecord retries the archival push for a stored record, resolving
// the patient identity for the projection. Used by the background sweep.
func (i *Intake) ArchiveRecord(ctx context.Context, record models.MedicalRecord) error {
	var name, phone string
	if patient, err := i.PatientDB.FindOne(ctx, bson.M{"_id": record.PatientID}); err == nil {
		if identity, err := i.IdentityDB.FindOne(ctx, bson.M{"_id": patient.IdentityID}); err == nil {
			name = identity.DisplayName
			phone = identity.PhoneNumber
		}
	}
	return i.archive(ctx, record, name, phone, "")
}

func (i *Intake) archive(ctx context.Context, record models.MedicalRecord, patientName, patientPhone, workerName string) error {
	if i.Archiver == nil {
		return nil
	}

	doc := models.ArchivalDocument{
		RecordID:     record.ID.Hex(),
		PatientName:  patientName,
		PatientPhone: patientPhone,
		WorkerName:   workerName,
		Diagnosis:    record.Diagnosis,
		Treatment:    record.Treatment,
		Medications:  record.Medications,
		Notes:        record.Notes,
		Timestamp:    record.CreatedAt.Time().UTC().Format(time.RFC3339),
	}

	receipt, err := i.Archiver.Put(ctx, doc)
	if err != nil {
		return err
	}
	return i.RecordDB.SetArchivalReceipt(ctx, record.ID, *receipt)
}

// SendToAuthorities persists one SENT emergency alert row routing the
// patient's current monitoring state to the configured responder set. Only
// an explicit health-worker action reaches this; a status change alone,
// including to critical, never does. Outbound notification is best-effort
// and never rolls back the alert row or the preceding status change.
func (i *Intake) SendToAuthorities(ctx context.Context, patientID primitive.ObjectID) (*models.EmergencyAlert, error) {
	record, err := i.MonitoringDB.FindOne(ctx, bson.M{"patientID": patientID})
	if err != nil {
		return nil, err
	}

	var name, phone string
	patient, err := i.PatientDB.FindOne(ctx, bson.M{"_id": patientID})
	if err != nil {
		return nil, err
	}
	identity, err := i.IdentityDB.FindOne(ctx, bson.M{"_id": patient.IdentityID})
	if err != nil {
		return nil, err
	}
	name = identity.DisplayName
	phone = identity.PhoneNumber

	emergencyID := record.EmergencyID
	if emergencyID == "" {
		emergencyID = uuid.New().String()
	}

	alert := models.EmergencyAlert{
		ID:                primitive.NewObjectID(),
		EmergencyID:       emergencyID,
		PatientName:       name,
		PatientPhone:      phone,
		Symptoms:          record.Symptoms,
		Diagnosis:         record.Diagnosis,
		HealthWorkerPhone: record.HealthWorkerPhone,
		HospitalPhone:     i.HospitalPhone,
		AmbulancePhone:    i.AmbulancePhone,
		Status:            models.EmergencyAlertSent,
		SentAt:            primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := i.EmergencyDB.InsertOne(ctx, alert); err != nil {
		return nil, err
	}

	if i.Notifier != nil {
		if err := i.Notifier.Notify(ctx, alert); err != nil {
			zap.S().Errorw("emergency notifier failed, alert row persisted",
				"emergencyId", alert.EmergencyID,
				"error", err,
			)
		}
	}

	return &alert, nil
}

// truncate cuts s to at most n characters, never splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
