package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Monitoring statuses. There is no restricted transition graph; any status
// may move to any other, driven by caller input.
const (
	StatusStable    = "stable"
	StatusAttention = "attention"
	StatusCritical  = "critical"
)

// Vitals holds the optional vital readings attached to a monitoring record
type Vitals struct {
	HeartRate     int    `json:"heartRate" bson:"heartRate"`
	BloodPressure string `json:"bloodPressure" bson:"bloodPressure"`
	Temperature   string `json:"temperature" bson:"temperature"`
	Weight        string `json:"weight" bson:"weight"`
}

// MonitoringRecord holds the structure for the monitoring collection in
// mongo. Exactly one record exists per patient; re-submission overwrites
// status, symptoms, diagnosis and vitals in place.
type MonitoringRecord struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	PatientID         primitive.ObjectID `json:"patientID" bson:"patientID"`
	Status            string             `json:"status" bson:"status"`
	Symptoms          string             `json:"symptoms" bson:"symptoms"`
	Diagnosis         string             `json:"diagnosis" bson:"diagnosis"`
	EmergencyID       string             `json:"emergencyId,omitempty" bson:"emergencyID,omitempty"`
	Location          string             `json:"patientLocation,omitempty" bson:"location,omitempty"`
	Age               int                `json:"patientAge,omitempty" bson:"age,omitempty"`
	Vitals            Vitals             `json:"vitals" bson:"vitals"`
	HealthWorkerPhone string             `json:"healthWorkerPhone,omitempty" bson:"healthWorkerPhone,omitempty"`
	CreatedAt         primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt         primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// SeverityForStatus maps a monitoring status to the alert severity emitted
// after an upsert: critical -> CRITICAL, attention -> WARNING, anything
// else -> INFO.
func SeverityForStatus(status string) string {
	switch status {
	case StatusCritical:
		return SeverityCritical
	case StatusAttention:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
