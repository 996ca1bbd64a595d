package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EmergencyAlertSent is the only status an emergency alert row ever holds;
// the collection is a write-only audit log.
const EmergencyAlertSent = "SENT"

// EmergencyAlert holds the structure for the emergencyalerts collection in
// mongo. One row per explicit "send to hospital" action.
type EmergencyAlert struct {
	ID                primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	EmergencyID       string             `json:"emergencyId" bson:"emergencyID"`
	PatientName       string             `json:"patientName" bson:"patientName"`
	PatientPhone      string             `json:"patientPhone" bson:"patientPhone"`
	Symptoms          string             `json:"symptoms" bson:"symptoms"`
	Diagnosis         string             `json:"diagnosis" bson:"diagnosis"`
	HealthWorkerPhone string             `json:"healthWorkerPhone,omitempty" bson:"healthWorkerPhone,omitempty"`
	HospitalPhone     string             `json:"hospitalPhone" bson:"hospitalPhone"`
	AmbulancePhone    string             `json:"ambulancePhone" bson:"ambulancePhone"`
	Status            string             `json:"status" bson:"status"`
	SentAt            primitive.DateTime `json:"sentAt" bson:"sentAt"`
}
