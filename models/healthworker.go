package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EmergencyDefaultWorkerLicense marks the synthesized fallback profile used
// when an inbound request references a health-worker phone with no matching
// registration. It is a named system actor, not a real clinician.
const EmergencyDefaultWorkerLicense = "EMERGENCY-DEFAULT"

// RecordedBySystem tags medical records written by automated triage rather
// than a human health worker.
const RecordedBySystem = "system"

// HealthWorkerProfile holds the structure for the healthworkers collection
// in mongo. One profile per identity.
type HealthWorkerProfile struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	IdentityID     primitive.ObjectID `json:"identityID" bson:"identityID"`
	LicenseNumber  string             `json:"licenseNumber" bson:"licenseNumber"`
	Specialization string             `json:"specialization" bson:"specialization"`
	AreaOrVillage  string             `json:"areaOrVillage" bson:"areaOrVillage"`
	HospitalName   string             `json:"hospitalName,omitempty" bson:"hospitalName,omitempty"`
	Synthetic      bool               `json:"synthetic" bson:"synthetic"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
