package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MedicalRecord holds the structure for the medicalrecords collection in
// mongo. Records are append-only consultation history; multiple records
// accumulate per patient over time. ContentAddress is populated
// asynchronously by the archival bridge and callers must treat it as
// eventually-present.
type MedicalRecord struct {
	ID             primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	PatientID      primitive.ObjectID  `json:"patientID" bson:"patientID"`
	HealthWorkerID *primitive.ObjectID `json:"healthWorkerID,omitempty" bson:"healthWorkerID,omitempty"`
	RecordedBy     string              `json:"recordedBy" bson:"recordedBy"`
	Diagnosis      string              `json:"diagnosis" bson:"diagnosis"`
	Symptoms       []string            `json:"symptoms" bson:"symptoms"`
	Treatment      string              `json:"treatment" bson:"treatment"`
	Medications    []string            `json:"medications" bson:"medications"`
	Notes          string              `json:"notes,omitempty" bson:"notes,omitempty"`
	Attachments    []string            `json:"attachments" bson:"attachments"`
	ContentAddress string              `json:"contentAddress,omitempty" bson:"contentAddress,omitempty"`
	ArchivalURL    string              `json:"archivalUrl,omitempty" bson:"archivalURL,omitempty"`
	Encrypted      bool                `json:"encrypted" bson:"encrypted"`
	NeedsArchival  bool                `json:"-" bson:"needsArchival"`
	CreatedAt      primitive.DateTime  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime  `json:"updatedAt" bson:"updatedAt"`
}

// ArchivalDocument is the canonical JSON projection of a medical record
// pushed to the content-addressed store.
type ArchivalDocument struct {
	RecordID     string   `json:"recordId"`
	PatientName  string   `json:"patientName"`
	PatientPhone string   `json:"patientPhone"`
	WorkerName   string   `json:"workerName,omitempty"`
	Diagnosis    string   `json:"diagnosis"`
	Treatment    string   `json:"treatment"`
	Medications  []string `json:"medications"`
	Notes        string   `json:"notes,omitempty"`
	Timestamp    string   `json:"timestamp"`
}

// ArchivalReceipt is what the content-addressed store returns for a
// successful put.
type ArchivalReceipt struct {
	ContentAddress string `json:"contentAddress"`
	RetrievalURL   string `json:"retrievalUrl"`
}
