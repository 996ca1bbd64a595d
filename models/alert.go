package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Alert severities
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

// Alert holds the structure for the alerts collection in mongo. Alerts are
// append-only per monitoring record and immutable once created, except for
// the isRead flag.
type Alert struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	MonitoringRecordID primitive.ObjectID `json:"monitoringRecordID" bson:"monitoringRecordID"`
	Severity           string             `json:"severity" bson:"severity"`
	Message            string             `json:"message" bson:"message"`
	IsRead             bool               `json:"isRead" bson:"isRead"`
	CreatedAt          primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
