package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Identity roles. Every person record carries exactly one role.
const (
	RolePatient      = "PATIENT"
	RoleHealthWorker = "HEALTH_WORKER"
)

// Identity holds the structure for the identities collection in mongo.
// The phone number is the primary lookup key and is unique.
type Identity struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	DisplayName  string             `json:"displayName" bson:"displayName"`
	PhoneNumber  string             `json:"phoneNumber" bson:"phoneNumber"`
	EmailAddress string             `json:"emailAddress" bson:"emailAddress"`
	Role         string             `json:"role" bson:"role"`
	Verified     bool               `json:"verified" bson:"verified"`
	Password     string             `json:"-" bson:"password,omitempty"`
	CreatedAt    primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt    primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
