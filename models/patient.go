package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PatientProfile holds the structure for the patients collection in mongo.
// One profile per identity, created lazily the first time a patient is
// referenced. Age and address are recorded at creation and not refreshed
// on later monitoring submissions.
type PatientProfile struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	IdentityID primitive.ObjectID `json:"identityID" bson:"identityID"`
	Age        int                `json:"age,omitempty" bson:"age,omitempty"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt  primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt  primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
