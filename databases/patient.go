package databases

// go generate: mockery --name PatientDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const patientName = "patients"

// PatientDatabase contains the methods to use with the patients database
type PatientDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PatientProfile, error)
	InsertOne(ctx context.Context, patient models.PatientProfile) error
}

type patientDatabase struct {
	db DatabaseHelper
}

// NewPatientDatabase initializes a new instance of patient database with the provided db connection
func NewPatientDatabase(db DatabaseHelper) PatientDatabase {
	return &patientDatabase{
		db: db,
	}
}

func (c *patientDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PatientProfile, error) {
	patient := &models.PatientProfile{}
	err := c.db.Collection(patientName).FindOne(ctx, filter, opts...).Decode(&patient)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (c *patientDatabase) InsertOne(ctx context.Context, patient models.PatientProfile) error {
	_, err := c.db.Collection(patientName).InsertOne(ctx, patient)
	return err
}
