package databases

// go generate: mockery --name HealthWorkerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const healthWorkerName = "healthworkers"

// HealthWorkerDatabase contains the methods to use with the healthworkers database
type HealthWorkerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HealthWorkerProfile, error)
	InsertOne(ctx context.Context, worker models.HealthWorkerProfile) error
}

type healthWorkerDatabase struct {
	db DatabaseHelper
}

// NewHealthWorkerDatabase initializes a new instance of health worker database with the provided db connection
func NewHealthWorkerDatabase(db DatabaseHelper) HealthWorkerDatabase {
	return &healthWorkerDatabase{
		db: db,
	}
}

func (c *healthWorkerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HealthWorkerProfile, error) {
	worker := &models.HealthWorkerProfile{}
	err := c.db.Collection(healthWorkerName).FindOne(ctx, filter, opts...).Decode(&worker)
	if err != nil {
		return nil, err
	}
	return worker, nil
}

func (c *healthWorkerDatabase) InsertOne(ctx context.Context, worker models.HealthWorkerProfile) error {
	_, err := c.db.Collection(healthWorkerName).InsertOne(ctx, worker)
	return err
}
