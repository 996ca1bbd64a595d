package databases

// go generate: mockery --name EmergencyAlertDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const emergencyAlertName = "emergencyalerts"

// EmergencyAlertDatabase contains the methods to use with the emergencyalerts database.
// The collection is a write-only audit log; rows are never updated.
type EmergencyAlertDatabase interface {
	InsertOne(ctx context.Context, alert models.EmergencyAlert) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EmergencyAlert, error)
	List(ctx context.Context, limit, page int) ([]models.EmergencyAlert, error)
}

type emergencyAlertDatabase struct {
	db DatabaseHelper
}

// NewEmergencyAlertDatabase initializes a new instance of emergency alert database with the provided db connection
func NewEmergencyAlertDatabase(db DatabaseHelper) EmergencyAlertDatabase {
	return &emergencyAlertDatabase{
		db: db,
	}
}

func (c *emergencyAlertDatabase) InsertOne(ctx context.Context, alert models.EmergencyAlert) error {
	_, err := c.db.Collection(emergencyAlertName).InsertOne(ctx, alert)
	return err
}

func (c *emergencyAlertDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.EmergencyAlert, error) {
	var alerts []models.EmergencyAlert
	cursor, err := c.db.Collection(emergencyAlertName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// List returns sent alerts newest-first with pagination
func (c *emergencyAlertDatabase) List(ctx context.Context, limit, page int) ([]models.EmergencyAlert, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"sentAt": -1})
	return c.Find(ctx, bson.D{}, opts)
}
