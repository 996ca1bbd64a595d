package databases

// go generate: mockery --name AlertDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const alertName = "alerts"

// AlertDatabase contains the methods to use with the alerts database
type AlertDatabase interface {
	InsertOne(ctx context.Context, alert models.Alert) error
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Alert, error)
	FindByMonitoringRecordID(ctx context.Context, monitoringRecordID primitive.ObjectID) ([]models.Alert, error)
	MarkRead(ctx context.Context, alertID primitive.ObjectID) (*mongo.UpdateResult, error)
}

type alertDatabase struct {
	db DatabaseHelper
}

// NewAlertDatabase initializes a new instance of alert database with the provided db connection
func NewAlertDatabase(db DatabaseHelper) AlertDatabase {
	return &alertDatabase{
		db: db,
	}
}

func (c *alertDatabase) InsertOne(ctx context.Context, alert models.Alert) error {
	_, err := c.db.Collection(alertName).InsertOne(ctx, alert)
	return err
}

func (c *alertDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Alert, error) {
	var alerts []models.Alert
	cursor, err := c.db.Collection(alertName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByMonitoringRecordID returns the alerts for a monitoring record,
// newest first for display.
func (c *alertDatabase) FindByMonitoringRecordID(ctx context.Context, monitoringRecordID primitive.ObjectID) ([]models.Alert, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return c.Find(ctx, bson.M{"monitoringRecordID": monitoringRecordID}, opts)
}

func (c *alertDatabase) MarkRead(ctx context.Context, alertID primitive.ObjectID) (*mongo.UpdateResult, error) {
	return c.db.Collection(alertName).UpdateOne(ctx,
		bson.M{"_id": alertID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
}
