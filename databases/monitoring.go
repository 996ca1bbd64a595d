package databases

// go generate: mockery --name MonitoringDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const monitoringName = "monitoring"

// MonitoringDatabase contains the methods to use with the monitoring database
type MonitoringDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MonitoringRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MonitoringRecord, error)
	List(ctx context.Context, limit, page int) ([]models.MonitoringRecord, error)
	Upsert(ctx context.Context, record *models.MonitoringRecord) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type monitoringDatabase struct {
	db DatabaseHelper
}

// NewMonitoringDatabase initializes a new instance of monitoring database with the provided db connection
func NewMonitoringDatabase(db DatabaseHelper) MonitoringDatabase {
	return &monitoringDatabase{
		db: db,
	}
}

func (c *monitoringDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MonitoringRecord, error) {
	record := &models.MonitoringRecord{}
	err := c.db.Collection(monitoringName).FindOne(ctx, filter, opts...).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *monitoringDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MonitoringRecord, error) {
	var records []models.MonitoringRecord
	cursor, err := c.db.Collection(monitoringName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// List returns monitoring records newest-first with pagination
func (c *monitoringDatabase) List(ctx context.Context, limit, page int) ([]models.MonitoringRecord, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"updatedAt": -1})
	return c.Find(ctx, bson.D{}, opts)
}

// Upsert writes the single monitoring record for the record's patient,
// creating it if absent and overwriting status, symptoms, diagnosis,
// vitals and correlation id in place if present. Last write wins; there
// is no version check.
func (c *monitoringDatabase) Upsert(ctx context.Context, record *models.MonitoringRecord) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	record.UpdatedAt = now

	filter := bson.M{"patientID": record.PatientID}
	update := bson.M{
		"$set": bson.M{
			"status":            record.Status,
			"symptoms":          record.Symptoms,
			"diagnosis":         record.Diagnosis,
			"emergencyID":       record.EmergencyID,
			"location":          record.Location,
			"age":               record.Age,
			"vitals":            record.Vitals,
			"healthWorkerPhone": record.HealthWorkerPhone,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{
			"patientID": record.PatientID,
			"createdAt": now,
		},
	}

	res, err := c.db.Collection(monitoringName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if res != nil && res.UpsertedID != nil {
		if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
			record.ID = oid
			record.CreatedAt = now
		}
	}
	return nil
}

func (c *monitoringDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(monitoringName).CountDocuments(ctx, filter, opts...)
}
