package databases

// go generate: mockery --name MedicalRecordDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/models"
)

const medicalRecordName = "medicalrecords"

// MedicalRecordDatabase contains the methods to use with the medicalrecords database
type MedicalRecordDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MedicalRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MedicalRecord, error)
	FindByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int) ([]models.MedicalRecord, error)
	FindNeedingArchival(ctx context.Context, limit int) ([]models.MedicalRecord, error)
	InsertOne(ctx context.Context, record models.MedicalRecord) error
	SetArchivalReceipt(ctx context.Context, recordID primitive.ObjectID, receipt models.ArchivalReceipt) error
	AppendAttachment(ctx context.Context, recordID primitive.ObjectID, url string) error
}

type medicalRecordDatabase struct {
	db DatabaseHelper
}

// NewMedicalRecordDatabase initializes a new instance of medical record database with the provided db connection
func NewMedicalRecordDatabase(db DatabaseHelper) MedicalRecordDatabase {
	return &medicalRecordDatabase{
		db: db,
	}
}

func (c *medicalRecordDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MedicalRecord, error) {
	record := &models.MedicalRecord{}
	err := c.db.Collection(medicalRecordName).FindOne(ctx, filter, opts...).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *medicalRecordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	cursor, err := c.db.Collection(medicalRecordName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByPatientID returns the consultation history for a patient, newest
// first, paginated.
func (c *medicalRecordDatabase) FindByPatientID(ctx context.Context, patientID primitive.ObjectID, limit, page int) ([]models.MedicalRecord, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"createdAt": -1})
	return c.Find(ctx, bson.M{"patientID": patientID}, opts)
}

// FindNeedingArchival returns records whose archival push has not yet
// succeeded, oldest first so retries drain in order.
func (c *medicalRecordDatabase) FindNeedingArchival(ctx context.Context, limit int) ([]models.MedicalRecord, error) {
	l := int64(limit)
	opts := &options.FindOptions{Limit: &l}
	opts.SetSort(bson.M{"createdAt": 1})
	return c.Find(ctx, bson.M{"needsArchival": true}, opts)
}

func (c *medicalRecordDatabase) InsertOne(ctx context.Context, record models.MedicalRecord) error {
	_, err := c.db.Collection(medicalRecordName).InsertOne(ctx, record)
	return err
}

// SetArchivalReceipt records a successful archival push back onto the record
func (c *medicalRecordDatabase) SetArchivalReceipt(ctx context.Context, recordID primitive.ObjectID, receipt models.ArchivalReceipt) error {
	_, err := c.db.Collection(medicalRecordName).UpdateOne(ctx,
		bson.M{"_id": recordID},
		bson.M{"$set": bson.M{
			"contentAddress": receipt.ContentAddress,
			"archivalURL":    receipt.RetrievalURL,
			"encrypted":      true,
			"needsArchival":  false,
			"updatedAt":      primitive.NewDateTimeFromTime(time.Now()),
		}},
	)
	return err
}

func (c *medicalRecordDatabase) AppendAttachment(ctx context.Context, recordID primitive.ObjectID, url string) error {
	_, err := c.db.Collection(medicalRecordName).UpdateOne(ctx,
		bson.M{"_id": recordID},
		bson.M{
			"$push": bson.M{"attachments": url},
			"$set":  bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
		},
	)
	return err
}
