package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/databases/mocks"
	"github.com/chikitsa-health/chikitsa-api/models"
)

func TestMonitoringDatabase_FindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	storedID := primitive.NewObjectID()

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.MonitoringRecord)
		(*arg).ID = storedID
		(*arg).Status = models.StatusAttention
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "monitoring").Return(collectionHelper)

	monitoringDba := databases.NewMonitoringDatabase(dbHelper)

	record, err := monitoringDba.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, record)
	assert.EqualError(t, err, "mocked-error")

	record, err = monitoringDba.FindOne(context.Background(), bson.M{"error": false})

	assert.NoError(t, err)
	assert.Equal(t, storedID, record.ID)
	assert.Equal(t, models.StatusAttention, record.Status)
}

func TestMonitoringDatabase_Upsert_CreatesAndAssignsID(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	patientID := primitive.NewObjectID()
	upsertedID := primitive.NewObjectID()

	collectionHelper.On("UpdateOne",
		mock.Anything,
		bson.M{"patientID": patientID},
		mock.MatchedBy(func(update interface{}) bool {
			u, ok := update.(bson.M)
			if !ok {
				return false
			}
			set, ok := u["$set"].(bson.M)
			if !ok || set["status"] != models.StatusCritical {
				return false
			}
			// creation timestamp only ever comes from $setOnInsert
			setOnInsert, ok := u["$setOnInsert"].(bson.M)
			return ok && setOnInsert["patientID"] == patientID
		}),
		mock.Anything,
	).Return(&mongo.UpdateResult{UpsertedCount: 1, UpsertedID: upsertedID}, nil)

	dbHelper.On("Collection", "monitoring").Return(collectionHelper)

	monitoringDba := databases.NewMonitoringDatabase(dbHelper)

	record := &models.MonitoringRecord{
		PatientID: patientID,
		Status:    models.StatusCritical,
		Symptoms:  "chest pain",
	}
	err := monitoringDba.Upsert(context.Background(), record)

	assert.NoError(t, err)
	assert.Equal(t, upsertedID, record.ID)
	assert.NotZero(t, record.UpdatedAt)
}

func TestMonitoringDatabase_Upsert_ExistingRecordKeepsZeroID(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	patientID := primitive.NewObjectID()

	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "monitoring").Return(collectionHelper)

	monitoringDba := databases.NewMonitoringDatabase(dbHelper)

	record := &models.MonitoringRecord{PatientID: patientID, Status: models.StatusStable}
	err := monitoringDba.Upsert(context.Background(), record)

	// Matched an existing row: caller must read the stored document back to
	// learn its id.
	assert.NoError(t, err)
	assert.True(t, record.ID.IsZero())
}

func TestMonitoringDatabase_Upsert_Error(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "monitoring").Return(collectionHelper)

	monitoringDba := databases.NewMonitoringDatabase(dbHelper)

	err := monitoringDba.Upsert(context.Background(), &models.MonitoringRecord{})
	assert.EqualError(t, err, "mocked-error")
}

func TestMonitoringDatabase_List_DefaultPageDoesNotSkip(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	stored := models.MonitoringRecord{ID: primitive.NewObjectID(), Status: models.StatusStable}
	cursorHelper.On("Decode", mock.AnythingOfType("*[]models.MonitoringRecord")).
		Run(func(args mock.Arguments) {
			records := args.Get(0).(*[]models.MonitoringRecord)
			*records = []models.MonitoringRecord{stored}
		}).Return(nil)

	// An unspecified page comes through as 0 and must read the first page,
	// not a negative offset.
	collectionHelper.On("Find", mock.Anything, mock.Anything, mock.MatchedBy(func(o *options.FindOptions) bool {
		return o.Skip != nil && *o.Skip == 0 && o.Limit != nil && *o.Limit == 10
	})).Return(cursorHelper, nil)
	dbHelper.On("Collection", "monitoring").Return(collectionHelper)

	monitoringDba := databases.NewMonitoringDatabase(dbHelper)

	records, err := monitoringDba.List(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, []models.MonitoringRecord{stored}, records)
}
