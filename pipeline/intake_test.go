package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chikitsa-health/chikitsa-api/databases/mocks"
	"github.com/chikitsa-health/chikitsa-api/models"
)

type fakeArchiver struct {
	receipt *models.ArchivalReceipt
	err     error
	puts    int
}

func (f *fakeArchiver) Put(_ context.Context, _ models.ArchivalDocument) (*models.ArchivalReceipt, error) {
	f.puts++
	return f.receipt, f.err
}

type recordingFeed struct {
	published []models.Alert
}

func (r *recordingFeed) Publish(alert models.Alert) {
	r.published = append(r.published, alert)
}

type failingNotifier struct{ called bool }

func (n *failingNotifier) Notify(_ context.Context, _ models.EmergencyAlert) error {
	n.called = true
	return errors.New("telephony bridge unreachable")
}

func TestResolveOrCreatePatient_CreatesIdentityAndProfile(t *testing.T) {
	identityDB := mocks.NewIdentityDatabase(t)
	patientDB := mocks.NewPatientDatabase(t)

	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	identityDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(id models.Identity) bool {
		return id.PhoneNumber == "9876543210" &&
			id.Role == models.RolePatient &&
			!id.Verified &&
			id.EmailAddress == "9876543210@phone.chikitsa.local"
	})).Return(nil).Once()
	patientDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	patientDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(p models.PatientProfile) bool {
		return p.Age == 42 && p.Address == "Village Rd"
	})).Return(nil).Once()

	i := &Intake{IdentityDB: identityDB, PatientDB: patientDB}
	patient, err := i.ResolveOrCreatePatient(context.Background(), "9876543210", "Asha Das", 42, "Village Rd")

	assert.NoError(t, err)
	assert.False(t, patient.ID.IsZero())
	assert.Equal(t, 42, patient.Age)
}

func TestResolveOrCreatePatient_IdempotentAndDoesNotRefresh(t *testing.T) {
	identityDB := mocks.NewIdentityDatabase(t)
	patientDB := mocks.NewPatientDatabase(t)

	identity := &models.Identity{ID: primitive.NewObjectID(), PhoneNumber: "9876543210", Role: models.RolePatient}
	existing := &models.PatientProfile{ID: primitive.NewObjectID(), IdentityID: identity.ID, Age: 42, Address: "Village Rd"}

	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(identity, nil).Twice()
	patientDB.On("FindOne", mock.Anything, mock.Anything).Return(existing, nil).Twice()

	i := &Intake{IdentityDB: identityDB, PatientDB: patientDB}

	// Second call supplies different age/address; the stored profile must
	// come back unchanged and nothing may be inserted.
	first, err := i.ResolveOrCreatePatient(context.Background(), "9876543210", "Asha Das", 42, "Village Rd")
	assert.NoError(t, err)
	second, err := i.ResolveOrCreatePatient(context.Background(), "9876543210", "Asha Das", 55, "Town Rd")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 42, second.Age)
	assert.Equal(t, "Village Rd", second.Address)
}

func TestResolveOrCreatePatient_PersistenceErrorPropagates(t *testing.T) {
	identityDB := mocks.NewIdentityDatabase(t)
	patientDB := mocks.NewPatientDatabase(t)

	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	i := &Intake{IdentityDB: identityDB, PatientDB: patientDB}
	patient, err := i.ResolveOrCreatePatient(context.Background(), "9876543210", "Asha Das", 42, "")

	assert.Error(t, err)
	assert.Nil(t, patient)
}

func TestResolveOrCreateWorker_SynthesizesDefaultActor(t *testing.T) {
	identityDB := mocks.NewIdentityDatabase(t)
	workerDB := mocks.NewHealthWorkerDatabase(t)

	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	identityDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(id models.Identity) bool {
		return id.Role == models.RoleHealthWorker && id.DisplayName == "Emergency Health Worker"
	})).Return(nil).Once()
	workerDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	workerDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(w models.HealthWorkerProfile) bool {
		return w.Synthetic && w.LicenseNumber == models.EmergencyDefaultWorkerLicense
	})).Return(nil).Once()

	i := &Intake{IdentityDB: identityDB, WorkerDB: workerDB}
	worker, err := i.ResolveOrCreateWorker(context.Background(), "9000012345")

	assert.NoError(t, err)
	assert.True(t, worker.Synthetic)
	assert.Equal(t, models.EmergencyDefaultWorkerLicense, worker.LicenseNumber)
}

func TestUpsertMonitoring_EmitsOneAlertPerUpsert(t *testing.T) {
	tests := []struct {
		status   string
		severity string
	}{
		{models.StatusCritical, models.SeverityCritical},
		{models.StatusAttention, models.SeverityWarning},
		{models.StatusStable, models.SeverityInfo},
		{"unknown", models.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			monitoringDB := mocks.NewMonitoringDatabase(t)
			alertDB := mocks.NewAlertDatabase(t)
			// No expectations: any call to the emergency alert store fails
			// the test. Status changes alone never dispatch.
			emergencyDB := mocks.NewEmergencyAlertDatabase(t)
			feed := &recordingFeed{}

			recID := primitive.NewObjectID()
			monitoringDB.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				rec := args.Get(1).(*models.MonitoringRecord)
				rec.ID = recID
			}).Return(nil).Once()
			alertDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.Alert) bool {
				return a.Severity == tt.severity && a.MonitoringRecordID == recID && !a.IsRead
			})).Return(nil).Once()

			i := &Intake{MonitoringDB: monitoringDB, AlertDB: alertDB, EmergencyDB: emergencyDB, Feed: feed}
			record, err := i.UpsertMonitoring(context.Background(), &models.MonitoringRecord{
				PatientID: primitive.NewObjectID(),
				Status:    tt.status,
				Symptoms:  "chest pain",
				Diagnosis: "suspected MI",
			})

			assert.NoError(t, err)
			assert.Equal(t, recID, record.ID)
			assert.Len(t, feed.published, 1)
			assert.Equal(t, tt.severity, feed.published[0].Severity)
		})
	}
}

func TestUpsertMonitoring_AlertMessageTruncatesSymptoms(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	alertDB := mocks.NewAlertDatabase(t)

	longSymptoms := strings.Repeat("severe abdominal pain, ", 20)

	monitoringDB.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.MonitoringRecord).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	alertDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.Alert) bool {
		return strings.Contains(a.Message, longSymptoms[:alertSymptomsLimit]) &&
			!strings.Contains(a.Message, longSymptoms)
	})).Return(nil).Once()

	i := &Intake{MonitoringDB: monitoringDB, AlertDB: alertDB}
	_, err := i.UpsertMonitoring(context.Background(), &models.MonitoringRecord{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusAttention,
		Symptoms:  longSymptoms,
	})

	assert.NoError(t, err)
}

func TestUpsertMonitoring_AlertMessageTruncatesOnRuneBoundary(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	alertDB := mocks.NewAlertDatabase(t)

	// Bengali symptom text: every character is multi-byte, so a byte-wise
	// cut would split a rune.
	bengaliSymptoms := strings.Repeat("বুকে ব্যথা ", 30)

	monitoringDB.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.MonitoringRecord).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	alertDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.Alert) bool {
		return utf8.ValidString(a.Message) &&
			utf8.RuneCountInString(a.Message) <= len("Patient status attention: ")+alertSymptomsLimit &&
			!strings.Contains(a.Message, bengaliSymptoms)
	})).Return(nil).Once()

	i := &Intake{MonitoringDB: monitoringDB, AlertDB: alertDB}
	_, err := i.UpsertMonitoring(context.Background(), &models.MonitoringRecord{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusAttention,
		Symptoms:  bengaliSymptoms,
	})

	assert.NoError(t, err)
}

func TestUpsertMonitoring_ExistingRecordReadBack(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	alertDB := mocks.NewAlertDatabase(t)

	patientID := primitive.NewObjectID()
	stored := &models.MonitoringRecord{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		Status:    models.StatusCritical,
		Symptoms:  "chest pain",
	}

	// Upsert matched an existing row, so no ID is assigned client-side and
	// the stored record is read back.
	monitoringDB.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	monitoringDB.On("FindOne", mock.Anything, mock.Anything).Return(stored, nil).Once()
	alertDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.Alert) bool {
		return a.MonitoringRecordID == stored.ID
	})).Return(nil).Once()

	i := &Intake{MonitoringDB: monitoringDB, AlertDB: alertDB}
	record, err := i.UpsertMonitoring(context.Background(), &models.MonitoringRecord{
		PatientID: patientID,
		Status:    models.StatusCritical,
		Symptoms:  "chest pain",
	})

	assert.NoError(t, err)
	assert.Equal(t, stored.ID, record.ID)
}

func TestUpsertMonitoring_AlertFailureLeavesStatusChange(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	alertDB := mocks.NewAlertDatabase(t)

	monitoringDB.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.MonitoringRecord).ID = primitive.NewObjectID()
	}).Return(nil).Once()
	alertDB.On("InsertOne", mock.Anything, mock.Anything).Return(errors.New("write concern failed")).Once()

	i := &Intake{MonitoringDB: monitoringDB, AlertDB: alertDB}
	record, err := i.UpsertMonitoring(context.Background(), &models.MonitoringRecord{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusCritical,
		Symptoms:  "chest pain",
	})

	// The upsert stands; the caller still sees the record alongside the error.
	assert.Error(t, err)
	assert.NotNil(t, record)
}

// fakeMonitoringStore holds one row per patient behind a mutex so racing
// upserts interleave the way a single atomic mongo update would.
type fakeMonitoringStore struct {
	mu        sync.Mutex
	byPatient map[primitive.ObjectID]models.MonitoringRecord
}

func newFakeMonitoringStore() *fakeMonitoringStore {
	return &fakeMonitoringStore{byPatient: make(map[primitive.ObjectID]models.MonitoringRecord)}
}

func (f *fakeMonitoringStore) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) (*models.MonitoringRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := filter.(bson.M)["patientID"].(primitive.ObjectID)
	rec, ok := f.byPatient[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := rec
	return &cp, nil
}

func (f *fakeMonitoringStore) Find(_ context.Context, _ interface{}, _ ...*options.FindOptions) ([]models.MonitoringRecord, error) {
	return nil, nil
}

func (f *fakeMonitoringStore) List(_ context.Context, _, _ int) ([]models.MonitoringRecord, error) {
	return nil, nil
}

func (f *fakeMonitoringStore) Upsert(_ context.Context, record *models.MonitoringRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *record
	if existing, ok := f.byPatient[record.PatientID]; ok {
		// Matched an existing row; the stored ID survives and the caller's
		// record keeps a zero ID, same as an upsert with MatchedCount 1.
		cp.ID = existing.ID
		f.byPatient[record.PatientID] = cp
		return nil
	}
	cp.ID = primitive.NewObjectID()
	f.byPatient[record.PatientID] = cp
	record.ID = cp.ID
	return nil
}

func (f *fakeMonitoringStore) CountDocuments(_ context.Context, _ interface{}, _ ...*options.CountOptions) (int64, error) {
	return 0, nil
}

type fakeAlertStore struct {
	mu     sync.Mutex
	alerts []models.Alert
}

func (f *fakeAlertStore) InsertOne(_ context.Context, alert models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

func (f *fakeAlertStore) Find(_ context.Context, _ interface{}, _ ...*options.FindOptions) ([]models.Alert, error) {
	return nil, nil
}

func (f *fakeAlertStore) FindByMonitoringRecordID(_ context.Context, _ primitive.ObjectID) ([]models.Alert, error) {
	return nil, nil
}

func (f *fakeAlertStore) MarkRead(_ context.Context, _ primitive.ObjectID) (*mongo.UpdateResult, error) {
	return nil, nil
}

func (f *fakeAlertStore) all() []models.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Alert(nil), f.alerts...)
}

func TestUpsertMonitoring_ConcurrentUpsertsKeepBothAlerts(t *testing.T) {
	store := newFakeMonitoringStore()
	alerts := &fakeAlertStore{}
	i := &Intake{MonitoringDB: store, AlertDB: alerts}

	patientID := primitive.NewObjectID()
	submissions := []*models.MonitoringRecord{
		{PatientID: patientID, Status: models.StatusAttention, Symptoms: "dizziness"},
		{PatientID: patientID, Status: models.StatusCritical, Symptoms: "chest pain"},
	}

	var wg sync.WaitGroup
	results := make([]*models.MonitoringRecord, len(submissions))
	for idx, rec := range submissions {
		wg.Add(1)
		go func(idx int, rec *models.MonitoringRecord) {
			defer wg.Done()
			r, err := i.UpsertMonitoring(context.Background(), rec)
			assert.NoError(t, err)
			results[idx] = r
		}(idx, rec)
	}
	wg.Wait()

	// Both submissions append their alert; the single row belongs to
	// whichever write landed last, intact down to its symptom text.
	assert.Len(t, alerts.all(), 2)
	final, err := store.FindOne(context.Background(), bson.M{"patientID": patientID})
	assert.NoError(t, err)
	switch final.Status {
	case models.StatusAttention:
		assert.Equal(t, "dizziness", final.Symptoms)
	case models.StatusCritical:
		assert.Equal(t, "chest pain", final.Symptoms)
	default:
		t.Fatalf("final status %q matches neither submission", final.Status)
	}
	assert.Equal(t, results[0].ID, results[1].ID)
}

func TestCreateMedicalRecord_AlwaysInsertsDistinctRecords(t *testing.T) {
	recordDB := mocks.NewMedicalRecordDatabase(t)
	recordDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil).Twice()

	i := &Intake{RecordDB: recordDB}
	params := RecordParams{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusStable,
		Diagnosis: "viral fever",
		Symptoms:  []string{"fever", "headache"},
	}

	first, err := i.CreateMedicalRecord(context.Background(), params)
	assert.NoError(t, err)
	second, err := i.CreateMedicalRecord(context.Background(), params)
	assert.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateMedicalRecord_StatusDerivedTreatment(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		treatment string
		want      string
	}{
		{"critical default", models.StatusCritical, "", TreatmentCritical},
		{"stable default", models.StatusStable, "", TreatmentObservation},
		{"attention default", models.StatusAttention, "", TreatmentObservation},
		{"explicit override", models.StatusCritical, "thrombolysis administered", "thrombolysis administered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordDB := mocks.NewMedicalRecordDatabase(t)
			recordDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(r models.MedicalRecord) bool {
				return r.Treatment == tt.want
			})).Return(nil).Once()

			i := &Intake{RecordDB: recordDB}
			record, err := i.CreateMedicalRecord(context.Background(), RecordParams{
				PatientID: primitive.NewObjectID(),
				Status:    tt.status,
				Diagnosis: "dx",
				Treatment: tt.treatment,
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.want, record.Treatment)
		})
	}
}

func TestCreateMedicalRecord_SystemActorWhenNoWorker(t *testing.T) {
	recordDB := mocks.NewMedicalRecordDatabase(t)
	recordDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(r models.MedicalRecord) bool {
		return r.RecordedBy == models.RecordedBySystem && r.HealthWorkerID == nil
	})).Return(nil).Once()

	i := &Intake{RecordDB: recordDB}
	record, err := i.CreateMedicalRecord(context.Background(), RecordParams{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusStable,
		Diagnosis: "automated triage",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RecordedBySystem, record.RecordedBy)
}

func TestCreateMedicalRecord_ArchivalFailureIsNonFatal(t *testing.T) {
	recordDB := mocks.NewMedicalRecordDatabase(t)
	recordDB.On("InsertOne", mock.Anything, mock.Anything).Return(nil).Once()

	i := &Intake{RecordDB: recordDB, Archiver: &fakeArchiver{err: errors.New("gateway timeout")}}
	record, err := i.CreateMedicalRecord(context.Background(), RecordParams{
		PatientID: primitive.NewObjectID(),
		Status:    models.StatusCritical,
		Diagnosis: "dx",
	})

	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Empty(t, record.ContentAddress)
	assert.True(t, record.NeedsArchival)
}

func TestArchiveRecord_Success(t *testing.T) {
	recordDB := mocks.NewMedicalRecordDatabase(t)
	patientDB := mocks.NewPatientDatabase(t)
	identityDB := mocks.NewIdentityDatabase(t)

	identityID := primitive.NewObjectID()
	record := models.MedicalRecord{
		ID:        primitive.NewObjectID(),
		PatientID: primitive.NewObjectID(),
		Diagnosis: "dx",
	}
	receipt := models.ArchivalReceipt{ContentAddress: "QmHash", RetrievalURL: "https://gateway/ipfs/QmHash"}

	patientDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.PatientProfile{ID: record.PatientID, IdentityID: identityID}, nil).Once()
	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Identity{ID: identityID, DisplayName: "Asha Das", PhoneNumber: "9876543210"}, nil).Once()
	recordDB.On("SetArchivalReceipt", mock.Anything, record.ID, receipt).Return(nil).Once()

	i := &Intake{
		RecordDB:   recordDB,
		PatientDB:  patientDB,
		IdentityDB: identityDB,
		Archiver:   &fakeArchiver{receipt: &receipt},
	}

	assert.NoError(t, i.ArchiveRecord(context.Background(), record))
}

func TestSendToAuthorities_UsesConfiguredContacts(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	patientDB := mocks.NewPatientDatabase(t)
	identityDB := mocks.NewIdentityDatabase(t)
	emergencyDB := mocks.NewEmergencyAlertDatabase(t)

	patientID := primitive.NewObjectID()
	identityID := primitive.NewObjectID()

	monitoringDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.MonitoringRecord{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		Status:    models.StatusCritical,
		Symptoms:  "chest pain",
		Diagnosis: "suspected MI",
	}, nil).Once()
	patientDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.PatientProfile{ID: patientID, IdentityID: identityID}, nil).Once()
	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.Identity{ID: identityID, DisplayName: "Asha Das", PhoneNumber: "9876543210"}, nil).Once()
	emergencyDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.EmergencyAlert) bool {
		return a.Status == models.EmergencyAlertSent &&
			a.HospitalPhone == "8100752679" &&
			a.AmbulancePhone == "8653015622" &&
			a.EmergencyID != ""
	})).Return(nil).Once()

	notifier := &failingNotifier{}
	i := &Intake{
		MonitoringDB:   monitoringDB,
		PatientDB:      patientDB,
		IdentityDB:     identityDB,
		EmergencyDB:    emergencyDB,
		Notifier:       notifier,
		HospitalPhone:  "8100752679",
		AmbulancePhone: "8653015622",
	}

	alert, err := i.SendToAuthorities(context.Background(), patientID)

	// Notifier failure is swallowed; the persisted alert is the outcome.
	assert.NoError(t, err)
	assert.True(t, notifier.called)
	assert.Equal(t, models.EmergencyAlertSent, alert.Status)
	assert.Equal(t, "Asha Das", alert.PatientName)
}

func TestSendToAuthorities_NoMonitoringRecord(t *testing.T) {
	monitoringDB := mocks.NewMonitoringDatabase(t)
	monitoringDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()

	i := &Intake{MonitoringDB: monitoringDB}
	alert, err := i.SendToAuthorities(context.Background(), primitive.NewObjectID())

	assert.Error(t, err)
	assert.Nil(t, alert)
}
