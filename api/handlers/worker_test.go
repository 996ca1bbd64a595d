package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/chikitsa-health/chikitsa-api/api/handlers"
	"github.com/chikitsa-health/chikitsa-api/config"
	mocksdb "github.com/chikitsa-health/chikitsa-api/databases/mocks"
	"github.com/chikitsa-health/chikitsa-api/models"
)

func TestWorker_WorkerLoginHandler(t *testing.T) {
	identityDB := mocksdb.NewIdentityDatabase(t)
	workerDB := mocksdb.NewHealthWorkerDatabase(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	identity := &models.Identity{
		ID:           primitive.NewObjectID(),
		DisplayName:  "Dr. Sen",
		EmailAddress: "dr.sen@chikitsa.health",
		Role:         models.RoleHealthWorker,
		Password:     string(hash),
	}
	profile := &models.HealthWorkerProfile{ID: primitive.NewObjectID(), IdentityID: identity.ID, LicenseNumber: "WB-4471"}

	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(identity, nil).Once()
	workerDB.On("FindOne", mock.Anything, mock.Anything).Return(profile, nil).Once()

	h := handlers.Worker{IDB: identityDB, WDB: workerDB, Config: config.Config{JWTSecret: "test-secret"}}

	body, _ := json.Marshal(map[string]string{"email": "dr.sen@chikitsa.health", "password": "s3cret-pass"})
	req, err := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.WorkerLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		Token  string `json:"token"`
		Worker struct {
			Email         string `json:"email"`
			LicenseNumber string `json:"licenseNumber"`
		} `json:"worker"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Token)
	assert.Equal(t, "dr.sen@chikitsa.health", got.Worker.Email)
	assert.Equal(t, "WB-4471", got.Worker.LicenseNumber)
}

func TestWorker_WorkerLoginHandler_WrongPassword(t *testing.T) {
	identityDB := mocksdb.NewIdentityDatabase(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	identity := &models.Identity{
		ID:           primitive.NewObjectID(),
		EmailAddress: "dr.sen@chikitsa.health",
		Role:         models.RoleHealthWorker,
		Password:     string(hash),
	}
	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(identity, nil).Once()

	h := handlers.Worker{IDB: identityDB, WDB: mocksdb.NewHealthWorkerDatabase(t), Config: config.Config{JWTSecret: "test-secret"}}

	body, _ := json.Marshal(map[string]string{"email": "dr.sen@chikitsa.health", "password": "wrong"})
	req, err := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.WorkerLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWorker_WorkerLoginHandler_SyntheticActorCannotLogIn(t *testing.T) {
	identityDB := mocksdb.NewIdentityDatabase(t)

	// Fallback actors are created without a password hash; bcrypt always
	// rejects an empty hash.
	identity := &models.Identity{
		ID:           primitive.NewObjectID(),
		DisplayName:  "Emergency Health Worker",
		EmailAddress: "9000012345@phone.chikitsa.local",
		Role:         models.RoleHealthWorker,
	}
	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(identity, nil).Once()

	h := handlers.Worker{IDB: identityDB, WDB: mocksdb.NewHealthWorkerDatabase(t), Config: config.Config{JWTSecret: "test-secret"}}

	body, _ := json.Marshal(map[string]string{"email": "9000012345@phone.chikitsa.local", "password": "anything"})
	req, err := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.WorkerLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWorker_WorkerLoginHandler_UnknownEmail(t *testing.T) {
	identityDB := mocksdb.NewIdentityDatabase(t)
	identityDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()

	h := handlers.Worker{IDB: identityDB, WDB: mocksdb.NewHealthWorkerDatabase(t), Config: config.Config{JWTSecret: "test-secret"}}

	body, _ := json.Marshal(map[string]string{"email": "nobody@chikitsa.health", "password": "x"})
	req, err := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.WorkerLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWorker_WorkerLoginHandler_MissingFields(t *testing.T) {
	h := handlers.Worker{IDB: mocksdb.NewIdentityDatabase(t), WDB: mocksdb.NewHealthWorkerDatabase(t)}

	body, _ := json.Marshal(map[string]string{"email": "dr.sen@chikitsa.health"})
	req, err := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.WorkerLoginHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
