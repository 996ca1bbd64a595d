package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	// Emergency responder routing. These are deployment configuration,
	// never literals inside dispatch logic.
	HospitalPhone  string
	AmbulancePhone string
	ResponderEmail string

	// External collaborators
	ArchivalURL    string
	ArchivalAPIKey string
	ClassifierURL  string

	JWTSecret      string
	SendgridAPIKey string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string
}

const (
	defaultHospitalPhone  = "8100752679"
	defaultAmbulancePhone = "8653015622"
)

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),

		HospitalPhone:  getEnv("HOSPITAL_PHONE", defaultHospitalPhone),
		AmbulancePhone: getEnv("AMBULANCE_PHONE", defaultAmbulancePhone),
		ResponderEmail: os.Getenv("RESPONDER_EMAIL"),

		ArchivalURL:    os.Getenv("ARCHIVAL_URL"),
		ArchivalAPIKey: os.Getenv("ARCHIVAL_API_KEY"),
		ClassifierURL:  os.Getenv("CLASSIFIER_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{Message: message, Error: err.Error()},
	})
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
