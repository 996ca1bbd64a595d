package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/api"
	"github.com/chikitsa-health/chikitsa-api/api/scheduler"
	"github.com/chikitsa-health/chikitsa-api/archival"
	"github.com/chikitsa-health/chikitsa-api/classifier"
	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
	"github.com/chikitsa-health/chikitsa-api/notify"
	"github.com/chikitsa-health/chikitsa-api/pipeline"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewIdentityDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	identityDB := databases.NewIdentityDatabase(a.dbHelper)
	patientDB := databases.NewPatientDatabase(a.dbHelper)
	workerDB := databases.NewHealthWorkerDatabase(a.dbHelper)
	monitoringDB := databases.NewMonitoringDatabase(a.dbHelper)
	alertDB := databases.NewAlertDatabase(a.dbHelper)
	recordDB := databases.NewMedicalRecordDatabase(a.dbHelper)
	emergencyDB := databases.NewEmergencyAlertDatabase(a.dbHelper)
	lockDB := databases.NewSchedulerLockDatabase(a.dbHelper)

	hub := NewAlertHub()

	var archiver pipeline.Archiver
	if a.Config.ArchivalURL != "" {
		archiver = archival.NewClient(a.Config.ArchivalURL, a.Config.ArchivalAPIKey)
	} else {
		zap.S().Warn("no archival URL configured, records will not be archived")
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if a.Config.SendgridAPIKey != "" && a.Config.ResponderEmail != "" {
		notifier = notify.EmailNotifier{
			APIKey:    a.Config.SendgridAPIKey,
			FromEmail: "alerts@chikitsa.health",
			ToEmail:   a.Config.ResponderEmail,
		}
	}

	intake := &pipeline.Intake{
		IdentityDB:     identityDB,
		PatientDB:      patientDB,
		WorkerDB:       workerDB,
		MonitoringDB:   monitoringDB,
		AlertDB:        alertDB,
		RecordDB:       recordDB,
		EmergencyDB:    emergencyDB,
		Archiver:       archiver,
		Notifier:       notifier,
		Feed:           hub,
		HospitalPhone:  a.Config.HospitalPhone,
		AmbulancePhone: a.Config.AmbulancePhone,
	}
	a.Scheduler = scheduler.NewScheduler(recordDB, lockDB, intake)

	mon := Monitoring{Intake: intake, DB: monitoringDB, ADB: alertDB}
	rec := Record{Intake: intake, DB: recordDB}
	em := Emergency{Intake: intake, DB: emergencyDB}
	pat := Patient{IDB: identityDB, PDB: patientDB}
	worker := Worker{IDB: identityDB, WDB: workerDB, Config: a.Config}
	att := Attachment{DB: recordDB, Cloud: a.newCloudinary(), Config: a.Config}

	var tri Triage
	if a.Config.ClassifierURL != "" {
		tri = Triage{Classifier: classifier.NewClient(a.Config.ClassifierURL)}
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.HandleFunc("/metrics", api.MetricsHandler).Methods("GET")
	r.HandleFunc("/ws/alerts", hub.HandleAlertsWebSocket)
	r.Use(api.MetricsMiddleware)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/login", http.HandlerFunc(worker.WorkerLoginHandler)).Methods("POST")

	apiCreate.Handle("/monitoring", api.Middleware(http.HandlerFunc(mon.IntakeHandler))).Methods("POST")
	apiCreate.Handle("/monitoring", api.Middleware(http.HandlerFunc(mon.MonitoringHandler))).Methods("GET")
	apiCreate.Handle("/monitoring/patient/{patient_id}", api.Middleware(http.HandlerFunc(mon.MonitoringByPatientIDHandler))).Methods("GET")
	apiCreate.Handle("/monitoring/{monitoring_id}/alerts", api.Middleware(http.HandlerFunc(mon.AlertsByMonitoringIDHandler))).Methods("GET")
	apiCreate.Handle("/alerts/{alert_id}/read", api.Middleware(http.HandlerFunc(mon.MarkAlertReadHandler))).Methods("PUT")

	apiCreate.Handle("/records", api.Middleware(http.HandlerFunc(rec.CreateRecordHandler))).Methods("POST")
	apiCreate.Handle("/records/patient/{patient_id}", api.Middleware(http.HandlerFunc(rec.RecordsByPatientIDHandler))).Methods("GET")
	apiCreate.Handle("/records/{record_id}/attachments", api.Middleware(http.HandlerFunc(att.UploadAttachmentHandler))).Methods("POST")
	apiCreate.Handle("/attachments/generate-signature", api.Middleware(http.HandlerFunc(att.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/emergency/{patient_id}/dispatch", api.Middleware(http.HandlerFunc(em.DispatchHandler))).Methods("POST")
	apiCreate.Handle("/emergency", api.Middleware(http.HandlerFunc(em.EmergencyAlertsHandler))).Methods("GET")

	apiCreate.Handle("/patient/{phone}", api.Middleware(http.HandlerFunc(pat.PatientByPhoneHandler))).Methods("GET")

	apiCreate.Handle("/triage", api.Middleware(http.HandlerFunc(tri.TriageHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("chikitsa-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	// retry failed archival pushes in the background
	a.Scheduler.Start()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) newCloudinary() *cloudinary.Cloudinary {
	if a.Config.CloudinaryCloudName == "" || a.Config.CloudinaryAPIKey == "" || a.Config.CloudinaryAPISecret == "" {
		zap.S().Warn("cloudinary credentials not set, attachment uploads disabled")
		return nil
	}
	cld, err := cloudinary.NewFromParams(a.Config.CloudinaryCloudName, a.Config.CloudinaryAPIKey, a.Config.CloudinaryAPISecret)
	if err != nil {
		zap.S().Errorw("failed to initialize cloudinary", "error", err)
		return nil
	}
	return cld
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
