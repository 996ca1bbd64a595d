package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
)

// Patient exported for testing purposes
type Patient struct {
	IDB databases.IdentityDatabase
	PDB databases.PatientDatabase
}

type patientResponse struct {
	Identity *models.Identity       `json:"identity"`
	Profile  *models.PatientProfile `json:"profile"`
}

// PatientByPhoneHandler resolves a patient by phone number. Lookup only;
// unknown phone numbers return 404, creation happens through intake.
func (p Patient) PatientByPhoneHandler(w http.ResponseWriter, r *http.Request) {
	phone := mux.Vars(r)["phone"]

	zap.S().Debugf("phone: %v", phone)

	identity, err := p.IDB.FindOne(r.Context(), bson.M{"phoneNumber": phone, "role": models.RolePatient})
	if err != nil {
		config.ErrorStatus("failed to get patient by phone", http.StatusNotFound, w, err)
		return
	}

	profile, err := p.PDB.FindOne(r.Context(), bson.M{"identityID": identity.ID})
	if err != nil {
		config.ErrorStatus("failed to get patient profile", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(patientResponse{Identity: identity, Profile: profile})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
