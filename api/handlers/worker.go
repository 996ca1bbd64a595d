package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/models"
)

type workerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type workerLoginResponse struct {
	Token  string `json:"token"`
	Worker struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		DisplayName   string `json:"displayName"`
		LicenseNumber string `json:"licenseNumber"`
	} `json:"worker"`
}

// Worker represents the health worker handler
type Worker struct {
	IDB    databases.IdentityDatabase
	WDB    databases.HealthWorkerDatabase
	Config config.Config
}

// WorkerLoginHandler handles health worker login via email/password and
// returns a JWT. Synthetic fallback actors have no password and can never
// log in here.
func (h Worker) WorkerLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req workerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	identity, err := h.IDB.FindOne(r.Context(), bson.M{"emailAddress": email, "role": models.RoleHealthWorker})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	profile, err := h.WDB.FindOne(r.Context(), bson.M{"identityID": identity.ID})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	jwtSecret := []byte(h.Config.JWTSecret)
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   identity.ID.Hex(),
		"email": identity.EmailAddress,
		"scope": "health-worker",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	var resp workerLoginResponse
	resp.Token = signed
	resp.Worker.ID = identity.ID.Hex()
	resp.Worker.Email = identity.EmailAddress
	resp.Worker.DisplayName = identity.DisplayName
	resp.Worker.LicenseNumber = profile.LicenseNumber

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
