package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chikitsa-health/chikitsa-api/config"
	"github.com/chikitsa-health/chikitsa-api/databases"
)

const attachmentMaxBytes = 10 << 20 // 10 MB

// Attachment handles Cloudinary uploads for medical record attachments
type Attachment struct {
	DB     databases.MedicalRecordDatabase
	Cloud  *cloudinary.Cloudinary
	Config config.Config
}

// UploadAttachmentHandler uploads a file (prescription scan, report photo)
// to Cloudinary and appends the resulting URL to the medical record
func (a Attachment) UploadAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	if a.Cloud == nil {
		config.ErrorStatus("attachment storage not configured", http.StatusServiceUnavailable, w, fmt.Errorf("cloudinary credentials not set"))
		return
	}

	recordID := mux.Vars(r)["record_id"]
	rID, err := primitive.ObjectIDFromHex(recordID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	if err := r.ParseMultipartForm(attachmentMaxBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("missing file in request", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	// The record must exist before anything is uploaded against it.
	if _, err := a.DB.FindOne(r.Context(), bson.M{"_id": rID}); err != nil {
		config.ErrorStatus("failed to get medical record by ID", http.StatusNotFound, w, err)
		return
	}

	uploadResp, err := a.Cloud.Upload.Upload(r.Context(), file, uploader.UploadParams{
		Folder: "medical-records",
	})
	if err != nil {
		config.ErrorStatus("failed to upload attachment", http.StatusBadGateway, w, err)
		return
	}

	if err := a.DB.AppendAttachment(r.Context(), rID, uploadResp.SecureURL); err != nil {
		config.ErrorStatus("failed to append attachment to record", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"url": uploadResp.SecureURL})
}

// GenerateSignature generates a signature for direct-to-Cloudinary uploads
// from the frontend
func (a Attachment) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(a.Config.CloudinaryAPISecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + a.Config.CloudinaryUploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
