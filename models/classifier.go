package models

// ClassifyRequest is the payload sent to the ML symptom classifier service
type ClassifyRequest struct {
	Symptoms string `json:"symptoms"`
	Age      int    `json:"age,omitempty"`
	Language string `json:"language,omitempty"`
}

// ClassifyResponse is the opaque classifier verdict. The classifier is an
// untrusted external service with no SLA; callers bound it with a timeout.
type ClassifyResponse struct {
	Label           string  `json:"label"`
	Confidence      float64 `json:"confidence"`
	Severity        string  `json:"severity"`
	SuggestedStatus string  `json:"suggestedStatus,omitempty"`
}
