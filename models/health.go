package models

// HealthCheckResponse returns the health check response payload
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
