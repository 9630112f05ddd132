package dto

import "time"

// HealthResponse reports service and store health.
// DB is "up" or "down"; a degraded probe downgrades Status to "error"
// instead of failing the endpoint.
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	DB        string    `json:"db" example:"up"`
	Timestamp time.Time `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}
