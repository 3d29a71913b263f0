package dto

import (
	"encoding/json"
	"time"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64           `json:"id"`
	ActorEmail string          `json:"actor_email"`
	Action     string          `json:"action"`
	Metadata   json.RawMessage `json:"metadata"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
