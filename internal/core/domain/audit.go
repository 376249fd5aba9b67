package domain

import "time"

// Audit actions recorded by the auth subsystem.
const (
	AuditLogin      = "login"
	AuditRegister   = "register"
	AuditDeactivate = "deactivate"
)

// AuditEntry is one persisted record of an authentication event.
type AuditEntry struct {
	ID      string    `json:"id" bson:"_id,omitempty"`
	Action  string    `json:"action" bson:"action"`
	Email   string    `json:"email" bson:"email"`
	UserID  int64     `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Success bool      `json:"success" bson:"success"`
	Detail  string    `json:"detail,omitempty" bson:"detail,omitempty"`
	At      time.Time `json:"at" bson:"at"`
}
