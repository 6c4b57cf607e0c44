package entity

import "time"

// AuditEvent records one successful engagement action.
type AuditEvent struct {
	Action      string
	ActorID     string
	TargetID    string
	TargetModel string
	Metadata    map[string]any
	CreatedAt   time.Time
}
