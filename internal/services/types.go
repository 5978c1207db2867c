package services

import (
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

// Participant is the person answering assessments. PII is kept minimal;
// email is optional and only stored when the participant provides it.
type Participant struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Submission records one scored assessment: the raw answers as submitted
// plus the engine's result, both kept verbatim for history and insights.
type Submission struct {
	ID            string               `json:"id"`
	ParticipantID string               `json:"participant_id"`
	Instrument    string               `json:"instrument"` // canonical key
	Responses     scoring.ResponseMap  `json:"responses"`
	Result        *scoring.ScoreResult `json:"result"`
	SubmittedAt   time.Time            `json:"submitted_at"`
}

// CustomTemplate is an admin-authored assessment definition served to the
// client generic scorer alongside the built-in catalog.
type CustomTemplate struct {
	ID         string            `json:"id"`
	TenantID   string            `json:"tenant_id,omitempty"`
	Definition *scoring.Template `json:"definition"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Tenant is one organization using the admin surface.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an admin/clinician account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditEntry struct {
	Time   time.Time
	Actor  string
	Action string
	Target string
	Note   string
}
