package api

import "github.com/havenwell/Haven/internal/services"

// Store is the full persistence surface behind the HTTP API. The in-memory
// implementation backs tests and dev mode; internal/db provides the SQLite
// one. Each service consumes only its slice of this interface.
type Store interface {
	AddParticipant(p *services.Participant) (*services.Participant, error)
	GetParticipant(id string) (*services.Participant, error)
	GetParticipantByEmail(email string) (*services.Participant, error)
	DeleteParticipantByID(id string, hard bool) (bool, error)

	AddSubmission(sub *services.Submission) error
	ListSubmissionsByParticipant(pid string) ([]*services.Submission, error)
	ListSubmissionsByInstrument(instrument string) ([]*services.Submission, error)

	InsertTemplate(t *services.CustomTemplate) (*services.CustomTemplate, error)
	GetTemplate(id string) (*services.CustomTemplate, error)
	UpdateTemplate(t *services.CustomTemplate) error
	DeleteTemplate(id string) error
	ListTemplatesByTenant(tenantID string) ([]*services.CustomTemplate, error)

	AddTenant(t *services.Tenant) error
	AddUser(u *services.User) error
	FindUserByEmail(email string) (*services.User, error)

	AddAudit(e services.AuditEntry)
	ListAudit() []services.AuditEntry
}

var _ Store = (*memoryStore)(nil)

// A Store must satisfy every service-side persistence interface.
var (
	_ services.AssessmentStore  = Store(nil)
	_ services.TemplateStore    = Store(nil)
	_ services.InsightStore     = Store(nil)
	_ services.ExportStore      = Store(nil)
	_ services.ParticipantStore = Store(nil)
	_ services.AuthStore        = Store(nil)
)
