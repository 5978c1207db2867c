package services

import "time"

// ParticipantStore abstracts the reads and deletes behind participant data
// requests.
type ParticipantStore interface {
	GetParticipant(id string) (*Participant, error)
	GetParticipantByEmail(email string) (*Participant, error)
	ListSubmissionsByParticipant(id string) ([]*Submission, error)
	DeleteParticipantByID(id string, hard bool) (bool, error)
	AddAudit(e AuditEntry)
}

// ParticipantDataService handles data-subject requests from the admin
// surface: export everything stored about a participant, or delete it.
type ParticipantDataService struct {
	store ParticipantStore
}

func NewParticipantDataService(store ParticipantStore) *ParticipantDataService {
	return &ParticipantDataService{store: store}
}

type ParticipantExport struct {
	Participant map[string]any `json:"participant"`
	Submissions []*Submission  `json:"submissions"`
}

// ExportByEmail collects a participant's stored record and submissions.
func (s *ParticipantDataService) ExportByEmail(email, actor string) (*ParticipantExport, error) {
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	p, err := s.store.GetParticipantByEmail(email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("not found")
	}
	subs, err := s.store.ListSubmissionsByParticipant(p.ID)
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: actor, Action: "export_participant", Target: email})
	return &ParticipantExport{Participant: map[string]any{"id": p.ID, "email": p.Email}, Submissions: subs}, nil
}

// DeleteByEmail removes a participant. A soft delete clears PII but keeps
// anonymized submissions for insights; hard removes everything.
func (s *ParticipantDataService) DeleteByEmail(email string, hard bool, actor string) error {
	if email == "" {
		return NewInvalidError("email required")
	}
	p, err := s.store.GetParticipantByEmail(email)
	if err != nil {
		return err
	}
	if p == nil {
		return NewNotFoundError("not found")
	}
	ok, err := s.store.DeleteParticipantByID(p.ID, hard)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("not found")
	}
	s.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: actor, Action: "delete_participant", Target: email, Note: map[bool]string{true: "hard", false: "soft"}[hard]})
	return nil
}
