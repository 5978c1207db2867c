package services

import (
	"errors"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

// AssessmentStore abstracts persistence operations required by AssessmentService.
type AssessmentStore interface {
	GetParticipant(id string) (*Participant, error)
	AddParticipant(p *Participant) (*Participant, error)
	AddSubmission(sub *Submission) error
	ListSubmissionsByParticipant(pid string) ([]*Submission, error)
	AddAudit(e AuditEntry)
}

// SubmitRequest transports the sanitized handler input into the service layer.
type SubmitRequest struct {
	Instrument       string
	ParticipantID    string
	ParticipantEmail string
	Responses        scoring.ResponseMap
}

// SubmitResult collects the data needed to emit the HTTP response.
type SubmitResult struct {
	SubmissionID  string
	ParticipantID string
	Result        *scoring.ScoreResult
}

// AssessmentService hosts the strict single-instrument scoring workflow: it
// resolves the instrument, scores, and persists the submission. Every item
// must carry a usable answer; partial submissions are rejected, never
// silently filled in.
type AssessmentService struct {
	store    AssessmentStore
	registry *scoring.Registry
	now      func() time.Time
	idGen    func() string
}

// NewAssessmentService constructs a service bound to the provided persistence
// interface and instrument registry.
func NewAssessmentService(store AssessmentStore, registry *scoring.Registry) *AssessmentService {
	return &AssessmentService{
		store:    store,
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    func() string { return shortID(12) },
	}
}

// Submit scores one instrument and records the submission.
func (s *AssessmentService) Submit(req SubmitRequest) (*SubmitResult, error) {
	if req.Instrument == "" {
		return nil, NewInvalidError("assessment type required")
	}
	tpl, err := s.registry.Resolve(req.Instrument)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownInstrument) {
			return nil, NewNotFoundError("unknown assessment type: " + req.Instrument)
		}
		return nil, err
	}
	result, err := tpl.Score(req.Responses)
	if err != nil {
		var ire *scoring.InvalidResponseError
		if errors.As(err, &ire) {
			return nil, NewInvalidError(ire.Error())
		}
		return nil, err
	}

	participant, err := s.resolveParticipant(req.ParticipantID, req.ParticipantEmail)
	if err != nil {
		return nil, err
	}

	sub := &Submission{
		ID:            s.idGen(),
		ParticipantID: participant.ID,
		Instrument:    tpl.ID,
		Responses:     req.Responses,
		Result:        result,
		SubmittedAt:   s.now(),
	}
	if err := s.store.AddSubmission(sub); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: participant.ID, Action: "score_assessment", Target: tpl.ID})
	return &SubmitResult{SubmissionID: sub.ID, ParticipantID: participant.ID, Result: result}, nil
}

// History lists a participant's stored submissions, newest last.
func (s *AssessmentService) History(participantID string) ([]*Submission, error) {
	if participantID == "" {
		return nil, NewInvalidError("participant_id required")
	}
	return s.store.ListSubmissionsByParticipant(participantID)
}

func (s *AssessmentService) resolveParticipant(id, email string) (*Participant, error) {
	if id != "" {
		p, err := s.store.GetParticipant(id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	p := &Participant{ID: s.idGen(), Email: email, CreatedAt: s.now()}
	stored, err := s.store.AddParticipant(p)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		p = stored
	}
	return p, nil
}
