package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

// BatteryRequest carries a combined-assessment submission: several
// instruments answered in one sitting, merged into one response map.
type BatteryRequest struct {
	Instruments      []string // empty means the basic overall battery
	ParticipantID    string
	ParticipantEmail string
	Responses        scoring.ResponseMap
}

type BatteryResult struct {
	ParticipantID string
	Results       map[string]*scoring.ScoreResult
}

// BatteryService hosts the combined-assessment flow. Unlike the strict
// single-instrument path, the battery tolerates partial completion: an
// unanswered item scores 0 rather than rejecting the sitting.
type BatteryService struct {
	store    AssessmentStore
	registry *scoring.Registry
	now      func() time.Time
	idGen    func() string
}

func NewBatteryService(store AssessmentStore, registry *scoring.Registry) *BatteryService {
	return &BatteryService{
		store:    store,
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    func() string { return shortID(12) },
	}
}

// Submit scores every requested instrument leniently and records one
// submission per instrument under the same participant.
func (s *BatteryService) Submit(req BatteryRequest) (*BatteryResult, error) {
	results, err := s.registry.ScoreBattery(req.Instruments, req.Responses)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownInstrument) {
			return nil, NewNotFoundError(err.Error())
		}
		return nil, err
	}

	participant := &Participant{ID: req.ParticipantID, Email: req.ParticipantEmail}
	if participant.ID == "" {
		participant.ID = s.idGen()
	}
	participant.CreatedAt = s.now()
	if stored, err := s.store.AddParticipant(participant); err != nil {
		return nil, err
	} else if stored != nil {
		participant = stored
	}

	submittedAt := s.now()
	for key, result := range results {
		tpl, err := s.registry.Resolve(key)
		if err != nil {
			return nil, err
		}
		// Keep only this instrument's slice of the merged map.
		responses := scoring.ResponseMap{}
		for _, q := range tpl.Questions {
			if v, ok := req.Responses[q.ID]; ok {
				responses[q.ID] = v
			}
		}
		sub := &Submission{
			ID:            s.idGen(),
			ParticipantID: participant.ID,
			Instrument:    tpl.ID,
			Responses:     responses,
			Result:        result,
			SubmittedAt:   submittedAt,
		}
		if err := s.store.AddSubmission(sub); err != nil {
			return nil, err
		}
	}
	s.store.AddAudit(AuditEntry{Time: submittedAt, Actor: participant.ID, Action: "score_battery", Target: joinKeys(results)})
	return &BatteryResult{ParticipantID: participant.ID, Results: results}, nil
}

func joinKeys(results map[string]*scoring.ScoreResult) string {
	keys := make([]string, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
