package api

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/havenwell/Haven/internal/services"
)

// memoryStore keeps everything behind one RWMutex. It backs tests and dev
// mode; production uses the SQLite store in internal/db.
type memoryStore struct {
	mu           sync.RWMutex
	participants map[string]*services.Participant
	submissions  []*services.Submission
	templates    map[string]*services.CustomTemplate
	tenants      map[string]*services.Tenant
	usersByEmail map[string]*services.User
	audit        []services.AuditEntry
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		participants: map[string]*services.Participant{},
		submissions:  []*services.Submission{},
		templates:    map[string]*services.CustomTemplate{},
		tenants:      map[string]*services.Tenant{},
		usersByEmail: map[string]*services.User{},
		audit:        []services.AuditEntry{},
	}
}

func (s *memoryStore) AddParticipant(p *services.Participant) (*services.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.participants[p.ID]; ok {
		copy := *existing
		return &copy, nil
	}
	copy := *p
	s.participants[p.ID] = &copy
	out := copy
	return &out, nil
}

func (s *memoryStore) GetParticipant(id string) (*services.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.participants[id]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, nil
}

func (s *memoryStore) GetParticipantByEmail(email string) (*services.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.participants {
		if p.Email != "" && strings.EqualFold(p.Email, email) {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

// DeleteParticipantByID removes a participant. Soft delete clears PII and
// keeps anonymized submissions for insights; hard removes submissions too.
func (s *memoryStore) DeleteParticipantByID(id string, hard bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[id]
	if !ok {
		return false, nil
	}
	if !hard {
		p.Email = ""
		return true, nil
	}
	delete(s.participants, id)
	kept := make([]*services.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		if sub.ParticipantID != id {
			kept = append(kept, sub)
		}
	}
	s.submissions = kept
	return true, nil
}

func (s *memoryStore) AddSubmission(sub *services.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *sub
	s.submissions = append(s.submissions, &copy)
	return nil
}

func (s *memoryStore) ListSubmissionsByParticipant(pid string) ([]*services.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Submission{}
	for _, sub := range s.submissions {
		if sub.ParticipantID == pid {
			copy := *sub
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *memoryStore) ListSubmissionsByInstrument(instrument string) ([]*services.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Submission{}
	for _, sub := range s.submissions {
		if sub.Instrument == instrument {
			copy := *sub
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (s *memoryStore) InsertTemplate(t *services.CustomTemplate) (*services.CustomTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[t.ID]; ok {
		return nil, errors.New("template exists: " + t.ID)
	}
	copy := *t
	s.templates[t.ID] = &copy
	out := copy
	return &out, nil
}

func (s *memoryStore) GetTemplate(id string) (*services.CustomTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.templates[id]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, nil
}

func (s *memoryStore) UpdateTemplate(t *services.CustomTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[t.ID]; !ok {
		return errors.New("template not found: " + t.ID)
	}
	copy := *t
	s.templates[t.ID] = &copy
	return nil
}

func (s *memoryStore) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.templates, id)
	return nil
}

func (s *memoryStore) ListTemplatesByTenant(tenantID string) ([]*services.CustomTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.CustomTemplate{}
	for _, t := range s.templates {
		if t.TenantID == tenantID {
			copy := *t
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) AddTenant(t *services.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *t
	s.tenants[t.ID] = &copy
	return nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.usersByEmail[key]; ok {
		return errors.New("user exists: " + u.Email)
	}
	copy := *u
	s.usersByEmail[key] = &copy
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.usersByEmail[strings.ToLower(email)]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (s *memoryStore) AddAudit(e services.AuditEntry) {
	s.mu.Lock()
	s.audit = append(s.audit, e)
	s.mu.Unlock()
}

func (s *memoryStore) ListAudit() []services.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]services.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}
