package services

import (
	"errors"
	"testing"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

type templateStubStore struct {
	templates map[string]*CustomTemplate
	audit     []AuditEntry
}

func newTemplateStubStore() *templateStubStore {
	return &templateStubStore{templates: map[string]*CustomTemplate{}}
}

func (s *templateStubStore) InsertTemplate(t *CustomTemplate) (*CustomTemplate, error) {
	if _, ok := s.templates[t.ID]; ok {
		return nil, errors.New("duplicate template")
	}
	copy := *t
	s.templates[t.ID] = &copy
	return &copy, nil
}

func (s *templateStubStore) GetTemplate(id string) (*CustomTemplate, error) {
	if t, ok := s.templates[id]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, nil
}

func (s *templateStubStore) UpdateTemplate(t *CustomTemplate) error {
	copy := *t
	s.templates[t.ID] = &copy
	return nil
}

func (s *templateStubStore) DeleteTemplate(id string) error {
	delete(s.templates, id)
	return nil
}

func (s *templateStubStore) ListTemplatesByTenant(tenantID string) ([]*CustomTemplate, error) {
	out := []*CustomTemplate{}
	for _, t := range s.templates {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *templateStubStore) AddAudit(e AuditEntry) { s.audit = append(s.audit, e) }

func sampleDefinition(id string) *scoring.Template {
	return &scoring.Template{
		ID:   id,
		Name: "Sleep check",
		Questions: []scoring.Question{
			{ID: "sleep_q1", Text: "Trouble falling asleep", Type: scoring.ResponseScale, Options: []scoring.Option{
				{ID: "sleep_q1_opt0", Value: 0, Text: "Never"},
				{ID: "sleep_q1_opt1", Value: 1, Text: "Sometimes"},
				{ID: "sleep_q1_opt2", Value: 2, Text: "Often"},
			}},
			{ID: "sleep_q2", Text: "Waking during the night", Type: scoring.ResponseScale, Options: []scoring.Option{
				{ID: "sleep_q2_opt0", Value: 0, Text: "Never"},
				{ID: "sleep_q2_opt1", Value: 1, Text: "Sometimes"},
				{ID: "sleep_q2_opt2", Value: 2, Text: "Often"},
			}},
		},
		Bands:    []scoring.Band{{Max: 1, Label: "Fine."}},
		Fallback: "Poor sleep.",
	}
}

func newTestTemplateService(store *templateStubStore) *TemplateService {
	svc := NewTemplateService(store, scoring.NewRegistry())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	svc.idGen = func(n int) string { return "abcdefgh"[:n] }
	return svc
}

func TestTemplateCreateFetchDelete(t *testing.T) {
	store := newTemplateStubStore()
	svc := newTestTemplateService(store)

	ct, err := svc.Create("t1", sampleDefinition(""))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if ct.ID != "tpl_abcdefgh" {
		t.Fatalf("unexpected id %q", ct.ID)
	}

	got, err := svc.Fetch(ct.ID)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got.Name != "Sleep check" {
		t.Fatalf("fetched wrong template: %+v", got)
	}

	// Built-ins resolve through the registry, aliases too.
	if _, err := svc.Fetch("depression"); err != nil {
		t.Fatalf("Fetch(depression) error: %v", err)
	}

	if err := svc.Delete("t1", ct.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Fetch(ct.ID); err == nil {
		t.Fatalf("expected not found after delete")
	}
}

func TestTemplateCreateRejectsBuiltinShadow(t *testing.T) {
	svc := newTestTemplateService(newTemplateStubStore())

	_, err := svc.Create("t1", sampleDefinition("phq9"))
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestTemplateCreateValidates(t *testing.T) {
	svc := newTestTemplateService(newTemplateStubStore())

	def := sampleDefinition("tpl_bad")
	def.Fallback = ""
	_, err := svc.Create("t1", def)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid, got %v", err)
	}

	if _, err := svc.Create("", sampleDefinition("")); err == nil {
		t.Fatalf("expected error without tenant")
	}
	if _, err := svc.Create("t1", nil); err == nil {
		t.Fatalf("expected error for nil definition")
	}
}

func TestTemplateUpdateOwnership(t *testing.T) {
	store := newTemplateStubStore()
	svc := newTestTemplateService(store)

	ct, err := svc.Create("t1", sampleDefinition(""))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	def := sampleDefinition(ct.ID)
	def.Name = "Sleep check v2"
	updated, err := svc.Update("t1", ct.ID, def)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Definition.Name != "Sleep check v2" {
		t.Fatalf("update not applied: %+v", updated.Definition)
	}

	if _, err := svc.Update("t2", ct.ID, def); err == nil {
		t.Fatalf("expected forbidden for foreign tenant")
	}
	if err := svc.Delete("t2", ct.ID); err == nil {
		t.Fatalf("expected forbidden delete for foreign tenant")
	}
}

func TestTemplateCatalog(t *testing.T) {
	store := newTemplateStubStore()
	svc := newTestTemplateService(store)

	if _, err := svc.Create("t1", sampleDefinition("")); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	catalog, err := svc.Catalog("t1")
	if err != nil {
		t.Fatalf("Catalog returned error: %v", err)
	}
	builtins := len(scoring.NewRegistry().Keys())
	if len(catalog) != builtins+1 {
		t.Fatalf("catalog size = %d, want %d", len(catalog), builtins+1)
	}
	var custom *TemplateSummary
	for i := range catalog {
		if catalog[i].Custom {
			custom = &catalog[i]
		}
	}
	if custom == nil || custom.Items != 2 {
		t.Fatalf("expected custom entry with 2 items, got %+v", custom)
	}
}
