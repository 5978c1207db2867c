package services

import (
	"errors"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

// TemplateStore abstracts persistence for admin-authored templates.
type TemplateStore interface {
	InsertTemplate(t *CustomTemplate) (*CustomTemplate, error)
	GetTemplate(id string) (*CustomTemplate, error)
	UpdateTemplate(t *CustomTemplate) error
	DeleteTemplate(id string) error
	ListTemplatesByTenant(tenantID string) ([]*CustomTemplate, error)
	AddAudit(e AuditEntry)
}

// TemplateSummary is the catalog listing served to clients; full question
// lists come from Fetch.
type TemplateSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Items   int    `json:"items"`
	Domains int    `json:"domains"`
	Custom  bool   `json:"custom,omitempty"`
}

// TemplateService manages custom assessment templates and serves the
// combined catalog (built-ins plus a tenant's own definitions) to the
// client-side generic scorer.
type TemplateService struct {
	store    TemplateStore
	registry *scoring.Registry
	now      func() time.Time
	idGen    func(n int) string
}

func NewTemplateService(store TemplateStore, registry *scoring.Registry) *TemplateService {
	return &TemplateService{
		store:    store,
		registry: registry,
		now:      func() time.Time { return time.Now().UTC() },
		idGen:    shortID,
	}
}

// Create validates and stores a new custom template for the tenant.
func (s *TemplateService) Create(tenantID string, def *scoring.Template) (*CustomTemplate, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	if def == nil {
		return nil, NewInvalidError("template definition required")
	}
	if def.ID == "" {
		def.ID = "tpl_" + s.idGen(8)
	}
	if _, err := s.registry.Resolve(def.ID); err == nil {
		return nil, NewConflictError("template id shadows a built-in instrument")
	}
	if err := def.Validate(); err != nil {
		return nil, NewInvalidError(err.Error())
	}
	now := s.now()
	ct := &CustomTemplate{ID: def.ID, TenantID: tenantID, Definition: def, CreatedAt: now, UpdatedAt: now}
	stored, err := s.store.InsertTemplate(ct)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		ct = stored
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: tenantID, Action: "create_template", Target: ct.ID})
	return ct, nil
}

// Update replaces a custom template's definition.
func (s *TemplateService) Update(tenantID, id string, def *scoring.Template) (*CustomTemplate, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	existing, err := s.store.GetTemplate(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NewNotFoundError("template not found")
	}
	if existing.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	if def == nil {
		return nil, NewInvalidError("template definition required")
	}
	def.ID = id
	if err := def.Validate(); err != nil {
		return nil, NewInvalidError(err.Error())
	}
	existing.Definition = def
	existing.UpdatedAt = s.now()
	if err := s.store.UpdateTemplate(existing); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: existing.UpdatedAt, Actor: tenantID, Action: "update_template", Target: id})
	return existing, nil
}

// Delete removes a custom template.
func (s *TemplateService) Delete(tenantID, id string) error {
	if tenantID == "" {
		return NewForbiddenError("unauthorized")
	}
	existing, err := s.store.GetTemplate(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return NewNotFoundError("template not found")
	}
	if existing.TenantID != tenantID {
		return NewForbiddenError("forbidden")
	}
	if err := s.store.DeleteTemplate(id); err != nil {
		return err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: tenantID, Action: "delete_template", Target: id})
	return nil
}

// Fetch returns the full declarative definition for key: built-in
// instruments first (including legacy aliases), then custom templates.
// This is what the client-side mirror scores from.
func (s *TemplateService) Fetch(key string) (*scoring.Template, error) {
	if key == "" {
		return nil, NewInvalidError("template id required")
	}
	tpl, err := s.registry.Resolve(key)
	if err == nil {
		return tpl, nil
	}
	if !errors.Is(err, scoring.ErrUnknownInstrument) {
		return nil, err
	}
	ct, err := s.store.GetTemplate(key)
	if err != nil {
		return nil, err
	}
	if ct == nil {
		return nil, NewNotFoundError("unknown template: " + key)
	}
	return ct.Definition, nil
}

// Catalog lists built-in instruments plus the tenant's custom templates.
func (s *TemplateService) Catalog(tenantID string) ([]TemplateSummary, error) {
	out := []TemplateSummary{}
	for _, key := range s.registry.Keys() {
		tpl, err := s.registry.Resolve(key)
		if err != nil {
			return nil, err
		}
		out = append(out, TemplateSummary{ID: tpl.ID, Name: tpl.Name, Items: len(tpl.Questions), Domains: len(tpl.Domains)})
	}
	if tenantID != "" {
		customs, err := s.store.ListTemplatesByTenant(tenantID)
		if err != nil {
			return nil, err
		}
		for _, ct := range customs {
			out = append(out, TemplateSummary{
				ID:      ct.ID,
				Name:    ct.Definition.Name,
				Items:   len(ct.Definition.Questions),
				Domains: len(ct.Definition.Domains),
				Custom:  true,
			})
		}
	}
	return out, nil
}
