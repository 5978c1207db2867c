package scoring

import (
	"fmt"
	"sort"
)

// Registry resolves instrument keys (canonical ids plus legacy aliases) to
// their declarative templates. It is built once and read-only afterwards, so
// it is safe to share across concurrent scoring calls without locking.
type Registry struct {
	templates map[string]*Template
	aliases   map[string]string
}

// NewRegistry returns a registry preloaded with the built-in instrument
// catalog and the legacy alias table.
func NewRegistry() *Registry {
	r := &Registry{templates: map[string]*Template{}, aliases: map[string]string{}}
	for _, t := range builtinTemplates() {
		r.mustRegister(t)
	}
	for alias, canonical := range builtinAliases() {
		r.mustAlias(alias, canonical)
	}
	return r
}

// Register validates and adds a template under its canonical id.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return &TemplateError{TemplateID: "?", Reason: "empty template id"}
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := r.templates[t.ID]; exists {
		return &TemplateError{TemplateID: t.ID, Reason: "duplicate template id"}
	}
	r.templates[t.ID] = t
	return nil
}

// Alias maps a legacy key onto a canonical id. Multiple aliases may resolve
// to the same template; scoring through an alias is identical to scoring
// through the canonical key.
func (r *Registry) Alias(alias, canonical string) error {
	if _, ok := r.templates[canonical]; !ok {
		return fmt.Errorf("alias %s: %w: %s", alias, ErrUnknownInstrument, canonical)
	}
	if _, taken := r.templates[alias]; taken {
		return &TemplateError{TemplateID: alias, Reason: "alias shadows a template id"}
	}
	r.aliases[alias] = canonical
	return nil
}

func (r *Registry) mustRegister(t *Template) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

func (r *Registry) mustAlias(alias, canonical string) {
	if err := r.Alias(alias, canonical); err != nil {
		panic(err)
	}
}

// Resolve returns the template for key, following aliases. Unknown keys are
// a hard error for the caller.
func (r *Registry) Resolve(key string) (*Template, error) {
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	if t, ok := r.templates[key]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownInstrument, key)
}

// Score resolves key and runs the strict single-instrument path.
func (r *Registry) Score(key string, responses ResponseMap) (*ScoreResult, error) {
	t, err := r.Resolve(key)
	if err != nil {
		return nil, err
	}
	return t.Score(responses)
}

// Keys lists the canonical instrument ids in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
