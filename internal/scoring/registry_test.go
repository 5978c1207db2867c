package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func TestCatalogValidates(t *testing.T) {
	for _, tpl := range builtinTemplates() {
		if err := tpl.Validate(); err != nil {
			t.Fatalf("builtin template %s invalid: %v", tpl.ID, err)
		}
	}
}

func TestCatalogBoundsMatchOptions(t *testing.T) {
	// Declared bounds must equal the sum of per-question option bounds, the
	// same derivation used when a template omits them.
	for _, tpl := range builtinTemplates() {
		var lo, hi float64
		for _, q := range tpl.Questions {
			qlo, qhi := optionBounds(q)
			lo += qlo
			hi += qhi
		}
		dlo, dhi := tpl.bounds()
		if dlo != lo || dhi != hi {
			t.Fatalf("%s declares bounds (%v,%v) but options sum to (%v,%v)", tpl.ID, dlo, dhi, lo, hi)
		}
	}
}

func TestUnknownInstrument(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Score("not_a_real_instrument", ResponseMap{})
	if !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("err=%v, want ErrUnknownInstrument", err)
	}
	if _, err := reg.Resolve("not_a_real_instrument"); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("Resolve err=%v, want ErrUnknownInstrument", err)
	}
}

func TestAliasEquivalence(t *testing.T) {
	// Every documented alias must produce a result deep-equal to its
	// canonical key's.
	reg := NewRegistry()
	for alias, canonical := range builtinAliases() {
		tpl, err := reg.Resolve(canonical)
		if err != nil {
			t.Fatalf("resolve %s: %v", canonical, err)
		}
		responses := ResponseMap{}
		for i, q := range tpl.Questions {
			opts := q.Options
			responses[q.ID] = opts[i%len(opts)].Value
		}
		want, err := reg.Score(canonical, responses)
		if err != nil {
			t.Fatalf("score %s: %v", canonical, err)
		}
		got, err := reg.Score(alias, responses)
		if err != nil {
			t.Fatalf("score alias %s: %v", alias, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("alias %s differs from %s:\n%+v\n%+v", alias, canonical, got, want)
		}
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	cases := []struct {
		name string
		tpl  *Template
	}{
		{"no questions", &Template{ID: "t1", Fallback: "x"}},
		{"no fallback", &Template{ID: "t2", Questions: scaleItems("t2", 0, phqLabels, "stem")}},
		{"duplicate id", phq9Template()},
		{"descending bands", &Template{
			ID:        "t3",
			Questions: scaleItems("t3", 0, phqLabels, "stem"),
			Bands:     []Band{{Max: 5, Label: "a"}, {Max: 2, Label: "b"}},
			Fallback:  "c",
		}},
		{"domain unknown item", &Template{
			ID:        "t4",
			Questions: scaleItems("t4", 0, phqLabels, "stem"),
			Fallback:  "c",
			Domains:   []Domain{{Label: "D", Items: []string{"nope"}, MaxScore: 3, Fallback: "f"}},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := reg.Register(c.tpl); err == nil {
				t.Fatal("expected registration to fail")
			}
		})
	}
}

func TestAliasRequiresCanonical(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Alias("ghost", "missing_instrument"); !errors.Is(err, ErrUnknownInstrument) {
		t.Fatalf("err=%v, want ErrUnknownInstrument", err)
	}
}
