package scoring

// bounds returns the instrument's score floor and ceiling, deriving them from
// the per-question option bounds when the template omits them. Instruments
// with a floor above zero (RRS-4: 4-16, TEIQue-SF: 30-210, ...) derive the
// floor as the per-item minimum summed across items, never zero.
func (t *Template) bounds() (float64, float64) {
	if t.MinScore != 0 || t.MaxScore != 0 {
		return t.MinScore, t.MaxScore
	}
	var lo, hi float64
	for _, q := range t.Questions {
		qlo, qhi := optionBounds(q)
		lo += qlo
		hi += qhi
	}
	return lo, hi
}

// reversed reports whether qid is reverse-scored, either through the
// template-level reverse set or the question's own flag. Reverse items are
// addressed by question id only.
func (t *Template) reversed(q Question) bool {
	if q.ReverseScored {
		return true
	}
	for _, id := range t.Reverse {
		if id == q.ID {
			return true
		}
	}
	return false
}

func (t *Template) question(id string) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Validate checks the template for configuration bugs that would otherwise
// surface as scoring artifacts: empty items, duplicate option values,
// missing banding, domains referencing absent items, inverted bounds.
func (t *Template) Validate() error {
	if len(t.Questions) == 0 {
		return &TemplateError{TemplateID: t.ID, Reason: "no questions"}
	}
	for _, q := range t.Questions {
		if len(q.Options) == 0 {
			return &TemplateError{TemplateID: t.ID, Reason: "question " + q.ID + " has no options"}
		}
		seen := map[float64]bool{}
		for _, o := range q.Options {
			if seen[o.Value] {
				return &TemplateError{TemplateID: t.ID, Reason: "question " + q.ID + " has duplicate option values"}
			}
			seen[o.Value] = true
		}
	}
	if t.Fallback == "" {
		return &TemplateError{TemplateID: t.ID, Reason: "no fallback interpretation"}
	}
	for i := 1; i < len(t.Bands); i++ {
		if t.Bands[i].Max <= t.Bands[i-1].Max {
			return &TemplateError{TemplateID: t.ID, Reason: "interpretation bands not ascending"}
		}
	}
	lo, hi := t.bounds()
	if hi < lo {
		return &TemplateError{TemplateID: t.ID, Reason: "max score below min score"}
	}
	for _, id := range t.Reverse {
		if _, ok := t.question(id); !ok {
			return &TemplateError{TemplateID: t.ID, Reason: "reverse set references unknown item " + id}
		}
	}
	for _, d := range t.Domains {
		if len(d.Items) == 0 {
			return &TemplateError{TemplateID: t.ID, Reason: "domain " + d.Label + " has no items"}
		}
		if d.Fallback == "" {
			return &TemplateError{TemplateID: t.ID, Reason: "domain " + d.Label + " has no fallback interpretation"}
		}
		for _, id := range d.Items {
			if _, ok := t.question(id); !ok {
				return &TemplateError{TemplateID: t.ID, Reason: "domain " + d.Label + " references unknown item " + id}
			}
		}
	}
	return nil
}

// Score runs the strict path: every question must have a resolvable answer
// or the whole instrument fails with an InvalidResponseError.
func (t *Template) Score(responses ResponseMap) (*ScoreResult, error) {
	return t.score(responses, false)
}

// ScoreLenient runs the composite-battery path: unanswered or unparseable
// items default to 0 instead of failing, since a stitched battery must
// tolerate partially completed sub-instruments.
func (t *Template) ScoreLenient(responses ResponseMap) *ScoreResult {
	res, _ := t.score(responses, true)
	return res
}

func (t *Template) score(responses ResponseMap, lenient bool) (*ScoreResult, error) {
	adjusted := make(map[string]float64, len(t.Questions))
	var raw float64
	for _, q := range t.Questions {
		var v float64
		if lenient {
			v = ensureNumeric(q, responses[q.ID], 0)
		} else {
			var ok bool
			v, ok = resolveValue(q, responses[q.ID])
			if !ok {
				return nil, &InvalidResponseError{Instrument: t.displayName(), QuestionID: q.ID}
			}
		}
		if t.reversed(q) {
			lo, hi := optionBounds(q)
			v = Reverse(v, lo, hi)
		}
		adjusted[q.ID] = v
		raw += v
	}

	lo, hi := t.bounds()
	normalized := Normalize(raw, lo, hi)
	res := &ScoreResult{
		RawScore:               raw,
		MinScore:               lo,
		MaxScore:               hi,
		NormalizedScore:        normalized,
		NormalizedScoreRounded: Round1(normalized),
		Interpretation:         interpret(t.Bands, t.Fallback, t.bandScore(raw, normalized)),
	}
	if len(t.Domains) > 0 {
		res.CategoryBreakdown = t.breakdown(adjusted)
	}
	return res, nil
}

// bandScore picks the derived quantity the bands key off. The choice is
// fixed per instrument: raw sums for the clinical screens, the normalized
// percentage for EQ-5, the per-item average for the trait inventories.
func (t *Template) bandScore(raw, normalized float64) float64 {
	switch t.BandSource {
	case BandNormalized:
		return normalized
	case BandItemAverage:
		if len(t.Questions) == 0 {
			return 0
		}
		return raw / float64(len(t.Questions))
	default:
		return raw
	}
}

// breakdown repeats aggregation, normalization, and band selection per
// domain over the already adjusted (clamped, reverse-transformed) values.
// Keys are the human-readable domain labels.
func (t *Template) breakdown(adjusted map[string]float64) map[string]DomainScore {
	out := make(map[string]DomainScore, len(t.Domains))
	for _, d := range t.Domains {
		var sum float64
		n := 0
		for _, id := range d.Items {
			if v, ok := adjusted[id]; ok {
				sum += v
				n++
			}
		}
		var normalized, banded float64
		if d.AverageItems && n > 0 {
			avg := sum / float64(n)
			normalized = Normalize(avg, d.MinScore, d.MaxScore)
			banded = avg
		} else {
			normalized = Normalize(sum, d.MinScore, d.MaxScore)
			banded = sum
		}
		out[d.Label] = DomainScore{
			Raw:            sum,
			Normalized:     Round1(normalized),
			Interpretation: interpret(d.Bands, d.Fallback, banded),
		}
	}
	return out
}

// AdjustedValues resolves each answered item and returns the clamped,
// reverse-transformed per-item values, keyed by question id. Unanswered or
// unparseable items are omitted. Insight and export tooling consume this;
// scoring itself goes through Score/ScoreLenient.
func (t *Template) AdjustedValues(responses ResponseMap) map[string]float64 {
	out := make(map[string]float64, len(t.Questions))
	for _, q := range t.Questions {
		v, ok := resolveValue(q, responses[q.ID])
		if !ok {
			continue
		}
		if t.reversed(q) {
			lo, hi := optionBounds(q)
			v = Reverse(v, lo, hi)
		}
		out[q.ID] = v
	}
	return out
}

func (t *Template) displayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
