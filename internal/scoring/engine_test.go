package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func TestScorePHQ2Ceiling(t *testing.T) {
	reg := NewRegistry()
	res, err := reg.Score("phq2", ResponseMap{"phq2_q1": 3, "phq2_q2": 3})
	if err != nil {
		t.Fatalf("score phq2: %v", err)
	}
	if res.RawScore != 6 || res.MaxScore != 6 || res.NormalizedScore != 100 {
		t.Fatalf("got raw=%v max=%v norm=%v, want 6/6/100", res.RawScore, res.MaxScore, res.NormalizedScore)
	}
	if res.Interpretation != phq2Template().Fallback {
		t.Fatalf("interpretation %q, want the most elevated band", res.Interpretation)
	}
}

func TestScorePSS4ReverseItems(t *testing.T) {
	reg := NewRegistry()
	res, err := reg.Score("pss4", ResponseMap{"pss4_q1": 2, "pss4_q2": 4, "pss4_q3": 0, "pss4_q4": 2})
	if err != nil {
		t.Fatalf("score pss4: %v", err)
	}
	// q2 and q3 are reverse-scored: adjusted values are [2, 0, 4, 2].
	if res.RawScore != 8 || res.MaxScore != 16 {
		t.Fatalf("got raw=%v max=%v, want 8/16", res.RawScore, res.MaxScore)
	}
}

func TestScorePCL5AllZero(t *testing.T) {
	reg := NewRegistry()
	tpl, err := reg.Resolve("pcl5")
	if err != nil {
		t.Fatalf("resolve pcl5: %v", err)
	}
	responses := ResponseMap{}
	for _, q := range tpl.Questions {
		responses[q.ID] = 0
	}
	res, err := tpl.Score(responses)
	if err != nil {
		t.Fatalf("score pcl5: %v", err)
	}
	if res.RawScore != 0 {
		t.Fatalf("raw=%v, want 0", res.RawScore)
	}
	if res.Interpretation != "Minimal trauma-related distress at present." {
		t.Fatalf("interpretation %q", res.Interpretation)
	}
	if len(res.CategoryBreakdown) != 4 {
		t.Fatalf("breakdown has %d domains, want 4", len(res.CategoryBreakdown))
	}
	for label, d := range res.CategoryBreakdown {
		if d.Raw != 0 {
			t.Fatalf("domain %s raw=%v, want 0", label, d.Raw)
		}
	}
}

func TestScoreTEIQueReverseItem(t *testing.T) {
	reg := NewRegistry()
	tpl, err := reg.Resolve("teique_sf")
	if err != nil {
		t.Fatalf("resolve teique_sf: %v", err)
	}
	responses := ResponseMap{}
	for _, q := range tpl.Questions {
		responses[q.ID] = 1
	}
	res, err := tpl.Score(responses)
	if err != nil {
		t.Fatalf("score teique_sf: %v", err)
	}
	// 15 reversed items answered 1 on a 1-7 scale contribute 8-1=7 each,
	// the other 15 contribute 1 each.
	if want := float64(15*7 + 15*1); res.RawScore != want {
		t.Fatalf("raw=%v, want %v", res.RawScore, want)
	}
}

func TestScoreStrictRejectsMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Score("phq9", ResponseMap{"phq9_q1": 2})
	if err == nil {
		t.Fatal("expected error for missing answers")
	}
	var ire *InvalidResponseError
	if !errors.As(err, &ire) {
		t.Fatalf("error type %T, want *InvalidResponseError", err)
	}
	if ire.Instrument != "PHQ-9" {
		t.Fatalf("error names instrument %q, want PHQ-9", ire.Instrument)
	}
}

func TestScoreIdempotent(t *testing.T) {
	reg := NewRegistry()
	responses := ResponseMap{"gad2_q1": 2, "gad2_q2": "3"}
	a, err := reg.Score("gad2", responses)
	if err != nil {
		t.Fatalf("first score: %v", err)
	}
	b, err := reg.Score("gad2", responses)
	if err != nil {
		t.Fatalf("second score: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ:\n%+v\n%+v", a, b)
	}
}

func TestScoreBoundsNeverExceeded(t *testing.T) {
	// Wildly out-of-range answers clamp per item, so no instrument can score
	// outside [MinScore, MaxScore].
	reg := NewRegistry()
	for _, key := range reg.Keys() {
		tpl, err := reg.Resolve(key)
		if err != nil {
			t.Fatalf("resolve %s: %v", key, err)
		}
		for _, raw := range []any{-1000, 1000} {
			responses := ResponseMap{}
			for _, q := range tpl.Questions {
				responses[q.ID] = raw
			}
			res, err := tpl.Score(responses)
			if err != nil {
				t.Fatalf("score %s: %v", key, err)
			}
			if res.RawScore < res.MinScore || res.RawScore > res.MaxScore {
				t.Fatalf("%s raw %v outside [%v,%v]", key, res.RawScore, res.MinScore, res.MaxScore)
			}
			if res.NormalizedScore < 0 || res.NormalizedScore > 100 {
				t.Fatalf("%s normalized %v outside [0,100]", key, res.NormalizedScore)
			}
		}
	}
}

func TestScoreFloorInstruments(t *testing.T) {
	// Instruments with a floor above zero normalize against the floor.
	cases := []struct {
		key      string
		lo, hi   float64
	}{
		{"rrs4", 4, 16},
		{"brooding", 5, 20},
		{"ei10", 10, 50},
		{"teique_sf", 30, 210},
		{"miniipip", 20, 100},
	}
	reg := NewRegistry()
	for _, c := range cases {
		tpl, err := reg.Resolve(c.key)
		if err != nil {
			t.Fatalf("resolve %s: %v", c.key, err)
		}
		// Answer every item so its adjusted value lands on the per-item
		// minimum: reverse-scored items need the high option for that.
		responses := ResponseMap{}
		for _, q := range tpl.Questions {
			lo, hi := optionBounds(q)
			if tpl.reversed(q) {
				responses[q.ID] = hi
			} else {
				responses[q.ID] = lo
			}
		}
		res, err := tpl.Score(responses)
		if err != nil {
			t.Fatalf("score %s: %v", c.key, err)
		}
		if res.MinScore != c.lo || res.MaxScore != c.hi {
			t.Fatalf("%s bounds (%v,%v), want (%v,%v)", c.key, res.MinScore, res.MaxScore, c.lo, c.hi)
		}
		if res.RawScore != c.lo || res.NormalizedScore != 0 {
			t.Fatalf("%s floor answers: raw=%v norm=%v, want raw=%v norm=0", c.key, res.RawScore, res.NormalizedScore, c.lo)
		}
	}
}

func TestBandMonotonicity(t *testing.T) {
	// Walking every instrument from all-minimum to all-maximum answers must
	// never move the interpretation back toward an earlier band.
	reg := NewRegistry()
	for _, key := range reg.Keys() {
		tpl, err := reg.Resolve(key)
		if err != nil {
			t.Fatalf("resolve %s: %v", key, err)
		}
		severity := map[string]int{}
		for i, b := range tpl.Bands {
			severity[b.Label] = i
		}
		severity[tpl.Fallback] = len(tpl.Bands)

		responses := ResponseMap{}
		for _, q := range tpl.Questions {
			lo, _ := optionBounds(q)
			responses[q.ID] = lo
		}
		last := -1
		// Raise one item at a time to sweep the raw score upward. Reverse
		// items are skipped so the adjusted sum only ever increases.
		for _, q := range tpl.Questions {
			if tpl.reversed(q) {
				continue
			}
			_, hi := optionBounds(q)
			responses[q.ID] = hi
			res, err := tpl.Score(responses)
			if err != nil {
				t.Fatalf("score %s: %v", key, err)
			}
			rank, ok := severity[res.Interpretation]
			if !ok {
				t.Fatalf("%s produced unknown interpretation %q", key, res.Interpretation)
			}
			if rank < last {
				t.Fatalf("%s interpretation severity regressed from %d to %d", key, last, rank)
			}
			last = rank
		}
	}
}

func TestBigFiveDomainAverages(t *testing.T) {
	reg := NewRegistry()
	tpl, err := reg.Resolve("bigfive")
	if err != nil {
		t.Fatalf("resolve bigfive: %v", err)
	}
	// Neutral midpoint everywhere: every trait averages 3 regardless of how
	// many items feed it, so every domain normalizes to 50.
	responses := ResponseMap{}
	for _, q := range tpl.Questions {
		responses[q.ID] = 3
	}
	res, err := tpl.Score(responses)
	if err != nil {
		t.Fatalf("score bigfive: %v", err)
	}
	if len(res.CategoryBreakdown) != 5 {
		t.Fatalf("breakdown has %d traits, want 5", len(res.CategoryBreakdown))
	}
	for label, d := range res.CategoryBreakdown {
		if d.Normalized != 50 {
			t.Fatalf("trait %s normalized=%v, want 50", label, d.Normalized)
		}
		if d.Interpretation != "Moderate "+lowerLabel(label)+"." {
			t.Fatalf("trait %s interpretation %q", label, d.Interpretation)
		}
	}
}

func lowerLabel(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
