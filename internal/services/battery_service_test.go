package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

func newTestBatteryService(store *assessmentStubStore) *BatteryService {
	svc := NewBatteryService(store, scoring.NewRegistry())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.idGen = func() string { n++; return "id" + strconv.Itoa(n) }
	return svc
}

func TestBatterySubmitDefault(t *testing.T) {
	store := newAssessmentStubStore()
	svc := newTestBatteryService(store)

	responses := scoring.ResponseMap{
		"phq2_q1": 1, "phq2_q2": 2,
		"gad2_q1": 0, "gad2_q2": 1,
		"pss4_q1": 2, "pss4_q2": 4, "pss4_q3": 0, "pss4_q4": 2,
		"rrs4_q1": 2, "rrs4_q2": 3, "rrs4_q4": 1, // rrs4_q3 omitted
	}
	res, err := svc.Submit(BatteryRequest{Responses: responses})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if len(res.Results) != 4 {
		t.Fatalf("expected 4 instruments in default battery, got %d", len(res.Results))
	}
	// The combined flow is lenient: the omitted item contributes 0.
	if got := res.Results["rrs4"].RawScore; got != 6 {
		t.Fatalf("rrs4 raw = %v, want 6", got)
	}
	if got := res.Results["phq2"].RawScore; got != 3 {
		t.Fatalf("phq2 raw = %v, want 3", got)
	}

	if len(store.submissions) != 4 {
		t.Fatalf("expected one submission per instrument, got %d", len(store.submissions))
	}
	pid := store.submissions[0].ParticipantID
	for _, sub := range store.submissions {
		if sub.ParticipantID != pid {
			t.Fatalf("all submissions must share a participant")
		}
		// Each submission keeps only its own instrument's answers.
		for id := range sub.Responses {
			tpl, err := svc.registry.Resolve(sub.Instrument)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", sub.Instrument, err)
			}
			found := false
			for _, q := range tpl.Questions {
				if q.ID == id {
					found = true
				}
			}
			if !found {
				t.Fatalf("submission %s holds foreign item %s", sub.Instrument, id)
			}
		}
	}
	if len(store.audit) != 1 || store.audit[0].Action != "score_battery" {
		t.Fatalf("unexpected audit: %+v", store.audit)
	}
	if store.audit[0].Target != "gad2,phq2,pss4,rrs4" {
		t.Fatalf("unexpected audit target %q", store.audit[0].Target)
	}
}

func TestBatterySubmitExplicitInstruments(t *testing.T) {
	store := newAssessmentStubStore()
	svc := newTestBatteryService(store)

	res, err := svc.Submit(BatteryRequest{
		Instruments: []string{"phq2", "anxiety_gad2"},
		Responses:   scoring.ResponseMap{"phq2_q1": 3, "phq2_q2": 3, "gad2_q1": 1, "gad2_q2": 1},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	// Requested keys survive in the result map, aliases included.
	if _, ok := res.Results["anxiety_gad2"]; !ok {
		t.Fatalf("expected results keyed by requested alias, got %v", keysOf(res.Results))
	}
	if res.Results["phq2"].Interpretation == "" {
		t.Fatalf("expected interpretation on phq2 result")
	}
}

func TestBatterySubmitUnknownInstrument(t *testing.T) {
	store := newAssessmentStubStore()
	svc := newTestBatteryService(store)

	_, err := svc.Submit(BatteryRequest{Instruments: []string{"phq2", "nope"}, Responses: scoring.ResponseMap{}})
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
	if len(store.submissions) != 0 {
		t.Fatalf("no submissions should be stored on failure")
	}
}

func keysOf(m map[string]*scoring.ScoreResult) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
