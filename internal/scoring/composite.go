package scoring

// BasicOverallBattery is the instrument set behind the "basic overall"
// assessment flow: a short screen across mood, anxiety, stress, and
// rumination answered in one sitting.
var BasicOverallBattery = []string{"phq2", "gad2", "pss4", "rrs4"}

// ScoreBattery scores several instruments from one merged response map and
// returns one result per instrument key. Item ids are unique across the
// catalog, so the merged map is flat. This path is lenient: a battery is
// expected to tolerate partially completed sub-instruments, so missing
// items score as 0 instead of failing the submission. Unknown instrument
// keys still fail hard.
func (r *Registry) ScoreBattery(keys []string, responses ResponseMap) (map[string]*ScoreResult, error) {
	if len(keys) == 0 {
		keys = BasicOverallBattery
	}
	out := make(map[string]*ScoreResult, len(keys))
	for _, key := range keys {
		t, err := r.Resolve(key)
		if err != nil {
			return nil, err
		}
		out[key] = t.ScoreLenient(responses)
	}
	return out, nil
}
