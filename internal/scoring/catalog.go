package scoring

import "fmt"

// The built-in catalog. Each instrument is pure data: items, bounds,
// reverse set, banding, domains. Definitions live in the catalog_* files
// grouped by area (mood/stress, rumination, trauma, traits).

func builtinTemplates() []*Template {
	return []*Template{
		phq2Template(),
		phq9Template(),
		gad2Template(),
		gad7Template(),
		pss4Template(),
		pss10Template(),
		rrs4Template(),
		broodingTemplate(),
		ptqTemplate(),
		pcptsd5Template(),
		pcl5Template(),
		eq5Template(),
		ei10Template(),
		teiqueTemplate(),
		bigFiveTemplate(),
		miniIPIPTemplate(),
	}
}

// builtinAliases maps legacy keys, resolved once at registry construction.
// Older clients and stored sessions still submit these.
func builtinAliases() map[string]string {
	return map[string]string{
		"depression":             "phq9",
		"depression_phq9":        "phq9",
		"depression_phq2":        "phq2",
		"anxiety":                "gad7",
		"anxiety_gad7":           "gad7",
		"anxiety_gad2":           "gad2",
		"stress":                 "pss10",
		"stress_pss10":           "pss10",
		"stress_pss4":            "pss4",
		"rumination":             "rrs4",
		"rumination_rrs4":        "rrs4",
		"brooding_scale":         "brooding",
		"repetitive_thinking":    "ptq",
		"pc_ptsd_5":              "pcptsd5",
		"ptsd_screen":            "pcptsd5",
		"ptsd":                   "pcl5",
		"trauma":                 "pcl5",
		"empathy":                "eq5",
		"emotionalIntelligence":  "ei10",
		"emotional_intelligence": "ei10",
		"teique":                 "teique_sf",
		"trait_ei":               "teique_sf",
		"big_five":               "bigfive",
		"big5":                   "bigfive",
		"personality":            "bigfive",
		"mini_ipip":              "miniipip",
	}
}

// Shared answer label sets. The label index offset by the scale start is
// the option value.
var (
	phqLabels = []string{"Not at all", "Several days", "More than half the days", "Nearly every day"}                                                   // 0-3
	pssLabels = []string{"Never", "Almost never", "Sometimes", "Fairly often", "Very often"}                                                            // 0-4
	rrsLabels = []string{"Almost never", "Sometimes", "Often", "Almost always"}                                                                         // 1-4
	ptqLabels = []string{"Never", "Rarely", "Sometimes", "Often", "Almost always"}                                                                      // 0-4
	pclLabels = []string{"Not at all", "A little bit", "Moderately", "Quite a bit", "Extremely"}                                                        // 0-4
	agree5    = []string{"Strongly disagree", "Disagree", "Neither agree nor disagree", "Agree", "Strongly agree"}                                      // 1-5
	agree7    = []string{"Completely disagree", "Disagree", "Somewhat disagree", "Neither agree nor disagree", "Somewhat agree", "Agree", "Completely agree"} // 1-7
)

func scaleOptions(qid string, start int, labels []string) []Option {
	out := make([]Option, 0, len(labels))
	for i, text := range labels {
		v := start + i
		out = append(out, Option{ID: fmt.Sprintf("%s_%d", qid, v), Value: float64(v), Text: text})
	}
	return out
}

// scaleItems builds prefix_q1..qN scale questions sharing one label set.
func scaleItems(prefix string, start int, labels []string, stems ...string) []Question {
	out := make([]Question, 0, len(stems))
	for i, stem := range stems {
		id := fmt.Sprintf("%s_q%d", prefix, i+1)
		out = append(out, Question{
			ID:      id,
			Text:    stem,
			Type:    ResponseScale,
			Options: scaleOptions(id, start, labels),
		})
	}
	return out
}

func yesNoItems(prefix string, stems ...string) []Question {
	out := make([]Question, 0, len(stems))
	for i, stem := range stems {
		id := fmt.Sprintf("%s_q%d", prefix, i+1)
		out = append(out, Question{
			ID:   id,
			Text: stem,
			Type: ResponseYesNo,
			Options: []Option{
				{ID: id + "_no", Value: 0, Text: "No"},
				{ID: id + "_yes", Value: 1, Text: "Yes"},
			},
		})
	}
	return out
}

func questionIDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
