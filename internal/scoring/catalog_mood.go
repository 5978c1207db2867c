package scoring

// Mood, anxiety, and perceived-stress screens. All of these band off the
// raw sum.

func phq2Template() *Template {
	return &Template{
		ID:   "phq2",
		Name: "PHQ-2",
		Questions: scaleItems("phq2", 0, phqLabels,
			"Little interest or pleasure in doing things.",
			"Feeling down, depressed, or hopeless.",
		),
		MaxScore: 6,
		Bands: []Band{
			{Max: 2, Label: "Depression screen negative; this score alone does not indicate follow-up."},
		},
		Fallback: "Depression screen positive; following up with the full PHQ-9 is recommended.",
	}
}

func phq9Template() *Template {
	return &Template{
		ID:   "phq9",
		Name: "PHQ-9",
		Questions: scaleItems("phq9", 0, phqLabels,
			"Little interest or pleasure in doing things.",
			"Feeling down, depressed, or hopeless.",
			"Trouble falling or staying asleep, or sleeping too much.",
			"Feeling tired or having little energy.",
			"Poor appetite or overeating.",
			"Feeling bad about yourself, or that you are a failure or have let yourself or your family down.",
			"Trouble concentrating on things, such as reading or watching television.",
			"Moving or speaking so slowly that other people could have noticed, or the opposite: being fidgety or restless.",
			"Thoughts that you would be better off dead, or of hurting yourself in some way.",
		),
		MaxScore: 27,
		Bands: []Band{
			{Max: 4, Label: "Minimal depression symptoms."},
			{Max: 9, Label: "Mild depression symptoms."},
			{Max: 14, Label: "Moderate depression symptoms."},
			{Max: 19, Label: "Moderately severe depression symptoms."},
		},
		Fallback: "Severe depression symptoms.",
	}
}

func gad2Template() *Template {
	return &Template{
		ID:   "gad2",
		Name: "GAD-2",
		Questions: scaleItems("gad2", 0, phqLabels,
			"Feeling nervous, anxious, or on edge.",
			"Not being able to stop or control worrying.",
		),
		MaxScore: 6,
		Bands: []Band{
			{Max: 2, Label: "Anxiety screen negative; this score alone does not indicate follow-up."},
		},
		Fallback: "Anxiety screen positive; following up with the full GAD-7 is recommended.",
	}
}

func gad7Template() *Template {
	return &Template{
		ID:   "gad7",
		Name: "GAD-7",
		Questions: scaleItems("gad7", 0, phqLabels,
			"Feeling nervous, anxious, or on edge.",
			"Not being able to stop or control worrying.",
			"Worrying too much about different things.",
			"Trouble relaxing.",
			"Being so restless that it is hard to sit still.",
			"Becoming easily annoyed or irritable.",
			"Feeling afraid, as if something awful might happen.",
		),
		MaxScore: 21,
		Bands: []Band{
			{Max: 4, Label: "Minimal anxiety symptoms."},
			{Max: 9, Label: "Mild anxiety symptoms."},
			{Max: 14, Label: "Moderate anxiety symptoms."},
		},
		Fallback: "Severe anxiety symptoms.",
	}
}

func pss4Template() *Template {
	return &Template{
		ID:   "pss4",
		Name: "PSS-4",
		Questions: scaleItems("pss4", 0, pssLabels,
			"In the last month, how often have you felt that you were unable to control the important things in your life?",
			"In the last month, how often have you felt confident about your ability to handle your personal problems?",
			"In the last month, how often have you felt that things were going your way?",
			"In the last month, how often have you felt difficulties were piling up so high that you could not overcome them?",
		),
		MaxScore: 16,
		Reverse:  []string{"pss4_q2", "pss4_q3"},
		Bands: []Band{
			{Max: 5, Label: "Low perceived stress."},
			{Max: 11, Label: "Moderate perceived stress."},
		},
		Fallback: "High perceived stress.",
	}
}

func pss10Template() *Template {
	return &Template{
		ID:   "pss10",
		Name: "PSS-10",
		Questions: scaleItems("pss10", 0, pssLabels,
			"In the last month, how often have you been upset because of something that happened unexpectedly?",
			"In the last month, how often have you felt that you were unable to control the important things in your life?",
			"In the last month, how often have you felt nervous and stressed?",
			"In the last month, how often have you felt confident about your ability to handle your personal problems?",
			"In the last month, how often have you felt that things were going your way?",
			"In the last month, how often have you found that you could not cope with all the things that you had to do?",
			"In the last month, how often have you been able to control irritations in your life?",
			"In the last month, how often have you felt that you were on top of things?",
			"In the last month, how often have you been angered because of things that were outside of your control?",
			"In the last month, how often have you felt difficulties were piling up so high that you could not overcome them?",
		),
		MaxScore: 40,
		Reverse:  []string{"pss10_q4", "pss10_q5", "pss10_q7", "pss10_q8"},
		Bands: []Band{
			{Max: 13, Label: "Low perceived stress."},
			{Max: 26, Label: "Moderate perceived stress."},
		},
		Fallback: "High perceived stress.",
	}
}
