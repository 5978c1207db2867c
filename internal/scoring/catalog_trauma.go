package scoring

// Trauma screens. PCL-5 carries the four DSM-5 symptom clusters as domains,
// each summed over its own item subset with its own bounds and bands.

func pcptsd5Template() *Template {
	return &Template{
		ID:   "pcptsd5",
		Name: "PC-PTSD-5",
		Questions: yesNoItems("pcptsd5",
			"In the past month, have you had nightmares about the event(s) or thought about the event(s) when you did not want to?",
			"In the past month, have you tried hard not to think about the event(s) or gone out of your way to avoid situations that reminded you of the event(s)?",
			"In the past month, have you been constantly on guard, watchful, or easily startled?",
			"In the past month, have you felt numb or detached from people, activities, or your surroundings?",
			"In the past month, have you felt guilty or unable to stop blaming yourself or others for the event(s) or any problems the event(s) may have caused?",
		),
		MaxScore: 5,
		Bands: []Band{
			{Max: 2, Label: "Negative PTSD screen."},
		},
		Fallback: "Positive PTSD screen; a fuller assessment such as the PCL-5 is recommended.",
	}
}

func pcl5Template() *Template {
	qs := scaleItems("pcl5", 0, pclLabels,
		"Repeated, disturbing, and unwanted memories of the stressful experience.",
		"Repeated, disturbing dreams of the stressful experience.",
		"Suddenly feeling or acting as if the stressful experience were actually happening again.",
		"Feeling very upset when something reminded you of the stressful experience.",
		"Having strong physical reactions when something reminded you of the stressful experience.",
		"Avoiding memories, thoughts, or feelings related to the stressful experience.",
		"Avoiding external reminders of the stressful experience.",
		"Trouble remembering important parts of the stressful experience.",
		"Having strong negative beliefs about yourself, other people, or the world.",
		"Blaming yourself or someone else for the stressful experience or what happened after it.",
		"Having strong negative feelings such as fear, horror, anger, guilt, or shame.",
		"Loss of interest in activities that you used to enjoy.",
		"Feeling distant or cut off from other people.",
		"Trouble experiencing positive feelings.",
		"Irritable behavior, angry outbursts, or acting aggressively.",
		"Taking too many risks or doing things that could cause you harm.",
		"Being \"superalert\" or watchful or on guard.",
		"Feeling jumpy or easily startled.",
		"Having difficulty concentrating.",
		"Trouble falling or staying asleep.",
	)
	return &Template{
		ID:        "pcl5",
		Name:      "PCL-5",
		Questions: qs,
		MaxScore:  80,
		Bands: []Band{
			{Max: 10, Label: "Minimal trauma-related distress at present."},
			{Max: 20, Label: "Mild trauma-related distress."},
			{Max: 32, Label: "Moderate trauma-related distress, approaching the provisional PTSD threshold."},
		},
		Fallback: "Severe trauma-related distress; provisional PTSD threshold exceeded.",
		Domains: []Domain{
			{
				Label:    "Intrusion",
				Items:    questionIDs(qs[0:5]),
				MaxScore: 20,
				Bands: []Band{
					{Max: 5, Label: "Minimal intrusion symptoms."},
					{Max: 10, Label: "Moderate intrusion symptoms."},
				},
				Fallback: "Elevated intrusion symptoms.",
			},
			{
				Label:    "Avoidance",
				Items:    questionIDs(qs[5:7]),
				MaxScore: 8,
				Bands: []Band{
					{Max: 2, Label: "Minimal avoidance symptoms."},
					{Max: 5, Label: "Moderate avoidance symptoms."},
				},
				Fallback: "Elevated avoidance symptoms.",
			},
			{
				Label:    "Negative mood and cognition",
				Items:    questionIDs(qs[7:14]),
				MaxScore: 28,
				Bands: []Band{
					{Max: 7, Label: "Minimal negative mood and cognition symptoms."},
					{Max: 14, Label: "Moderate negative mood and cognition symptoms."},
				},
				Fallback: "Elevated negative mood and cognition symptoms.",
			},
			{
				Label:    "Arousal",
				Items:    questionIDs(qs[14:20]),
				MaxScore: 24,
				Bands: []Band{
					{Max: 6, Label: "Minimal arousal symptoms."},
					{Max: 12, Label: "Moderate arousal symptoms."},
				},
				Fallback: "Elevated arousal symptoms.",
			},
		},
	}
}
