package scoring

// Rumination and repetitive-negative-thinking measures. RRS-4 and Brooding
// score 1-4 per item, so their floors sit above zero (4-16 and 5-20) and
// normalization runs against those floors, not zero.

func rrs4Template() *Template {
	return &Template{
		ID:   "rrs4",
		Name: "RRS-4",
		Questions: scaleItems("rrs4", 1, rrsLabels,
			"When I feel down, I think \"What am I doing to deserve this?\"",
			"When I feel down, I think \"Why do I always react this way?\"",
			"When I feel down, I think about a recent situation, wishing it had gone better.",
			"When I feel down, I think \"Why do I have problems other people don't have?\"",
		),
		MinScore: 4,
		MaxScore: 16,
		Bands: []Band{
			{Max: 7, Label: "Low ruminative response style."},
			{Max: 11, Label: "Moderate ruminative response style."},
		},
		Fallback: "High ruminative response style.",
	}
}

func broodingTemplate() *Template {
	return &Template{
		ID:   "brooding",
		Name: "Brooding",
		Questions: scaleItems("brooding", 1, rrsLabels,
			"When I feel sad or down, I think \"What am I doing to deserve this?\"",
			"When I feel sad or down, I think \"Why do I always react this way?\"",
			"When I feel sad or down, I think about a recent situation, wishing it had gone better.",
			"When I feel sad or down, I think \"Why do I have problems other people don't have?\"",
			"When I feel sad or down, I think \"Why can't I handle things better?\"",
		),
		MinScore: 5,
		MaxScore: 20,
		Bands: []Band{
			{Max: 9, Label: "Low brooding."},
			{Max: 14, Label: "Moderate brooding."},
		},
		Fallback: "High brooding.",
	}
}

func ptqTemplate() *Template {
	return &Template{
		ID:   "ptq",
		Name: "PTQ",
		Questions: scaleItems("ptq", 0, ptqLabels,
			"The same thoughts keep going through my mind again and again.",
			"Thoughts intrude into my mind.",
			"I cannot stop dwelling on my thoughts.",
			"I think about many problems without solving any of them.",
			"Thoughts come to my mind without me wanting them to.",
			"I get stuck on certain issues and cannot move on.",
			"Thoughts just pop into my mind.",
			"I feel driven to continue dealing with the same thoughts.",
			"My thoughts repeat themselves.",
			"Thoughts force themselves into my mind.",
			"I keep asking myself questions without finding an answer.",
			"My thoughts prevent me from focusing on other things.",
			"Thoughts keep coming to my mind even though I try to push them away.",
			"My mind is occupied by the same themes over and over.",
			"My thoughts take up all of my attention.",
		),
		MaxScore: 60,
		Bands: []Band{
			{Max: 20, Label: "Low repetitive negative thinking."},
			{Max: 40, Label: "Moderate repetitive negative thinking."},
		},
		Fallback: "High repetitive negative thinking.",
	}
}
