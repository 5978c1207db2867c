package scoring

import (
	"strconv"
	"strings"
)

// Trait inventories. These band off derived quantities rather than the raw
// sum: EQ-5 off the normalized percentage, the rest off the per-item
// average. Trait domains normalize the per-item average over the item
// bounds, so a two-item trait and a four-item trait read on the same scale.

func eq5Template() *Template {
	return &Template{
		ID:   "eq5",
		Name: "EQ-5",
		Questions: scaleItems("eq5", 1, agree5,
			"I can easily tell if someone else wants to enter a conversation.",
			"I find it easy to put myself in somebody else's shoes.",
			"I am good at predicting how someone will feel.",
			"I am quick to spot when someone says one thing but means another.",
			"I can tune into how someone else feels rapidly and intuitively.",
		),
		MinScore:   5,
		MaxScore:   25,
		BandSource: BandNormalized,
		Bands: []Band{
			{Max: 40, Label: "Empathy skills are still developing."},
			{Max: 70, Label: "Moderate empathy."},
		},
		Fallback: "Strong empathy.",
	}
}

func ei10Template() *Template {
	qs := scaleItems("ei10", 1, agree5,
		"I am aware of my emotions as I experience them.",
		"I recognise emotions in others by looking at their facial expressions.",
		"When I am upset, I can usually identify why.",
		"I can stay calm under pressure.",
		"I find it easy to talk about my feelings.",
		"I adapt my behaviour depending on who I am with.",
		"I can motivate myself to keep going after setbacks.",
		"I notice when my mood affects the people around me.",
		"I handle disagreements without losing my temper.",
		"I help others feel better when they are down.",
	)
	bands := []Band{
		{Max: 2.5, Label: "Emotional skills are still developing."},
		{Max: 3.5, Label: "Solid emotional awareness with room to grow."},
	}
	const fallback = "High emotional intelligence."
	return &Template{
		ID:         "ei10",
		Name:       "EI-10",
		Questions:  qs,
		MinScore:   10,
		MaxScore:   50,
		BandSource: BandItemAverage,
		Bands:      bands,
		Fallback:   fallback,
		Domains: []Domain{
			{
				Label:        "Overall",
				Items:        questionIDs(qs),
				MinScore:     1,
				MaxScore:     5,
				Bands:        bands,
				Fallback:     fallback,
				AverageItems: true,
			},
		},
	}
}

func teiqueTemplate() *Template {
	qs := scaleItems("teique", 1, agree7,
		"Expressing my emotions with words is not a problem for me.",
		"I often find it difficult to see things from another person's viewpoint.",
		"On the whole, I am a highly motivated person.",
		"I usually find it difficult to regulate my emotions.",
		"I generally do not find life enjoyable.",
		"I can deal effectively with people.",
		"I tend to change my mind frequently.",
		"Many times, I cannot figure out what emotion I am feeling.",
		"I feel that I have a number of good qualities.",
		"I often find it difficult to stand up for my rights.",
		"I am usually able to influence the way other people feel.",
		"On the whole, I have a gloomy perspective on most things.",
		"Those close to me often complain that I do not treat them right.",
		"I often find it difficult to adjust my life according to the circumstances.",
		"On the whole, I am able to deal with stress.",
		"I often find it difficult to show my affection to those close to me.",
		"I am normally able to get into someone's shoes and experience their emotions.",
		"I normally find it difficult to keep myself motivated.",
		"I am usually able to find ways to control my emotions when I want to.",
		"On the whole, I am pleased with my life.",
		"I would describe myself as a good negotiator.",
		"I tend to get involved in things I later wish I could get out of.",
		"I often pause and think about my feelings.",
		"I believe I am full of personal strengths.",
		"I tend to back down even if I know I am right.",
		"I do not seem to have any power at all over other people's feelings.",
		"I generally believe that things will work out fine in my life.",
		"I find it difficult to bond well even with those close to me.",
		"Generally, I am able to adapt to new environments.",
		"Others admire me for being relaxed.",
	)
	bands := []Band{
		{Max: 3.5, Label: "Lower trait emotional intelligence."},
		{Max: 5, Label: "Average trait emotional intelligence."},
	}
	const fallback = "High trait emotional intelligence."
	return &Template{
		ID:        "teique_sf",
		Name:      "TEIQue-SF",
		Questions: qs,
		MinScore:  30,
		MaxScore:  210,
		Reverse: []string{
			"teique_q2", "teique_q4", "teique_q5", "teique_q7", "teique_q8",
			"teique_q10", "teique_q12", "teique_q13", "teique_q14", "teique_q16",
			"teique_q18", "teique_q22", "teique_q25", "teique_q26", "teique_q28",
		},
		BandSource: BandItemAverage,
		Bands:      bands,
		Fallback:   fallback,
		Domains: []Domain{
			{
				Label:        "Overall",
				Items:        questionIDs(qs),
				MinScore:     1,
				MaxScore:     7,
				Bands:        bands,
				Fallback:     fallback,
				AverageItems: true,
			},
		},
	}
}

// traitItem describes one inventory item keyed to its trait, with the
// reverse flag carried per item.
type traitItem struct {
	stem    string
	trait   string
	reverse bool
}

func traitQuestions(prefix string, items []traitItem) []Question {
	out := make([]Question, 0, len(items))
	for i, it := range items {
		q := Question{
			ID:            prefix + "_q" + strconv.Itoa(i+1),
			Text:          it.stem,
			Type:          ResponseScale,
			ReverseScored: it.reverse,
			Domain:        it.trait,
		}
		q.Options = scaleOptions(q.ID, 1, agree5)
		out = append(out, q)
	}
	return out
}

// traitDomains groups questions by trait into average-scored domains over
// the 1-5 item bounds, preserving first-seen trait order.
func traitDomains(qs []Question) []Domain {
	var order []string
	byTrait := map[string][]string{}
	for _, q := range qs {
		if _, seen := byTrait[q.Domain]; !seen {
			order = append(order, q.Domain)
		}
		byTrait[q.Domain] = append(byTrait[q.Domain], q.ID)
	}
	out := make([]Domain, 0, len(order))
	for _, trait := range order {
		name := strings.ToLower(trait)
		out = append(out, Domain{
			Label:    trait,
			Items:    byTrait[trait],
			MinScore: 1,
			MaxScore: 5,
			Bands: []Band{
				{Max: 2.5, Label: "Low " + name + "."},
				{Max: 3.5, Label: "Moderate " + name + "."},
			},
			Fallback:     "High " + name + ".",
			AverageItems: true,
		})
	}
	return out
}

func bigFiveTemplate() *Template {
	qs := traitQuestions("bigfive", []traitItem{
		{"I see myself as someone who is reserved.", "Extraversion", true},
		{"I see myself as someone who is generally trusting.", "Agreeableness", false},
		{"I see myself as someone who tends to be lazy.", "Conscientiousness", true},
		{"I see myself as someone who is relaxed and handles stress well.", "Neuroticism", true},
		{"I see myself as someone who has few artistic interests.", "Openness", true},
		{"I see myself as someone who is outgoing and sociable.", "Extraversion", false},
		{"I see myself as someone who tends to find fault with others.", "Agreeableness", true},
		{"I see myself as someone who does a thorough job.", "Conscientiousness", false},
		{"I see myself as someone who gets nervous easily.", "Neuroticism", false},
		{"I see myself as someone who has an active imagination.", "Openness", false},
	})
	return &Template{
		ID:         "bigfive",
		Name:       "Big Five (short)",
		Questions:  qs,
		MinScore:   10,
		MaxScore:   50,
		BandSource: BandItemAverage,
		Bands: []Band{
			{Max: 2.5, Label: "Overall trait endorsement is low."},
			{Max: 3.5, Label: "Overall trait endorsement is in the typical range."},
		},
		Fallback: "Overall trait endorsement is high.",
		Domains:  traitDomains(qs),
	}
}

func miniIPIPTemplate() *Template {
	qs := traitQuestions("miniipip", []traitItem{
		{"I am the life of the party.", "Extraversion", false},
		{"I sympathize with others' feelings.", "Agreeableness", false},
		{"I get chores done right away.", "Conscientiousness", false},
		{"I have frequent mood swings.", "Neuroticism", false},
		{"I have a vivid imagination.", "Intellect", false},
		{"I don't talk a lot.", "Extraversion", true},
		{"I am not interested in other people's problems.", "Agreeableness", true},
		{"I often forget to put things back in their proper place.", "Conscientiousness", true},
		{"I am relaxed most of the time.", "Neuroticism", true},
		{"I am not interested in abstract ideas.", "Intellect", true},
		{"I talk to a lot of different people at parties.", "Extraversion", false},
		{"I feel others' emotions.", "Agreeableness", false},
		{"I like order.", "Conscientiousness", false},
		{"I get upset easily.", "Neuroticism", false},
		{"I have difficulty understanding abstract ideas.", "Intellect", true},
		{"I keep in the background.", "Extraversion", true},
		{"I am not really interested in others.", "Agreeableness", true},
		{"I make a mess of things.", "Conscientiousness", true},
		{"I seldom feel blue.", "Neuroticism", true},
		{"I do not have a good imagination.", "Intellect", true},
	})
	return &Template{
		ID:         "miniipip",
		Name:       "Mini-IPIP",
		Questions:  qs,
		MinScore:   20,
		MaxScore:   100,
		BandSource: BandItemAverage,
		Bands: []Band{
			{Max: 2.5, Label: "Overall trait endorsement is low."},
			{Max: 3.5, Label: "Overall trait endorsement is in the typical range."},
		},
		Fallback: "Overall trait endorsement is high.",
		Domains:  traitDomains(qs),
	}
}
