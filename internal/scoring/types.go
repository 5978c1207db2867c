// Package scoring turns raw answers to a validated screening instrument
// (PHQ-9, GAD-7, PCL-5, ...) into a raw score, a 0-100 normalized score,
// a qualitative interpretation, and, for multi-trait instruments, a
// per-domain breakdown. The package is pure computation: no I/O, no shared
// mutable state. Instrument definitions are static data consumed by one
// generic engine, so the server and any client-side mirror score from the
// same description.
package scoring

// ResponseType describes how a question is presented and answered.
type ResponseType string

const (
	ResponseScale          ResponseType = "scale"
	ResponseYesNo          ResponseType = "yes_no"
	ResponseMultipleChoice ResponseType = "multiple_choice"
)

// Option is one selectable answer. Values within a question are unique and
// define the question's per-item bounds.
type Option struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Question is a single scored item of an instrument.
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Type          ResponseType `json:"response_type"`
	Options       []Option     `json:"options"`
	ReverseScored bool         `json:"reverse_scored,omitempty"`
	Domain        string       `json:"domain,omitempty"`
}

// BandSource selects which derived quantity feeds the interpretation bands.
type BandSource string

const (
	// BandRawSum keys bands off the summed raw score (PHQ-9, GAD-7, PCL-5, ...).
	BandRawSum BandSource = "raw_sum"
	// BandNormalized keys bands off the 0-100 normalized score (EQ-5).
	BandNormalized BandSource = "normalized_percent"
	// BandItemAverage keys bands off rawScore / itemCount (EI-10, TEIQue-SF,
	// Mini-IPIP overall, Big-Five overall).
	BandItemAverage BandSource = "item_average"
)

// Band is one ascending interpretation threshold: the first band whose Max
// is >= the banded score wins.
type Band struct {
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// Domain is a named subscale (e.g. "Avoidance" in PCL-5) scored over a
// subset of the instrument's items with its own bounds and bands.
type Domain struct {
	Label    string   `json:"label"`
	Items    []string `json:"items"`
	MinScore float64  `json:"min_score"`
	MaxScore float64  `json:"max_score"`
	Bands    []Band   `json:"interpretation_bands"`
	Fallback string   `json:"fallback"`
	// AverageItems normalizes and bands the per-item average instead of the
	// sum; MinScore/MaxScore then hold the per-item bounds (1-5 for the
	// Big-Five and Mini-IPIP traits, 1-7 for the TEIQue-SF overall).
	AverageItems bool `json:"average_items,omitempty"`
}

// Template is the full declarative description of one instrument: items,
// bounds, reverse set, banding, and optional domains. Templates are built
// once and treated as read-only afterwards.
type Template struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
	// MinScore/MaxScore may be omitted (left zero) when derivable as the sum
	// of each question's option bounds.
	MinScore   float64    `json:"min_score,omitempty"`
	MaxScore   float64    `json:"max_score,omitempty"`
	Reverse    []string   `json:"reverse_scored,omitempty"` // question ids
	Bands      []Band     `json:"interpretation_bands"`
	Fallback   string     `json:"fallback"`
	BandSource BandSource `json:"band_source,omitempty"` // defaults to raw_sum
	Domains    []Domain   `json:"domains,omitempty"`
}

// DomainScore is one entry of the per-domain breakdown.
type DomainScore struct {
	Raw            float64 `json:"raw"`
	Normalized     float64 `json:"normalized"`
	Interpretation string  `json:"interpretation"`
}

// ScoreResult is the engine's immutable output. Field names follow the
// client contract, so JSON keys are camelCase rather than the snake_case
// used elsewhere in the API.
type ScoreResult struct {
	RawScore               float64                `json:"rawScore"`
	MinScore               float64                `json:"minScore"`
	MaxScore               float64                `json:"maxScore"`
	NormalizedScore        float64                `json:"normalizedScore"`
	NormalizedScoreRounded float64                `json:"normalizedScoreRounded"`
	Interpretation         string                 `json:"interpretation"`
	CategoryBreakdown      map[string]DomainScore `json:"categoryBreakdown,omitempty"`
}

// ResponseMap maps question id to the submitted answer. Values may arrive as
// numbers, numeric strings, booleans, yes/no text, or option ids depending
// on the caller.
type ResponseMap map[string]any
