package services

import (
	"errors"
	"sort"

	"github.com/havenwell/Haven/internal/scoring"
)

// InsightStore abstracts the reads behind the admin insight dashboard.
type InsightStore interface {
	ListSubmissionsByInstrument(instrument string) ([]*Submission, error)
}

// InsightBucket is one decile of the normalized-score histogram.
type InsightBucket struct {
	Max   float64 `json:"max"` // upper normalized bound, exclusive except the last
	Count int     `json:"count"`
}

type InsightTimeseries struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// InsightSummary aggregates every stored submission of one instrument:
// score distribution, interpretation counts, submissions per day, and
// internal consistency over the item responses.
type InsightSummary struct {
	Instrument       string             `json:"instrument"`
	TotalSubmissions int                `json:"total_submissions"`
	Histogram        []InsightBucket    `json:"histogram"`
	Interpretations  map[string]int     `json:"interpretations"`
	Timeseries       []InsightTimeseries `json:"timeseries"`
	Alpha            float64            `json:"alpha"`
	N                int                `json:"n"` // complete response sets behind Alpha
}

type InsightService struct {
	store    InsightStore
	registry *scoring.Registry
}

func NewInsightService(store InsightStore, registry *scoring.Registry) *InsightService {
	return &InsightService{store: store, registry: registry}
}

// Summary builds the dashboard aggregate for one instrument.
func (s *InsightService) Summary(instrument string) (*InsightSummary, error) {
	tpl, err := s.registry.Resolve(instrument)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownInstrument) {
			return nil, NewNotFoundError("unknown assessment type: " + instrument)
		}
		return nil, err
	}
	subs, err := s.store.ListSubmissionsByInstrument(tpl.ID)
	if err != nil {
		return nil, err
	}

	histogram := newHistogram()
	interpretations := map[string]int{}
	countsByDay := map[string]int{}
	for _, sub := range subs {
		if sub.Result != nil {
			bucketAdd(histogram, sub.Result.NormalizedScore)
			interpretations[sub.Result.Interpretation]++
		}
		countsByDay[sub.SubmittedAt.UTC().Format("2006-01-02")]++
	}

	matrix := buildAlphaMatrix(tpl, subs)
	return &InsightSummary{
		Instrument:       tpl.ID,
		TotalSubmissions: len(subs),
		Histogram:        histogram,
		Interpretations:  interpretations,
		Timeseries:       buildTimeseries(countsByDay),
		Alpha:            CronbachAlpha(matrix),
		N:                len(matrix),
	}, nil
}

func newHistogram() []InsightBucket {
	out := make([]InsightBucket, 10)
	for i := range out {
		out[i].Max = float64((i + 1) * 10)
	}
	return out
}

func bucketAdd(buckets []InsightBucket, normalized float64) {
	for i := range buckets {
		if normalized < buckets[i].Max || i == len(buckets)-1 {
			buckets[i].Count++
			return
		}
	}
}

// buildAlphaMatrix shapes submissions into [nParticipants][nItems] of
// adjusted item values. Only complete response sets enter the matrix.
func buildAlphaMatrix(tpl *scoring.Template, subs []*Submission) [][]float64 {
	matrix := make([][]float64, 0, len(subs))
	for _, sub := range subs {
		values := tpl.AdjustedValues(sub.Responses)
		if len(values) != len(tpl.Questions) {
			continue
		}
		row := make([]float64, 0, len(tpl.Questions))
		for _, q := range tpl.Questions {
			row = append(row, values[q.ID])
		}
		matrix = append(matrix, row)
	}
	return matrix
}

func buildTimeseries(counts map[string]int) []InsightTimeseries {
	days := make([]string, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]InsightTimeseries, 0, len(days))
	for _, d := range days {
		out = append(out, InsightTimeseries{Date: d, Count: counts[d]})
	}
	return out
}
