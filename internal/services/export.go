package services

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/havenwell/Haven/internal/scoring"
)

// LongRow is one submission in the long-format export.
type LongRow struct {
	SubmissionID   string
	ParticipantID  string
	Instrument     string
	RawScore       float64
	Normalized     float64
	Interpretation string
	SubmittedAt    string // RFC3339
}

// ExportLongCSV renders submissions into a long-format CSV, one row per
// scored submission.
func ExportLongCSV(rows []LongRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"submission_id", "participant_id", "instrument", "raw_score", "normalized_score", "interpretation", "submitted_at"})
	for _, r := range rows {
		rec := []string{
			r.SubmissionID,
			r.ParticipantID,
			r.Instrument,
			ftoa(r.RawScore),
			ftoa(r.Normalized),
			r.Interpretation,
			r.SubmittedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportWideCSV renders a wide-format CSV with one participant per row and
// one column per item, holding the adjusted (clamped, reverse-transformed)
// item values. Column order follows the template's question order.
func ExportWideCSV(tpl *scoring.Template, subs []*Submission) ([]byte, error) {
	byParticipant := map[string]map[string]float64{}
	for _, sub := range subs {
		values := tpl.AdjustedValues(sub.Responses)
		if byParticipant[sub.ParticipantID] == nil {
			byParticipant[sub.ParticipantID] = map[string]float64{}
		}
		for id, v := range values {
			byParticipant[sub.ParticipantID][id] = v
		}
	}

	pids := make([]string, 0, len(byParticipant))
	for pid := range byParticipant {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"participant_id"}
	for _, q := range tpl.Questions {
		header = append(header, q.ID)
	}
	_ = w.Write(header)
	for _, pid := range pids {
		row := make([]string, 0, 1+len(tpl.Questions))
		row = append(row, pid)
		for _, q := range tpl.Questions {
			if v, ok := byParticipant[pid][q.ID]; ok {
				row = append(row, ftoa(v))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
