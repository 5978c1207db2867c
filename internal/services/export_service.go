package services

import (
	"errors"
	"time"

	"github.com/havenwell/Haven/internal/scoring"
)

// ExportStore abstracts the reads behind CSV exports.
type ExportStore interface {
	ListSubmissionsByInstrument(instrument string) ([]*Submission, error)
	AddAudit(e AuditEntry)
}

type ExportParams struct {
	Instrument string
	Format     string // "long" (default) or "wide"
	Actor      string
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders stored submissions of one instrument to CSV for
// offline analysis.
type ExportService struct {
	store    ExportStore
	registry *scoring.Registry
}

func NewExportService(store ExportStore, registry *scoring.Registry) *ExportService {
	return &ExportService{store: store, registry: registry}
}

func (s *ExportService) ExportCSV(params ExportParams) (*ExportResult, error) {
	if params.Instrument == "" {
		return nil, NewInvalidError("instrument required")
	}
	tpl, err := s.registry.Resolve(params.Instrument)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownInstrument) {
			return nil, NewNotFoundError("unknown assessment type: " + params.Instrument)
		}
		return nil, err
	}
	subs, err := s.store.ListSubmissionsByInstrument(tpl.ID)
	if err != nil {
		return nil, err
	}
	format := params.Format
	if format == "" {
		format = "long"
	}

	var data []byte
	switch format {
	case "long":
		data, err = ExportLongCSV(buildLongRows(subs))
	case "wide":
		data, err = ExportWideCSV(tpl, subs)
	default:
		return nil, NewInvalidError("unsupported format")
	}
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: time.Now().UTC(), Actor: params.Actor, Action: "export_" + format, Target: tpl.ID})
	return &ExportResult{Filename: tpl.ID + "_" + format + ".csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
}

func buildLongRows(subs []*Submission) []LongRow {
	out := make([]LongRow, 0, len(subs))
	for _, sub := range subs {
		row := LongRow{
			SubmissionID:  sub.ID,
			ParticipantID: sub.ParticipantID,
			Instrument:    sub.Instrument,
			SubmittedAt:   sub.SubmittedAt.Format(time.RFC3339),
		}
		if sub.Result != nil {
			row.RawScore = sub.Result.RawScore
			row.Normalized = sub.Result.NormalizedScore
			row.Interpretation = sub.Result.Interpretation
		}
		out = append(out, row)
	}
	return out
}
