// Package db provides the SQLite-backed Store used in production. Answer
// maps, score results, and template definitions are stored as JSON text
// columns; everything queried on gets its own column.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/havenwell/Haven/internal/api"
	"github.com/havenwell/Haven/internal/scoring"
	"github.com/havenwell/Haven/internal/services"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

var _ api.Store = (*SQLiteStore)(nil)

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

func decodeResponses(s string) scoring.ResponseMap {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out scoring.ResponseMap
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		log.Printf("sqlite store: decode responses: %v", err)
		return nil
	}
	return out
}

func decodeResult(ns sql.NullString) *scoring.ScoreResult {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out scoring.ScoreResult
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		log.Printf("sqlite store: decode result: %v", err)
		return nil
	}
	return &out
}

func decodeDefinition(s string) *scoring.Template {
	var out scoring.Template
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		log.Printf("sqlite store: decode template definition: %v", err)
		return nil
	}
	return &out
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Printf("sqlite store: decode time %q: %v", s, err)
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) AddParticipant(p *services.Participant) (*services.Participant, error) {
	existing, err := s.GetParticipant(p.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	_, err = s.db.Exec(
		"INSERT INTO participants (id, email, created_at) VALUES (?, ?, ?)",
		p.ID, p.Email, encodeTime(p.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	out := *p
	return &out, nil
}

func (s *SQLiteStore) GetParticipant(id string) (*services.Participant, error) {
	row := s.db.QueryRow("SELECT id, email, created_at FROM participants WHERE id = ?", id)
	return scanParticipant(row)
}

func (s *SQLiteStore) GetParticipantByEmail(email string) (*services.Participant, error) {
	row := s.db.QueryRow(
		"SELECT id, email, created_at FROM participants WHERE email <> '' AND email = ? COLLATE NOCASE",
		email,
	)
	return scanParticipant(row)
}

func scanParticipant(row *sql.Row) (*services.Participant, error) {
	var p services.Participant
	var createdAt string
	switch err := row.Scan(&p.ID, &p.Email, &createdAt); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scan participant: %w", err)
	}
	p.CreatedAt = decodeTime(createdAt)
	return &p, nil
}

// DeleteParticipantByID removes a participant. Soft delete clears PII and
// keeps anonymized submissions for insights; hard removes submissions too.
func (s *SQLiteStore) DeleteParticipantByID(id string, hard bool) (bool, error) {
	if !hard {
		res, err := s.db.Exec("UPDATE participants SET email = '' WHERE id = ?", id)
		if err != nil {
			return false, fmt.Errorf("soft delete participant: %w", err)
		}
		n, _ := res.RowsAffected()
		return n > 0, nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin delete participant: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec("DELETE FROM submissions WHERE participant_id = ?", id); err != nil {
		return false, fmt.Errorf("delete submissions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM participants WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete participant: %w", err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete participant: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) AddSubmission(sub *services.Submission) error {
	responses, err := encodeJSON(sub.Responses)
	if err != nil {
		return err
	}
	result := sql.NullString{}
	if sub.Result != nil {
		enc, err := encodeJSON(sub.Result)
		if err != nil {
			return err
		}
		result = sql.NullString{String: enc, Valid: true}
	}
	_, err = s.db.Exec(
		"INSERT INTO submissions (id, participant_id, instrument, responses, result, submitted_at) VALUES (?, ?, ?, ?, ?, ?)",
		sub.ID, sub.ParticipantID, sub.Instrument, responses, result, encodeTime(sub.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListSubmissionsByParticipant(pid string) ([]*services.Submission, error) {
	rows, err := s.db.Query(
		"SELECT id, participant_id, instrument, responses, result, submitted_at FROM submissions WHERE participant_id = ? ORDER BY submitted_at, id",
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions by participant: %w", err)
	}
	return scanSubmissions(rows)
}

func (s *SQLiteStore) ListSubmissionsByInstrument(instrument string) ([]*services.Submission, error) {
	rows, err := s.db.Query(
		"SELECT id, participant_id, instrument, responses, result, submitted_at FROM submissions WHERE instrument = ? ORDER BY submitted_at, id",
		instrument,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions by instrument: %w", err)
	}
	return scanSubmissions(rows)
}

func scanSubmissions(rows *sql.Rows) ([]*services.Submission, error) {
	defer rows.Close()
	out := []*services.Submission{}
	for rows.Next() {
		var sub services.Submission
		var responses, submittedAt string
		var result sql.NullString
		if err := rows.Scan(&sub.ID, &sub.ParticipantID, &sub.Instrument, &responses, &result, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Responses = decodeResponses(responses)
		sub.Result = decodeResult(result)
		sub.SubmittedAt = decodeTime(submittedAt)
		out = append(out, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) InsertTemplate(t *services.CustomTemplate) (*services.CustomTemplate, error) {
	definition, err := encodeJSON(t.Definition)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		"INSERT INTO templates (id, tenant_id, definition, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		t.ID, t.TenantID, definition, encodeTime(t.CreatedAt), encodeTime(t.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	out := *t
	return &out, nil
}

func (s *SQLiteStore) GetTemplate(id string) (*services.CustomTemplate, error) {
	row := s.db.QueryRow("SELECT id, tenant_id, definition, created_at, updated_at FROM templates WHERE id = ?", id)
	var t services.CustomTemplate
	var definition, createdAt, updatedAt string
	switch err := row.Scan(&t.ID, &t.TenantID, &definition, &createdAt, &updatedAt); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scan template: %w", err)
	}
	t.Definition = decodeDefinition(definition)
	t.CreatedAt = decodeTime(createdAt)
	t.UpdatedAt = decodeTime(updatedAt)
	return &t, nil
}

func (s *SQLiteStore) UpdateTemplate(t *services.CustomTemplate) error {
	definition, err := encodeJSON(t.Definition)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE templates SET tenant_id = ?, definition = ?, updated_at = ? WHERE id = ?",
		t.TenantID, definition, encodeTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("template not found: " + t.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteTemplate(id string) error {
	if _, err := s.db.Exec("DELETE FROM templates WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListTemplatesByTenant(tenantID string) ([]*services.CustomTemplate, error) {
	rows, err := s.db.Query(
		"SELECT id, tenant_id, definition, created_at, updated_at FROM templates WHERE tenant_id = ? ORDER BY id",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	out := []*services.CustomTemplate{}
	for rows.Next() {
		var t services.CustomTemplate
		var definition, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.TenantID, &definition, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Definition = decodeDefinition(definition)
		t.CreatedAt = decodeTime(createdAt)
		t.UpdatedAt = decodeTime(updatedAt)
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) AddTenant(t *services.Tenant) error {
	_, err := s.db.Exec(
		"INSERT INTO tenants (id, name) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET name = excluded.name",
		t.ID, t.Name,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	_, err := s.db.Exec(
		"INSERT INTO users (id, email, pass_hash, tenant_id, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Email, u.PassHash, u.TenantID, encodeTime(u.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(
		"SELECT id, email, pass_hash, tenant_id, created_at FROM users WHERE email = ? COLLATE NOCASE",
		email,
	)
	var u services.User
	var createdAt string
	switch err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.TenantID, &createdAt); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = decodeTime(createdAt)
	return &u, nil
}

func (s *SQLiteStore) AddAudit(e services.AuditEntry) {
	_, err := s.db.Exec(
		"INSERT INTO audit_log (time, actor, action, target, note) VALUES (?, ?, ?, ?, ?)",
		encodeTime(e.Time), e.Actor, e.Action, e.Target, e.Note,
	)
	if err != nil {
		log.Printf("sqlite store: insert audit: %v", err)
	}
}

func (s *SQLiteStore) ListAudit() []services.AuditEntry {
	rows, err := s.db.Query("SELECT time, actor, action, target, note FROM audit_log ORDER BY id")
	if err != nil {
		log.Printf("sqlite store: list audit: %v", err)
		return nil
	}
	defer rows.Close()
	out := []services.AuditEntry{}
	for rows.Next() {
		var e services.AuditEntry
		var at string
		if err := rows.Scan(&at, &e.Actor, &e.Action, &e.Target, &e.Note); err != nil {
			log.Printf("sqlite store: scan audit: %v", err)
			return out
		}
		e.Time = decodeTime(at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		log.Printf("sqlite store: iterate audit: %v", err)
	}
	return out
}
