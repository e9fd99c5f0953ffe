// Package history records every form created from an uploaded document so
// the web UI can list past conversions.
package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Record struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FormID        string `json:"form_id"`
	ResponderURI  string `json:"responder_uri"`
	SourceKey     string `json:"source_key,omitempty"` // blob key of the uploaded document
	SectionCount  int    `json:"section_count"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     int64  `json:"created_at"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Put inserts a record, assigning an ID and timestamp when absent.
func (s *Store) Put(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO forms (id, title, form_id, responder_uri, source_key, section_count, question_count, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rec.ID, rec.Title, rec.FormID, rec.ResponderURI, rec.SourceKey,
		rec.SectionCount, rec.QuestionCount, rec.CreatedAt)
	return rec, err
}

// Get returns the record with the given ID, or sql.ErrNoRows.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, form_id, responder_uri, source_key, section_count, question_count, created_at
		 FROM forms WHERE id = $1`, id).
		Scan(&r.ID, &r.Title, &r.FormID, &r.ResponderURI, &r.SourceKey,
			&r.SectionCount, &r.QuestionCount, &r.CreatedAt)
	return r, err
}

// List returns records newest first, capped at limit (50 when <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, form_id, responder_uri, source_key, section_count, question_count, created_at
		 FROM forms ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Title, &r.FormID, &r.ResponderURI, &r.SourceKey,
			&r.SectionCount, &r.QuestionCount, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
