// Package store persists accepted submissions in PostgreSQL.
//
// The store is optional: without DATABASE_URL the server runs with the
// structured log as the only submission sink.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of pgx used by the store. Both *pgxpool.Pool and
// pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS artwork_submissions (
	id              UUID PRIMARY KEY,
	session_id      TEXT        NOT NULL,
	selection_limit BIGINT      NOT NULL,
	artwork_ids     BIGINT[]    NOT NULL,
	records         JSONB       NOT NULL,
	client_ip       TEXT,
	user_agent      TEXT,
	submitted_at    TIMESTAMPTZ NOT NULL
);
ALTER TABLE artwork_submissions
	ALTER COLUMN selection_limit TYPE BIGINT,
	ALTER COLUMN artwork_ids TYPE BIGINT[];
CREATE INDEX IF NOT EXISTS artwork_submissions_submitted_at_idx
	ON artwork_submissions (submitted_at DESC);
`

// Submissions records accepted selections. It implements core.Emitter and
// core.SubmissionHistory.
type Submissions struct {
	db DBTX
}

// NewSubmissions creates a store on db. Call Migrate before first use.
func NewSubmissions(db DBTX) *Submissions {
	return &Submissions{db: db}
}

// Migrate creates the submissions table if it does not exist.
func (s *Submissions) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("submission store: migrate: %w", err)
	}
	return nil
}

// Emit inserts one submission.
func (s *Submissions) Emit(ctx context.Context, sub core.Submission) error {
	id, err := uuid.Parse(sub.ID)
	if err != nil {
		return fmt.Errorf("submission store: invalid id %q: %w", sub.ID, err)
	}

	records, err := json.Marshal(sub.Records)
	if err != nil {
		return fmt.Errorf("submission store: encode records: %w", err)
	}

	ids := make([]int64, len(sub.Records))
	for i, a := range sub.Records {
		ids[i] = int64(a.ID)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO artwork_submissions
			(id, session_id, selection_limit, artwork_ids, records, client_ip, user_agent, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pgtype.UUID{Bytes: id, Valid: true},
		sub.SessionID,
		int64(sub.Limit),
		ids,
		records,
		toPgText(sub.ClientIP),
		toPgText(sub.UserAgent),
		pgtype.Timestamptz{Time: sub.SubmittedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("submission store: insert %s: %w", sub.ID, err)
	}
	return nil
}

// Recent returns up to limit submissions, newest first.
func (s *Submissions) Recent(ctx context.Context, limit int) ([]core.Submission, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, selection_limit, records, client_ip, user_agent, submitted_at
		FROM artwork_submissions
		ORDER BY submitted_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("submission store: query recent: %w", err)
	}
	defer rows.Close()

	subs := make([]core.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submission store: scan: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submission store: rows: %w", err)
	}
	return subs, nil
}

// scanSubmission scans a single row into a Submission.
func scanSubmission(rows pgx.Rows) (*core.Submission, error) {
	var (
		id          pgtype.UUID
		sessionID   string
		limit       int64
		records     []byte
		clientIP    pgtype.Text
		userAgent   pgtype.Text
		submittedAt pgtype.Timestamptz
	)

	if err := rows.Scan(&id, &sessionID, &limit, &records, &clientIP, &userAgent, &submittedAt); err != nil {
		return nil, err
	}

	sub := &core.Submission{
		SessionID:   sessionID,
		Limit:       int(limit),
		ClientIP:    clientIP.String,
		UserAgent:   userAgent.String,
		SubmittedAt: submittedAt.Time.UTC(),
	}
	if id.Valid {
		sub.ID = uuid.UUID(id.Bytes).String()
	}
	if err := json.Unmarshal(records, &sub.Records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return sub, nil
}

func toPgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
