package core

import (
	"context"
	"errors"
	"time"
)

// Service wires the artwork fetcher, submission sinks, and session registry.
// It is the entry point front ends use to obtain tables.
type Service struct {
	fetcher  PageFetcher
	emitters []Emitter
	history  SubmissionHistory
	sessions *Sessions
}

// ServiceConfig holds the collaborators of a Service.
type ServiceConfig struct {
	// Fetcher retrieves artwork pages (required).
	Fetcher PageFetcher

	// Emitters receive submissions in addition to the structured log.
	Emitters []Emitter

	// History lists past submissions; nil disables the listing.
	History SubmissionHistory

	// SessionTTL is how long idle sessions are kept (default: 30m).
	SessionTTL time.Duration
}

// NewService creates a new Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("page fetcher is required")
	}

	s := &Service{
		fetcher:  cfg.Fetcher,
		emitters: append([]Emitter{LogEmitter{}}, cfg.Emitters...),
		history:  cfg.History,
	}
	s.sessions = NewSessions(s.NewTable, cfg.SessionTTL)
	return s, nil
}

// NewTable builds an empty table wired to the service's fetcher and emitters.
func (s *Service) NewTable(sessionID string) *Table {
	return NewTable(s.fetcher,
		WithSessionID(sessionID),
		WithEmitters(s.emitters...),
	)
}

// Sessions returns the session registry.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}

// Open returns the session for id, creating it when missing. A new session
// is mounted before returning. A failed first load is logged by the table
// and leaves it empty.
func (s *Service) Open(ctx context.Context, id string) (*Session, bool) {
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		_ = s.Mount(ctx, sess)
	}
	return sess, created
}

// Mount starts sess over the way a fresh page load does: pending notices are
// dropped, the table is reset, and page 0 is fetched. The returned error is
// the load error; the table stays empty on failure and a later Mount retries.
func (s *Service) Mount(ctx context.Context, sess *Session) error {
	sess.TakeNotices()
	sess.Table.Reset()
	return sess.Table.LoadPage(ctx, 0)
}
