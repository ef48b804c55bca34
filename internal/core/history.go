package core

import (
	"context"
	"errors"
)

// ErrNoHistory is returned when no submission log is configured.
var ErrNoHistory = errors.New("submission history not configured")

// DefaultHistoryLimit caps how many submissions are listed when no limit is given.
const DefaultHistoryLimit = 50

// SubmissionHistory lists previously emitted submissions, newest first.
type SubmissionHistory interface {
	Recent(ctx context.Context, limit int) ([]Submission, error)
}

// HasHistory reports whether past submissions can be listed.
func (s *Service) HasHistory() bool {
	return s.history != nil
}

// RecentSubmissions returns up to limit past submissions, newest first.
func (s *Service) RecentSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	if s.history == nil {
		return nil, ErrNoHistory
	}
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.history.Recent(ctx, limit)
}
