package core

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/ArtworkTable/internal/logging"
)

// LogEmitter writes every submission, including the full selected set, to
// the structured log.
type LogEmitter struct{}

// Emit implements Emitter.
func (LogEmitter) Emit(ctx context.Context, sub Submission) error {
	ids := make([]int, len(sub.Records))
	for i, a := range sub.Records {
		ids[i] = a.ID
	}

	logging.FromContext(ctx).Info("selected artworks",
		"submission_id", sub.ID,
		"session_id", sub.SessionID,
		"limit", sub.Limit,
		"ids", ids,
		slog.Any("artworks", sub.Records),
	)
	return nil
}
