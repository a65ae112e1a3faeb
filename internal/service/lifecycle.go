package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nagrik-seva/backend/internal/db"
	"github.com/nagrik-seva/backend/internal/models"
)

// LifecycleService layers the two simulation policies on the store:
// status cycling and unresolved-day accrual.
type LifecycleService struct {
	Store  db.Store
	Logger zerolog.Logger
}

// NextStatus returns the status following current in the fixed cycle.
// Resolved wraps back to Reported: the demo clock treats the lifecycle as
// circular rather than terminal, and that wrap is intentional.
func NextStatus(current string) string {
	for i, s := range models.StatusCycle {
		if s == current {
			return models.StatusCycle[(i+1)%len(models.StatusCycle)]
		}
	}
	return models.StatusCycle[0]
}

// AdvanceStatus moves an issue one step along the cycle and appends the
// transition to its history.
func (s *LifecycleService) AdvanceStatus(ctx context.Context, id int) (models.Issue, error) {
	issue, err := s.Store.GetIssue(ctx, id)
	if err != nil {
		return models.Issue{}, err
	}

	next := NextStatus(issue.Status)
	updates := append(issue.Updates, models.StatusUpdate{Status: next, Date: time.Now().UTC()})

	updated, err := s.Store.UpdateIssueStatus(ctx, id, next, updates)
	if err != nil {
		return models.Issue{}, err
	}
	s.Logger.Info().
		Int("issue_id", id).
		Str("from", issue.Status).
		Str("to", next).
		Msg("status advanced")
	return updated, nil
}

// SimulateDays adds days to the unresolved counter of every issue that is
// not Resolved. Resolved issues stay frozen at their value from the moment
// of resolution. The sweep runs as one store-level critical section, so an
// issue resolved concurrently can never accrue days past its resolution.
func (s *LifecycleService) SimulateDays(ctx context.Context, days int) error {
	if days < 0 {
		return db.ErrNegativeDays
	}
	if days == 0 {
		return nil
	}

	touched, err := s.Store.SimulateDays(ctx, days)
	if err != nil {
		return err
	}
	s.Logger.Info().Int("days", days).Int("issues", touched).Msg("simulated time passing")
	return nil
}
