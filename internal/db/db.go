package db

import (
	"context"
	"errors"

	"github.com/nagrik-seva/backend/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrNegativeDays = errors.New("days must be non-negative")
)

// CreateIssueParams carries issue creation fields. Zero values fall back to
// the documented defaults (status Reported, affectedCount 1, daysUnresolved 0).
// DaysUnresolved is honored only at the store level; the HTTP layer never
// exposes it.
type CreateIssueParams struct {
	Description    string
	Category       string
	Location       string
	Status         string
	AffectedCount  int
	DaysUnresolved int
	UserID         string
	Lat            *float64
	Lng            *float64
}

type CreateMessageParams struct {
	Role    string
	Content string
	UserID  string
}

// Store owns the canonical issue and message collections. All mutation goes
// through it; callers reference records by id only.
type Store interface {
	ListIssues(ctx context.Context) ([]models.Issue, error)
	GetIssue(ctx context.Context, id int) (models.Issue, error)
	CreateIssue(ctx context.Context, params CreateIssueParams) (models.Issue, error)
	UpdateIssueStatus(ctx context.Context, id int, status string, updates []models.StatusUpdate) (models.Issue, error)
	// SimulateDays adds days to the unresolved counter of every issue that
	// is not Resolved, as one atomic bulk mutation. It reports the number of
	// issues touched and rejects negative days with ErrNegativeDays.
	SimulateDays(ctx context.Context, days int) (int, error)

	ListMessages(ctx context.Context) ([]models.Message, error)
	CreateMessage(ctx context.Context, params CreateMessageParams) (models.Message, error)

	Ping(ctx context.Context) error
	Close()
}
