package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nagrik-seva/backend/internal/models"
)

// MemStore is the shipped default backend: two keyed collections plus two
// monotonic counters, guarded by a single mutex. State lives for the process
// lifetime and is lost on restart.
type MemStore struct {
	mu         sync.Mutex
	issues     map[int]models.Issue
	messages   map[int]models.Message
	issueSeq   int
	messageSeq int
}

func NewMemStore() *MemStore {
	return &MemStore{
		issues:   map[int]models.Issue{},
		messages: map[int]models.Message{},
	}
}

func (s *MemStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		out = append(out, cloneIssue(issue))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemStore) GetIssue(ctx context.Context, id int) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}
	return cloneIssue(issue), nil
}

func (s *MemStore) CreateIssue(ctx context.Context, params CreateIssueParams) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issueSeq++
	now := time.Now().UTC()

	issue := models.Issue{
		ID:             s.issueSeq,
		Description:    params.Description,
		Category:       params.Category,
		Location:       params.Location,
		Status:         params.Status,
		AffectedCount:  params.AffectedCount,
		DaysUnresolved: params.DaysUnresolved,
		CreatedAt:      now,
		UserID:         params.UserID,
		Lat:            params.Lat,
		Lng:            params.Lng,
	}
	if !models.IsValidStatus(issue.Status) {
		issue.Status = models.StatusReported
	}
	if issue.AffectedCount < 1 {
		issue.AffectedCount = 1
	}
	if issue.DaysUnresolved < 0 {
		issue.DaysUnresolved = 0
	}
	// The seeded entry carries the issue's initial status so the history tail
	// always matches the current status, even for issues created mid-lifecycle.
	issue.Updates = []models.StatusUpdate{{Status: issue.Status, Date: now}}

	s.issues[issue.ID] = issue
	return cloneIssue(issue), nil
}

func (s *MemStore) UpdateIssueStatus(ctx context.Context, id int, status string, updates []models.StatusUpdate) (models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issues[id]
	if !ok {
		return models.Issue{}, ErrNotFound
	}

	issue.Status = status
	issue.Updates = append([]models.StatusUpdate(nil), updates...)
	if status == models.StatusResolved && issue.ResolvedAt == nil {
		now := time.Now().UTC()
		issue.ResolvedAt = &now
	}

	s.issues[id] = issue
	return cloneIssue(issue), nil
}

// SimulateDays bumps every non-Resolved issue under one mutex hold, so an
// issue cannot be resolved halfway through the sweep and still accrue days.
func (s *MemStore) SimulateDays(ctx context.Context, days int) (int, error) {
	if days < 0 {
		return 0, ErrNegativeDays
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := 0
	for id, issue := range s.issues {
		if issue.Status == models.StatusResolved {
			continue
		}
		issue.DaysUnresolved += days
		s.issues[id] = issue
		touched++
	}
	return touched, nil
}

func (s *MemStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		out = append(out, msg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateMessage(ctx context.Context, params CreateMessageParams) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageSeq++
	msg := models.Message{
		ID:        s.messageSeq,
		Role:      params.Role,
		Content:   params.Content,
		CreatedAt: time.Now().UTC(),
		UserID:    params.UserID,
	}
	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Close() {}

func cloneIssue(issue models.Issue) models.Issue {
	issue.Updates = append([]models.StatusUpdate(nil), issue.Updates...)
	if issue.ResolvedAt != nil {
		t := *issue.ResolvedAt
		issue.ResolvedAt = &t
	}
	if issue.Lat != nil {
		v := *issue.Lat
		issue.Lat = &v
	}
	if issue.Lng != nil {
		v := *issue.Lng
		issue.Lng = &v
	}
	return issue
}
