package db

import (
	"context"
	"errors"
	"testing"

	"github.com/nagrik-seva/backend/internal/models"
)

func TestCreateIssueDefaults(t *testing.T) {
	store := NewMemStore()
	issue, err := store.CreateIssue(context.Background(), CreateIssueParams{
		Description: "Garbage near park",
		Category:    "Waste",
		Location:    "Park Rd",
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	if issue.ID != 1 {
		t.Fatalf("expected id 1, got %d", issue.ID)
	}
	if issue.Status != models.StatusReported {
		t.Fatalf("expected status Reported, got %s", issue.Status)
	}
	if issue.AffectedCount != 1 {
		t.Fatalf("expected affectedCount 1, got %d", issue.AffectedCount)
	}
	if issue.DaysUnresolved != 0 {
		t.Fatalf("expected daysUnresolved 0, got %d", issue.DaysUnresolved)
	}
	if issue.ResolvedAt != nil {
		t.Fatalf("expected resolvedAt unset")
	}
	if len(issue.Updates) != 1 || issue.Updates[0].Status != models.StatusReported {
		t.Fatalf("expected single Reported update, got %+v", issue.Updates)
	}
}

func TestCreateIssueSeedsHistoryWithInitialStatus(t *testing.T) {
	store := NewMemStore()
	issue, err := store.CreateIssue(context.Background(), CreateIssueParams{
		Description: "Pipe burst",
		Category:    "Water",
		Location:    "Market Street",
		Status:      models.StatusForwarded,
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	if len(issue.Updates) != 1 || issue.Updates[0].Status != models.StatusForwarded {
		t.Fatalf("expected history seeded with Forwarded, got %+v", issue.Updates)
	}
}

func TestIssueIDsStrictlyIncrease(t *testing.T) {
	store := NewMemStore()
	last := 0
	for i := 0; i < 25; i++ {
		issue, err := store.CreateIssue(context.Background(), CreateIssueParams{
			Description: "d", Category: "Waste", Location: "l",
		})
		if err != nil {
			t.Fatalf("create issue: %v", err)
		}
		if issue.ID <= last {
			t.Fatalf("expected id > %d, got %d", last, issue.ID)
		}
		last = issue.ID
	}
}

func TestListIssuesNewestFirst(t *testing.T) {
	store := NewMemStore()
	for i := 0; i < 3; i++ {
		if _, err := store.CreateIssue(context.Background(), CreateIssueParams{
			Description: "d", Category: "Waste", Location: "l",
		}); err != nil {
			t.Fatalf("create issue: %v", err)
		}
	}
	issues, err := store.ListIssues(context.Background())
	if err != nil {
		t.Fatalf("list issues: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].ID != 3 || issues[2].ID != 1 {
		t.Fatalf("expected descending ids, got %d..%d", issues[0].ID, issues[2].ID)
	}
}

func TestGetIssueNotFound(t *testing.T) {
	store := NewMemStore()
	if _, err := store.GetIssue(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateIssueStatusSetsResolvedAtOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	issue, err := store.CreateIssue(ctx, CreateIssueParams{Description: "d", Category: "Waste", Location: "l"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	updates := append(issue.Updates, models.StatusUpdate{Status: models.StatusResolved, Date: issue.CreatedAt})
	resolved, err := store.UpdateIssueStatus(ctx, issue.ID, models.StatusResolved, updates)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatalf("expected resolvedAt set on transition to Resolved")
	}
	firstResolvedAt := *resolved.ResolvedAt

	updates = append(resolved.Updates, models.StatusUpdate{Status: models.StatusReported, Date: issue.CreatedAt})
	reopened, err := store.UpdateIssueStatus(ctx, issue.ID, models.StatusReported, updates)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if reopened.ResolvedAt == nil || !reopened.ResolvedAt.Equal(firstResolvedAt) {
		t.Fatalf("expected resolvedAt to remain %v, got %v", firstResolvedAt, reopened.ResolvedAt)
	}

	updates = append(reopened.Updates, models.StatusUpdate{Status: models.StatusResolved, Date: issue.CreatedAt})
	again, err := store.UpdateIssueStatus(ctx, issue.ID, models.StatusResolved, updates)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !again.ResolvedAt.Equal(firstResolvedAt) {
		t.Fatalf("expected resolvedAt unchanged on second resolution")
	}
}

func TestUpdateIssueStatusNotFound(t *testing.T) {
	_, err := NewMemStore().UpdateIssueStatus(context.Background(), 7, models.StatusForwarded, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulateDaysBulk(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	open, err := store.CreateIssue(ctx, CreateIssueParams{Description: "d", Category: "Waste", Location: "l"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	resolved, err := store.CreateIssue(ctx, CreateIssueParams{Description: "d", Category: "Water", Location: "l"})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}
	updates := append(resolved.Updates, models.StatusUpdate{Status: models.StatusResolved, Date: resolved.CreatedAt})
	if _, err := store.UpdateIssueStatus(ctx, resolved.ID, models.StatusResolved, updates); err != nil {
		t.Fatalf("update status: %v", err)
	}

	touched, err := store.SimulateDays(ctx, 4)
	if err != nil {
		t.Fatalf("simulate days: %v", err)
	}
	if touched != 1 {
		t.Fatalf("expected 1 issue touched, got %d", touched)
	}

	gotOpen, err := store.GetIssue(ctx, open.ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if gotOpen.DaysUnresolved != 4 {
		t.Fatalf("expected 4 days unresolved, got %d", gotOpen.DaysUnresolved)
	}
	gotResolved, err := store.GetIssue(ctx, resolved.ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if gotResolved.DaysUnresolved != 0 {
		t.Fatalf("expected resolved issue frozen at 0 days, got %d", gotResolved.DaysUnresolved)
	}
}

func TestSimulateDaysRejectsNegative(t *testing.T) {
	store := NewMemStore()
	if _, err := store.SimulateDays(context.Background(), -1); !errors.Is(err, ErrNegativeDays) {
		t.Fatalf("expected ErrNegativeDays, got %v", err)
	}
}

func TestReturnedIssueDoesNotAliasStoredRecord(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	lat, lng := 28.6139, 77.2090
	issue, err := store.CreateIssue(ctx, CreateIssueParams{
		Description: "d", Category: "Waste", Location: "l", Lat: &lat, Lng: &lng,
	})
	if err != nil {
		t.Fatalf("create issue: %v", err)
	}

	*issue.Lat = 0
	*issue.Lng = 0
	issue.Updates[0].Status = models.StatusResolved

	got, err := store.GetIssue(ctx, issue.ID)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if *got.Lat != lat || *got.Lng != lng {
		t.Fatalf("stored coordinates mutated through returned copy: %v,%v", *got.Lat, *got.Lng)
	}
	if got.Updates[0].Status != models.StatusReported {
		t.Fatalf("stored history mutated through returned copy: %s", got.Updates[0].Status)
	}
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	for _, content := range []string{"first", "second", "third"} {
		if _, err := store.CreateMessage(ctx, CreateMessageParams{Role: "user", Content: content}); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}
	messages, err := store.ListMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Content != "first" || messages[2].Content != "third" {
		t.Fatalf("expected ascending order, got %+v", messages)
	}
}

func TestSeedFixtures(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	issues, err := store.ListIssues(ctx)
	if err != nil {
		t.Fatalf("list issues: %v", err)
	}
	if len(issues) != 4 {
		t.Fatalf("expected 4 seeded issues, got %d", len(issues))
	}

	statuses := map[string]bool{}
	for _, issue := range issues {
		statuses[issue.Status] = true
		if len(issue.Updates) == 0 {
			t.Fatalf("issue %d has empty history", issue.ID)
		}
		if last := issue.Updates[len(issue.Updates)-1]; last.Status != issue.Status {
			t.Fatalf("issue %d history tail %s does not match status %s", issue.ID, last.Status, issue.Status)
		}
		for i := 1; i < len(issue.Updates); i++ {
			if issue.Updates[i].Date.Before(issue.Updates[i-1].Date) {
				t.Fatalf("issue %d history dates decrease at entry %d", issue.ID, i)
			}
		}
	}
	for _, s := range models.StatusCycle {
		if !statuses[s] {
			t.Fatalf("expected a seeded issue with status %s", s)
		}
	}

	messages, err := store.ListMessages(ctx)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Role != "assistant" {
		t.Fatalf("expected one assistant greeting, got %+v", messages)
	}
}
