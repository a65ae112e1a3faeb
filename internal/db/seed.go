package db

import (
	"context"
	"time"

	"github.com/nagrik-seva/backend/internal/models"
)

type seedIssue struct {
	params CreateIssueParams
	// statuses the issue has moved through after being reported, in order
	chain []string
}

var seedIssues = []seedIssue{
	{
		params: CreateIssueParams{
			Description:    "Garbage piled up at the corner of MG Road",
			Category:       "Waste",
			Location:       "MG Road, Block A",
			AffectedCount:  12,
			DaysUnresolved: 3,
		},
		chain: []string{models.StatusForwarded, models.StatusInProgress},
	},
	{
		params: CreateIssueParams{
			Description:    "Street light flickering near community park",
			Category:       "Energy",
			Location:       "Sector 4 Park",
			AffectedCount:  50,
			DaysUnresolved: 1,
		},
	},
	{
		params: CreateIssueParams{
			Description:    "Water pipe leaking, flooding the street",
			Category:       "Water",
			Location:       "Market Street",
			AffectedCount:  5,
			DaysUnresolved: 2,
		},
		chain: []string{models.StatusForwarded},
	},
	{
		params: CreateIssueParams{
			Description:    "Large pothole causing traffic slowing",
			Category:       "Transport",
			Location:       "Main Highway Exit",
			AffectedCount:  100,
			DaysUnresolved: 0,
		},
		chain: []string{models.StatusForwarded, models.StatusInProgress, models.StatusResolved},
	},
}

const greeting = "Hello! I am Nagrik Seva, your civic help partner. Describe your issue, and I'll help you report it."

// Seed installs the fixed demo fixtures: four issues spanning every lifecycle
// status and category family, and one assistant greeting. Histories are built
// by replaying transitions through the store so every invariant the store
// enforces holds for seeded records too.
func Seed(ctx context.Context, store Store) error {
	for _, seed := range seedIssues {
		issue, err := store.CreateIssue(ctx, seed.params)
		if err != nil {
			return err
		}
		for _, status := range seed.chain {
			updates := append(issue.Updates, models.StatusUpdate{Status: status, Date: time.Now().UTC()})
			issue, err = store.UpdateIssueStatus(ctx, issue.ID, status, updates)
			if err != nil {
				return err
			}
		}
	}

	_, err := store.CreateMessage(ctx, CreateMessageParams{Role: "assistant", Content: greeting})
	return err
}
