package models

import "time"

const (
	StatusReported   = "Reported"
	StatusForwarded  = "Forwarded"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// StatusCycle is the fixed lifecycle order used by the simulation engine.
// Advancing past Resolved wraps back to Reported.
var StatusCycle = []string{StatusReported, StatusForwarded, StatusInProgress, StatusResolved}

func IsValidStatus(status string) bool {
	for _, s := range StatusCycle {
		if s == status {
			return true
		}
	}
	return false
}

type StatusUpdate struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

type Issue struct {
	ID             int            `json:"id"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Location       string         `json:"location"`
	Status         string         `json:"status"`
	AffectedCount  int            `json:"affectedCount"`
	DaysUnresolved int            `json:"daysUnresolved"`
	CreatedAt      time.Time      `json:"createdAt"`
	ResolvedAt     *time.Time     `json:"resolvedAt,omitempty"`
	Updates        []StatusUpdate `json:"updates"`
	UserID         string         `json:"userId,omitempty"`
	Lat            *float64       `json:"lat,omitempty"`
	Lng            *float64       `json:"lng,omitempty"`
}

type Message struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `json:"userId,omitempty"`
}

// ClassificationResult is the guidance bundle produced by the text
// classifier. It is computed per request and never stored.
type ClassificationResult struct {
	Category   string   `json:"category"`
	Department string   `json:"department"`
	Importance string   `json:"importance"`
	Helpline   string   `json:"helpline"`
	Actions    []string `json:"actions"`
	RiskLevel  string   `json:"riskLevel"`
	Advice     string   `json:"advice"`
}
