package metrics

import (
	"time"

	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/ticket"
)

// SprintVelocity is a sprint with the story points completed inside it.
type SprintVelocity struct {
	SprintID        uuid.UUID
	TeamID          uuid.UUID
	TeamName        string
	Name            string
	EndDate         time.Time
	CompletedPoints int
}

// DoneTicket is a resolved ticket row used by resolution-time and
// completed-ticket aggregates.
type DoneTicket struct {
	ID          uuid.UUID
	TeamName    string
	Type        ticket.Type
	StoryPoints *int
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

// TeamOverview is a per-team aggregate row.
type TeamOverview struct {
	TeamID       uuid.UUID
	TeamName     string
	TotalTickets int
	DoneTickets  int
	BugTickets   int
	Members      int
}

// TicketFilter narrows ticket counts. Nil fields are ignored.
type TicketFilter struct {
	TeamID       *uuid.UUID
	Type         *ticket.Type
	CreatedAfter *time.Time
}

// VelocityReport is the mean velocity over the most recent sprints.
type VelocityReport struct {
	AverageVelocity float64 `json:"averageVelocity"`
	SprintsAnalyzed int     `json:"sprintsAnalyzed"`
}

// BugRateReport is the share of bug tickets over a lookback window.
type BugRateReport struct {
	TotalTickets int     `json:"totalTickets"`
	BugTickets   int     `json:"bugTickets"`
	BugRate      float64 `json:"bugRate"`
}

// ResolutionReport is the mean whole-day resolution time of done tickets.
type ResolutionReport struct {
	TicketsAnalyzed       int     `json:"ticketsAnalyzed"`
	AverageResolutionDays float64 `json:"averageResolutionDays"`
}

// CompletedTeam is a per-team slice of the completed-ticket report.
type CompletedTeam struct {
	Completed   int `json:"completed"`
	StoryPoints int `json:"storyPoints"`
}

// CompletedReport groups done tickets by team.
type CompletedReport struct {
	TotalCompleted int                      `json:"totalCompleted"`
	ByTeam         map[string]CompletedTeam `json:"byTeam"`
}

// TeamPerformance is one team's entry in the performance overview.
// Rates are integer percentages in [0, 100].
type TeamPerformance struct {
	Team             string `json:"team"`
	TotalTickets     int    `json:"totalTickets"`
	CompletedTickets int    `json:"completedTickets"`
	CompletionRate   int    `json:"completionRate"`
	BugTickets       int    `json:"bugTickets"`
	BugRate          int    `json:"bugRate"`
	Members          int    `json:"members"`
}
