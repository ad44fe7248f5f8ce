package metrics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sprintlens/sprintlens/internal/team"
	"github.com/sprintlens/sprintlens/internal/ticket"
)

// velocitySprintWindow is how many recently ended sprints the velocity
// average considers.
const velocitySprintWindow = 5

// bugRateLookbackDays is the ticket-creation window for the bug rate.
const bugRateLookbackDays = 90

// Service computes the delivery-metric aggregates. All methods are
// read-only and safe for concurrent use.
type Service struct {
	repo Repository
}

// NewService creates a metrics Service on top of the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindTeamByName resolves a team by case-insensitive exact name.
func (s *Service) FindTeamByName(ctx context.Context, name string) (*team.Team, error) {
	return s.repo.FindTeamByName(ctx, name)
}

// TeamVelocity computes the mean completed story points across the last
// velocitySprintWindow sprints, optionally filtered by team. With no
// qualifying sprints the average is 0.
func (s *Service) TeamVelocity(ctx context.Context, teamID *uuid.UUID) (*VelocityReport, error) {
	sprints, err := s.repo.RecentSprints(ctx, teamID, velocitySprintWindow)
	if err != nil {
		return nil, fmt.Errorf("fetching recent sprints: %w", err)
	}

	if len(sprints) == 0 {
		return &VelocityReport{AverageVelocity: 0, SprintsAnalyzed: 0}, nil
	}

	total := 0
	for _, sp := range sprints {
		total += sp.CompletedPoints
	}

	return &VelocityReport{
		AverageVelocity: round2(float64(total) / float64(len(sprints))),
		SprintsAnalyzed: len(sprints),
	}, nil
}

// BugRate computes the percentage of BUG tickets among all tickets created
// in the last bugRateLookbackDays days, optionally filtered by team. The two
// counts are independent and fetched jointly.
func (s *Service) BugRate(ctx context.Context, teamID *uuid.UUID) (*BugRateReport, error) {
	since := time.Now().UTC().AddDate(0, 0, -bugRateLookbackDays)
	bugType := ticket.TypeBug

	var total, bugs int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.repo.CountTickets(gctx, TicketFilter{TeamID: teamID, CreatedAfter: &since})
		return err
	})
	g.Go(func() error {
		var err error
		bugs, err = s.repo.CountTickets(gctx, TicketFilter{TeamID: teamID, Type: &bugType, CreatedAfter: &since})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("counting tickets: %w", err)
	}

	rate := 0.0
	if total > 0 {
		rate = round2(float64(bugs) / float64(total) * 100)
	}

	return &BugRateReport{TotalTickets: total, BugTickets: bugs, BugRate: rate}, nil
}

// ResolutionTime computes the mean whole-day resolution time of DONE
// tickets, optionally filtered by team. TicketsAnalyzed is 0 when nothing
// has been resolved.
func (s *Service) ResolutionTime(ctx context.Context, teamID *uuid.UUID) (*ResolutionReport, error) {
	tickets, err := s.repo.ListDoneTickets(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching done tickets: %w", err)
	}

	if len(tickets) == 0 {
		return &ResolutionReport{TicketsAnalyzed: 0, AverageResolutionDays: 0}, nil
	}

	totalDays := 0
	for _, t := range tickets {
		totalDays += wholeDays(t.CreatedAt, t.ResolvedAt)
	}

	return &ResolutionReport{
		TicketsAnalyzed:       len(tickets),
		AverageResolutionDays: round2(float64(totalDays) / float64(len(tickets))),
	}, nil
}

// CompletedTickets groups DONE tickets by team name, accumulating counts and
// story points, optionally filtered by team.
func (s *Service) CompletedTickets(ctx context.Context, teamID *uuid.UUID) (*CompletedReport, error) {
	tickets, err := s.repo.ListDoneTickets(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching done tickets: %w", err)
	}

	byTeam := make(map[string]CompletedTeam, 8)
	for _, t := range tickets {
		entry := byTeam[t.TeamName]
		entry.Completed++
		if t.StoryPoints != nil {
			entry.StoryPoints += *t.StoryPoints
		}
		byTeam[t.TeamName] = entry
	}

	return &CompletedReport{TotalCompleted: len(tickets), ByTeam: byTeam}, nil
}

// TeamPerformance computes per-team completion and bug rates as integer
// percentages. Every known team gets an entry.
func (s *Service) TeamPerformance(ctx context.Context) ([]TeamPerformance, error) {
	overviews, err := s.repo.ListTeamOverviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching team overviews: %w", err)
	}

	entries := make([]TeamPerformance, 0, len(overviews))
	for _, o := range overviews {
		entry := TeamPerformance{
			Team:             o.TeamName,
			TotalTickets:     o.TotalTickets,
			CompletedTickets: o.DoneTickets,
			BugTickets:       o.BugTickets,
			Members:          o.Members,
		}
		if o.TotalTickets > 0 {
			entry.CompletionRate = int(math.Round(float64(o.DoneTickets) / float64(o.TotalTickets) * 100))
			entry.BugRate = int(math.Round(float64(o.BugTickets) / float64(o.TotalTickets) * 100))
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// wholeDays is the resolution time in full days between creation and
// resolution.
func wholeDays(created, resolved time.Time) int {
	return int(resolved.Sub(created).Hours() / 24)
}
