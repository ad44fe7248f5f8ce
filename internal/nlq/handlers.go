package nlq

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/team"
)

type velocityResult struct {
	Team            string  `json:"team"`
	AverageVelocity float64 `json:"averageVelocity"`
	SprintsAnalyzed int     `json:"sprintsAnalyzed"`
	TimePeriod      string  `json:"timePeriod"`
}

type bugResult struct {
	Team         string  `json:"team"`
	TotalTickets int     `json:"totalTickets"`
	BugTickets   int     `json:"bugTickets"`
	BugRate      float64 `json:"bugRate"`
	TimePeriod   string  `json:"timePeriod"`
}

type resolutionResult struct {
	Team                  string  `json:"team"`
	AverageResolutionDays float64 `json:"averageResolutionDays"`
	TicketsAnalyzed       int     `json:"ticketsAnalyzed"`
}

// resolveTeam applies the team-resolution policy: the allTeams placeholder
// means no filter, anything else must match an existing team name
// case-insensitively. notFound is true when the name matched nothing; the
// caller must short-circuit in that case rather than query unfiltered.
func (i *Interpreter) resolveTeam(ctx context.Context, teamName string) (t *team.Team, notFound bool, err error) {
	if teamName == allTeams {
		return nil, false, nil
	}

	t, err = i.metrics.FindTeamByName(ctx, teamName)
	if errors.Is(err, team.ErrTeamNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t, false, nil
}

func teamNotFoundMessage(teamName string) string {
	return fmt.Sprintf("Team %q not found. Check the team name and try again.", teamName)
}

// teamLabel is the payload's team field: the resolved name, or the allTeams
// placeholder when no filter applies.
func teamLabel(t *team.Team) string {
	if t == nil {
		return allTeams
	}
	return t.Name
}

// teamPhrase is the label used inside interpretation sentences.
func teamPhrase(t *team.Team) string {
	if t == nil {
		return "all teams"
	}
	return "team " + t.Name
}

func teamID(t *team.Team) *uuid.UUID {
	if t == nil {
		return nil
	}
	return &t.ID
}

func roundInt(x float64) int {
	return int(math.Round(x))
}

func (i *Interpreter) handleVelocity(ctx context.Context, teamName string) (any, string, error) {
	t, notFound, err := i.resolveTeam(ctx, teamName)
	if err != nil {
		return nil, "", err
	}
	if notFound {
		return nil, teamNotFoundMessage(teamName), nil
	}

	report, err := i.metrics.TeamVelocity(ctx, teamID(t))
	if err != nil {
		return nil, "", err
	}

	result := velocityResult{
		Team:            teamLabel(t),
		AverageVelocity: report.AverageVelocity,
		SprintsAnalyzed: report.SprintsAnalyzed,
		TimePeriod:      "last 5 sprints",
	}

	if report.SprintsAnalyzed == 0 {
		return result, fmt.Sprintf("No completed sprints found for %s yet.", teamPhrase(t)), nil
	}

	interp := fmt.Sprintf("Average velocity for %s is %d story points per sprint, measured over the last %d sprints.",
		teamPhrase(t), roundInt(report.AverageVelocity), report.SprintsAnalyzed)
	return result, interp, nil
}

func (i *Interpreter) handleBugs(ctx context.Context, teamName string) (any, string, error) {
	t, notFound, err := i.resolveTeam(ctx, teamName)
	if err != nil {
		return nil, "", err
	}
	if notFound {
		return nil, teamNotFoundMessage(teamName), nil
	}

	report, err := i.metrics.BugRate(ctx, teamID(t))
	if err != nil {
		return nil, "", err
	}

	result := bugResult{
		Team:         teamLabel(t),
		TotalTickets: report.TotalTickets,
		BugTickets:   report.BugTickets,
		BugRate:      report.BugRate,
		TimePeriod:   "last quarter",
	}

	interp := fmt.Sprintf("%s logged %d bugs out of %d tickets in the last quarter, a bug rate of %d%%.",
		teamPhrase(t), report.BugTickets, report.TotalTickets, roundInt(report.BugRate))
	return result, interp, nil
}

func (i *Interpreter) handleResolution(ctx context.Context, teamName string) (any, string, error) {
	t, notFound, err := i.resolveTeam(ctx, teamName)
	if err != nil {
		return nil, "", err
	}
	if notFound {
		return nil, teamNotFoundMessage(teamName), nil
	}

	filter := teamID(t)
	if !i.strictTeamFilter {
		filter = nil
	}

	report, err := i.metrics.ResolutionTime(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	if report.TicketsAnalyzed == 0 {
		return nil, "No resolved tickets found to analyze yet.", nil
	}

	result := resolutionResult{
		Team:                  teamLabel(t),
		AverageResolutionDays: report.AverageResolutionDays,
		TicketsAnalyzed:       report.TicketsAnalyzed,
	}

	interp := fmt.Sprintf("Average resolution time is %d days across %d resolved tickets.",
		roundInt(report.AverageResolutionDays), report.TicketsAnalyzed)
	return result, interp, nil
}

func (i *Interpreter) handleCompleted(ctx context.Context, teamName string) (any, string, error) {
	t, notFound, err := i.resolveTeam(ctx, teamName)
	if err != nil {
		return nil, "", err
	}
	if notFound {
		return nil, teamNotFoundMessage(teamName), nil
	}

	filter := teamID(t)
	if !i.strictTeamFilter {
		filter = nil
	}

	report, err := i.metrics.CompletedTickets(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	if report.TotalCompleted == 0 {
		return nil, "No completed tickets found yet.", nil
	}

	interp := fmt.Sprintf("%d tickets have been completed across %d teams.",
		report.TotalCompleted, len(report.ByTeam))
	return report, interp, nil
}

func (i *Interpreter) handlePerformance(ctx context.Context) (any, string, error) {
	entries, err := i.metrics.TeamPerformance(ctx)
	if err != nil {
		return nil, "", err
	}

	if len(entries) == 0 {
		return nil, "No teams found to report on yet.", nil
	}

	interp := fmt.Sprintf("Performance overview for %d teams: ticket totals, completion rates, bug rates, and member counts.",
		len(entries))
	return entries, interp, nil
}

func (i *Interpreter) handleTrends(ctx context.Context) (any, string, error) {
	result, _, err := i.handleVelocity(ctx, allTeams)
	if err != nil {
		return nil, "", err
	}

	interp := `Trend analysis is based on recent sprint velocity across all teams. ` +
		`For more detail, ask about a specific metric, e.g. "Show velocity for team Frontend".`
	return result, interp, nil
}
