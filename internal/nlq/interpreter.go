package nlq

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sprintlens/sprintlens/internal/metrics"
	"github.com/sprintlens/sprintlens/internal/team"
)

// Metrics is the aggregation surface the interpreter dispatches to. A nil
// teamID means no team filter.
type Metrics interface {
	FindTeamByName(ctx context.Context, name string) (*team.Team, error)
	TeamVelocity(ctx context.Context, teamID *uuid.UUID) (*metrics.VelocityReport, error)
	BugRate(ctx context.Context, teamID *uuid.UUID) (*metrics.BugRateReport, error)
	ResolutionTime(ctx context.Context, teamID *uuid.UUID) (*metrics.ResolutionReport, error)
	CompletedTickets(ctx context.Context, teamID *uuid.UUID) (*metrics.CompletedReport, error)
	TeamPerformance(ctx context.Context) ([]metrics.TeamPerformance, error)
}

// Interpreter maps free-text questions to metric aggregates. It is stateless
// per query and safe for concurrent use.
type Interpreter struct {
	metrics Metrics

	// strictTeamFilter makes the resolution-time and completed-ticket
	// handlers honor the requested team. The default (false) reproduces the
	// historical behavior where those two span all teams regardless of the
	// requested one.
	strictTeamFilter bool
}

// NewInterpreter creates an Interpreter on top of the given metrics surface.
func NewInterpreter(m Metrics, strictTeamFilter bool) *Interpreter {
	return &Interpreter{metrics: m, strictTeamFilter: strictTeamFilter}
}

const notUnderstoodInterpretation = `I couldn't understand that question. Try queries like: ` +
	`"Show velocity for team Frontend", "How many bugs for team Backend", ` +
	`"Average resolution time", "Completed tickets by team", or "Team performance stats".`

// Process interprets a free-text query and returns a response envelope. It
// never returns an error and never panics: every failure is absorbed into
// the envelope.
func (i *Interpreter) Process(ctx context.Context, query string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("query interpreter panicked", "query", query, "panic", r)
			resp = Response{
				Query:          query,
				Result:         nil,
				Interpretation: "Something went wrong answering that question. Please try again later.",
			}
		}
	}()

	normalized := strings.ToLower(strings.TrimSpace(query))

	if in, teamName, ok := matchRule(normalized); ok {
		return i.dispatch(ctx, query, in, teamName)
	}

	if in, ok := classifyKeywords(normalized); ok {
		return i.dispatch(ctx, query, in, allTeams)
	}

	return Response{
		Query:          query,
		Result:         nil,
		Interpretation: notUnderstoodInterpretation,
	}
}

// dispatch runs the matched intent's handler inside the error-capture
// boundary: any handler error is logged and converted into a generic
// failure envelope.
func (i *Interpreter) dispatch(ctx context.Context, query string, in intent, teamName string) Response {
	var (
		result any
		interp string
		err    error
	)

	switch in {
	case intentVelocity:
		result, interp, err = i.handleVelocity(ctx, teamName)
	case intentBugs:
		result, interp, err = i.handleBugs(ctx, teamName)
	case intentResolution:
		result, interp, err = i.handleResolution(ctx, teamName)
	case intentCompleted:
		result, interp, err = i.handleCompleted(ctx, teamName)
	case intentPerformance:
		result, interp, err = i.handlePerformance(ctx)
	case intentTrends:
		result, interp, err = i.handleTrends(ctx)
	}

	if err != nil {
		slog.Error("query handler failed", "intent", in.String(), "team", teamName, "error", err)
		return Response{
			Query:          query,
			Result:         nil,
			Interpretation: "Failed to retrieve " + in.String() + " data. Please try again later.",
		}
	}

	return Response{Query: query, Result: result, Interpretation: interp}
}
