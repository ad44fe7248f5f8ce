package nlq

import (
	"regexp"
	"strings"
)

// intent is one of the recognized question categories.
type intent int

const (
	intentVelocity intent = iota
	intentBugs
	intentResolution
	intentCompleted
	intentPerformance
	intentTrends
)

func (i intent) String() string {
	switch i {
	case intentVelocity:
		return "velocity"
	case intentBugs:
		return "bugs"
	case intentResolution:
		return "resolution"
	case intentCompleted:
		return "completed"
	case intentPerformance:
		return "performance"
	case intentTrends:
		return "trends"
	}
	return "unknown"
}

// rule pairs a structural trigger pattern with the intent it dispatches to.
// Group 1, when the pattern defines it, captures the team-name fragment.
type rule struct {
	re     *regexp.Regexp
	intent intent
}

// rules is the ordered pattern table. Evaluation is first-match-wins with no
// backtracking to later rules. Defined once, never mutated.
var rules = []rule{
	{
		re:     regexp.MustCompile(`\b(?:show|display|get|what is|what are|view)\b.*\b(?:velocity|story points|sprints?)\b(?:.*\b(?:for|of)\s+(?:team\b\s*)?(.*))?`),
		intent: intentVelocity,
	},
	{
		re:     regexp.MustCompile(`\b(?:how many|count|number of|total)\b.*\b(?:bugs?|defects?|issues?)\b(?:.*\b(?:for|of|in)\s+(?:team\b\s*)?(.*))?`),
		intent: intentBugs,
	},
	{
		re:     regexp.MustCompile(`\b(?:average|mean|median)\b.*\b(?:resolution|fix|close)\b.*\b(?:time|duration)\b(?:.*\b(?:for|of)\s+(?:team\b\s*)?(.*))?`),
		intent: intentResolution,
	},
	{
		re:     regexp.MustCompile(`\b(?:completed|done|finished)\b.*\b(?:tickets?|tasks?|items?)\b(?:.*\b(?:for|of|by)\s+(?:team\b\s*)?(.*))?`),
		intent: intentCompleted,
	},
	{
		re:     regexp.MustCompile(`\b(?:team|squad|group)s?\b.*\b(?:performance|metrics|stats|statistics)\b`),
		intent: intentPerformance,
	},
	{
		re:     regexp.MustCompile(`\b(?:q[1-4]|quarter(?:ly)?|trends?|periods?)\b`),
		intent: intentTrends,
	},
}

// allTeams is the placeholder team token meaning "no team filter".
const allTeams = "all"

// matchRule evaluates the ordered rule table against normalized query text.
// It returns the first matching rule's intent and the captured team name,
// with an empty or absent capture mapped to the allTeams placeholder.
func matchRule(normalized string) (intent, string, bool) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}

		teamName := allTeams
		if len(m) > 1 {
			if captured := strings.TrimSpace(m[1]); captured != "" {
				teamName = captured
			}
		}
		return r.intent, teamName, true
	}

	return 0, "", false
}
