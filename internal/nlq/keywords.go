package nlq

import "strings"

// keywordCategory scores a query against one intent's keyword set.
type keywordCategory struct {
	intent   intent
	keywords []string
}

// keywordCategories is the fallback classifier's fixed table. Declaration
// order is the tie-break: earlier categories win equal scores.
var keywordCategories = []keywordCategory{
	{intentVelocity, []string{"velocity", "story point", "sprint", "throughput", "capacity"}},
	{intentBugs, []string{"bug", "defect", "error", "issue", "failure"}},
	{intentResolution, []string{"resolution", "fix", "close", "time", "duration"}},
	{intentTrends, []string{"trend", "q1", "q2", "q3", "q4", "quarter", "period"}},
	{intentPerformance, []string{"performance", "metric", "statistic", "kpi"}},
}

// classifyKeywords scores the normalized query against every category by
// counting keyword substring hits. The strictly highest score wins; ties
// resolve to the earliest category. A zero score across the board fails.
func classifyKeywords(normalized string) (intent, bool) {
	best := intent(0)
	bestScore := 0

	for _, cat := range keywordCategories {
		score := 0
		for _, kw := range cat.keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat.intent
			bestScore = score
		}
	}

	if bestScore == 0 {
		return 0, false
	}
	return best, true
}
