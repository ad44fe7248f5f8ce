package nlq

// Response is the envelope returned for every natural-language query.
// Result is nil when the query could not be answered; Interpretation always
// carries a human-readable explanation.
type Response struct {
	Query          string `json:"query"`
	Result         any    `json:"result"`
	Interpretation string `json:"interpretation"`
}
