package models

// SentimentBreakdownEntry is one signal source in the consensus view.
type SentimentBreakdownEntry struct {
	Source string `json:"source"`
	Score  int    `json:"score"`
	Trend  string `json:"trend"`
}

// SentimentConsensus combines analyst recommendations with aggregate news
// sentiment into a single BUY/HOLD/SELL view.
type SentimentConsensus struct {
	Ticker     string                    `json:"ticker"`
	Overall    string                    `json:"overall"`
	Confidence int                       `json:"confidence"`
	Breakdown  []SentimentBreakdownEntry `json:"breakdown"`
	Rationale  string                    `json:"rationale"`
}
