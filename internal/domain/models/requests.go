package models

// Requests for the proxy HTTP endpoints. Defined in domain for consistency and reuse.

type TickerRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
}

type HistoryRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Days   int    `query:"days" json:"days" default:"6" validate:"gte=2,lte=366"`
}

type AnalysisRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Range  string `query:"range" json:"range" default:"3mo" validate:"oneof=1mo 3mo 6mo 1y 2y"`
}

type NewsRequest struct {
	UserID string `query:"userId" json:"userId"`
}

type SentimentRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,min=1,max=12"`
	Type   string `query:"type" json:"type" default:"recommendation" validate:"oneof=recommendation news"`
}

type LoadKeysRequest struct {
	UserID string `query:"userId" json:"userId" validate:"required,max=64"`
}

type SaveKeysRequest struct {
	UserID       string `json:"userId" validate:"required,max=64"`
	AlphaVantage string `json:"alphaVantage"`
	Finnhub      string `json:"finnhub"`
	NewsAPI      string `json:"newsApi"`
}
