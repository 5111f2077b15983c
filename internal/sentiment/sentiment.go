package sentiment

import (
	"strings"

	"FinBoard/internal/domain/models"
)

// Keyword sets for headline classification. Matching is case-insensitive
// substring containment; each keyword counts at most once per text.
var (
	positiveWords = []string{"gains", "surge", "profit", "growth", "strong", "positive", "rise", "rally", "up", "beat"}
	negativeWords = []string{"loss", "decline", "fall", "weak", "concern", "risk", "down", "drop", "miss", "cut"}
)

// Classify tags free text as positive, negative or neutral by comparing
// keyword hit counts. Ties, including zero hits on both sides, are neutral.
func Classify(text string) models.Sentiment {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return models.SentimentPositive
	case neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Annotate classifies title plus summary and stamps the record.
func Annotate(a *models.ArticleRecord) {
	a.Sentiment = Classify(a.Title + " " + a.Summary)
}
