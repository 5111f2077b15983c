package sentiment_test

import (
	"testing"

	"FinBoard/internal/domain/models"
	"FinBoard/internal/sentiment"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.Sentiment
	}{
		{"positive majority", "Shares surge as profit growth beats estimates", models.SentimentPositive},
		{"negative majority", "Markets see decline amid growth concerns", models.SentimentNegative},
		{"empty is neutral", "", models.SentimentNeutral},
		{"no keywords", "Company announces quarterly report date", models.SentimentNeutral},
		{"tie is neutral", "Stocks rise then drop", models.SentimentNeutral},
		{"case insensitive", "PROFIT SURGE ahead", models.SentimentPositive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sentiment.Classify(tc.text))
		})
	}
}

func TestClassifyPure(t *testing.T) {
	text := "gains and losses, risk and rally"
	first := sentiment.Classify(text)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, sentiment.Classify(text))
	}
}

func TestAnnotate(t *testing.T) {
	a := models.ArticleRecord{
		Title:   "Fed holds rates steady",
		Summary: "Markets see decline amid growth concerns",
	}
	sentiment.Annotate(&a)
	require.Equal(t, models.SentimentNegative, a.Sentiment)
}
