package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findTopic(recs []Recommendation, topic string) (Recommendation, bool) {
	for _, r := range recs {
		if r.Topic == topic {
			return r, true
		}
	}
	return Recommendation{}, false
}

func TestRecommend_NoIncomeNoAdvice(t *testing.T) {
	assert.Nil(t, Recommend(Totals{Income: decimal.Zero}))
}

func TestRecommend_ExpenseLevels(t *testing.T) {
	cases := []struct {
		name    string
		expense int64
		want    Level
	}{
		{"over half is a warning", 600_000, LevelWarning},
		{"over thirty percent is moderate", 400_000, LevelModerate},
		{"under thirty percent is good", 200_000, LevelGood},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := Recommend(Totals{Income: dec(1_000_000), Expense: dec(tc.expense)})
			r, ok := findTopic(recs, "expense")
			require.True(t, ok)
			assert.Equal(t, tc.want, r.Level)
			assert.NotEmpty(t, r.Message)
		})
	}
}

func TestRecommend_SavingsLevels(t *testing.T) {
	cases := []struct {
		name    string
		savings int64
		want    Level
	}{
		{"under ten percent is a warning", 50_000, LevelWarning},
		{"under twenty percent is moderate", 150_000, LevelModerate},
		{"twenty percent or more is good", 250_000, LevelGood},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := Recommend(Totals{Income: dec(1_000_000), Savings: dec(tc.savings)})
			r, ok := findTopic(recs, "savings")
			require.True(t, ok)
			assert.Equal(t, tc.want, r.Level)
		})
	}
}
