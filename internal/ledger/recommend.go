package ledger

import "github.com/shopspring/decimal"

// Level grades a recommendation.
type Level string

const (
	LevelGood     Level = "good"
	LevelModerate Level = "moderate"
	LevelWarning  Level = "warning"
)

// Recommendation is one piece of spending/saving advice derived from ratios.
type Recommendation struct {
	Topic   string `json:"topic"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

var (
	pct50 = decimal.NewFromFloat(0.5)
	pct30 = decimal.NewFromFloat(0.3)
	pct20 = decimal.NewFromFloat(0.2)
	pct10 = decimal.NewFromFloat(0.1)
)

// Recommend derives advice from the period totals. With zero income there is
// nothing to relate spending to, so no recommendations are produced.
func Recommend(t Totals) []Recommendation {
	if t.Income.Sign() <= 0 {
		return nil
	}
	r := CalculateRatios(t)

	var out []Recommendation

	switch {
	case r.Expense.GreaterThan(pct50):
		out = append(out, Recommendation{
			Topic:   "expense",
			Level:   LevelWarning,
			Message: "You are spending more than 50% of your income. Consider cutting expenses.",
		})
	case r.Expense.GreaterThan(pct30):
		out = append(out, Recommendation{
			Topic:   "expense",
			Level:   LevelModerate,
			Message: "Your spending is within reasonable limits. Keep watching for savings opportunities.",
		})
	default:
		out = append(out, Recommendation{
			Topic:   "expense",
			Level:   LevelGood,
			Message: "Well done, your expenses are under control.",
		})
	}

	switch {
	case r.Savings.LessThan(pct10):
		out = append(out, Recommendation{
			Topic:   "savings",
			Level:   LevelWarning,
			Message: "You are saving less than 10% of your income. Prioritize saving more.",
		})
	case r.Savings.LessThan(pct20):
		out = append(out, Recommendation{
			Topic:   "savings",
			Level:   LevelModerate,
			Message: "You are saving reasonably well. Try to reach 20% for a safer future.",
		})
	default:
		out = append(out, Recommendation{
			Topic:   "savings",
			Level:   LevelGood,
			Message: "Congratulations, you are saving more than 20% of your income.",
		})
	}

	return out
}
