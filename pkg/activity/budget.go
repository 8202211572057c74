package activity

// Budget compares a spending limit with what the expense tracker recorded.
type Budget struct {
	Total       float64 `json:"total"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
	Over        bool    `json:"over"`
}

// BudgetStatus computes the remaining balance and share used. With no budget
// set the share used is 0.
func BudgetStatus(total, spent float64) Budget {
	b := Budget{
		Total:     total,
		Spent:     spent,
		Remaining: total - spent,
	}
	if total > 0 {
		b.PercentUsed = spent / total * 100
	}
	b.Over = b.Remaining < 0
	return b
}

// Spent sums the totals of records.
func Spent(records []*Record) float64 {
	var sum float64
	for _, r := range records {
		if r != nil {
			sum += r.Total()
		}
	}
	return sum
}
