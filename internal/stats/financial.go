package stats

import "github.com/mkanyika/shamba/internal/domain"

type FinancialSummary struct {
	TotalExpenses      float64                             `json:"totalExpenses"`
	TotalRevenue       float64                             `json:"totalRevenue"`
	NetProfit          float64                             `json:"netProfit"`
	ProfitMargin       float64                             `json:"profitMargin"`
	ExpensesByCategory map[domain.ExpenseCategory]float64 `json:"expensesByCategory"`
	ExpenseCount       int                                 `json:"expenseCount"`
	SalesCount         int                                 `json:"salesCount"`
}

// AggregateFinancials reduces expenses and sales for one farm into totals,
// net profit, margin, and a per-category expense breakdown. Revenue is the
// sum of stored sale totals; sale amounts are never recomputed from quantity
// and price here. Net profit may be negative. ProfitMargin is reported as 0
// when revenue is 0, whatever the expense total; the margin is undefined
// there and 0 is the contract, not NaN.
func AggregateFinancials(expenses []domain.Expense, sales []domain.Sale) FinancialSummary {
	s := FinancialSummary{
		ExpensesByCategory: make(map[domain.ExpenseCategory]float64),
		ExpenseCount:       len(expenses),
		SalesCount:         len(sales),
	}

	for _, e := range expenses {
		s.TotalExpenses += e.Cost
		s.ExpensesByCategory[e.Category] += e.Cost
	}
	for _, sale := range sales {
		s.TotalRevenue += sale.TotalAmount
	}

	s.NetProfit = s.TotalRevenue - s.TotalExpenses
	if s.TotalRevenue > 0 {
		s.ProfitMargin = s.NetProfit / s.TotalRevenue * 100
	}

	return s
}
