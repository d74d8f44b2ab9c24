package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkanyika/shamba/internal/domain"
)

func exp(category domain.ExpenseCategory, cost float64) domain.Expense {
	return domain.Expense{FarmID: "f1", Category: category, ItemName: "item", Cost: cost, Date: "2024-03-10"}
}

func sale(total float64) domain.Sale {
	return domain.Sale{FarmID: "f1", CropName: "maize", TotalAmount: total, SaleDate: "2024-03-12"}
}

func TestAggregateFinancialsExample(t *testing.T) {
	expenses := []domain.Expense{
		exp(domain.ExpenseSeeds, 100),
		exp(domain.ExpenseLabor, 50),
	}
	sales := []domain.Sale{sale(300)}

	s := AggregateFinancials(expenses, sales)

	assert.Equal(t, 150.0, s.TotalExpenses)
	assert.Equal(t, 300.0, s.TotalRevenue)
	assert.Equal(t, 150.0, s.NetProfit)
	assert.Equal(t, 50.0, s.ProfitMargin)
	assert.Equal(t, map[domain.ExpenseCategory]float64{
		domain.ExpenseSeeds: 100,
		domain.ExpenseLabor: 50,
	}, s.ExpensesByCategory)
	assert.Equal(t, 2, s.ExpenseCount)
	assert.Equal(t, 1, s.SalesCount)
}

func TestAggregateFinancialsNetProfitIdentity(t *testing.T) {
	cases := []struct {
		expenses []domain.Expense
		sales    []domain.Sale
	}{
		{nil, nil},
		{[]domain.Expense{exp(domain.ExpenseOther, 12.5)}, nil},
		{nil, []domain.Sale{sale(99.99)}},
		{[]domain.Expense{exp(domain.ExpenseSeeds, 10), exp(domain.ExpenseSeeds, 20)}, []domain.Sale{sale(5), sale(7)}},
	}
	for i, tc := range cases {
		s := AggregateFinancials(tc.expenses, tc.sales)
		assert.Equal(t, s.TotalRevenue-s.TotalExpenses, s.NetProfit, "case %d", i)
	}
}

func TestAggregateFinancialsZeroRevenueMargin(t *testing.T) {
	// Margin is undefined when revenue is 0; the contract reports 0, never
	// NaN or an error, regardless of expenses.
	s := AggregateFinancials([]domain.Expense{exp(domain.ExpenseEquipment, 500)}, nil)

	assert.Equal(t, 0.0, s.ProfitMargin)
	assert.Equal(t, -500.0, s.NetProfit)
}

func TestAggregateFinancialsNegativeProfitNotClamped(t *testing.T) {
	s := AggregateFinancials(
		[]domain.Expense{exp(domain.ExpenseLabor, 400)},
		[]domain.Sale{sale(100)},
	)

	assert.Equal(t, -300.0, s.NetProfit)
	assert.Equal(t, -300.0, s.ProfitMargin)
}

func TestAggregateFinancialsEmpty(t *testing.T) {
	s := AggregateFinancials(nil, nil)

	assert.Zero(t, s.TotalExpenses)
	assert.Zero(t, s.TotalRevenue)
	assert.Zero(t, s.NetProfit)
	assert.Zero(t, s.ProfitMargin)
	assert.Empty(t, s.ExpensesByCategory)
	assert.Zero(t, s.ExpenseCount)
	assert.Zero(t, s.SalesCount)
}

func TestAggregateFinancialsRevenueUsesStoredTotals(t *testing.T) {
	// Quantity and price deliberately disagree with the stored total; the
	// stored total wins.
	s := AggregateFinancials(nil, []domain.Sale{{
		FarmID:       "f1",
		CropName:     "beans",
		Quantity:     10,
		PricePerUnit: 5,
		TotalAmount:  42,
		SaleDate:     "2024-06-01",
	}})

	assert.Equal(t, 42.0, s.TotalRevenue)
}

func TestAggregateFinancialsIdempotent(t *testing.T) {
	expenses := []domain.Expense{exp(domain.ExpenseSeeds, 100), exp(domain.ExpenseLabor, 50)}
	sales := []domain.Sale{sale(300)}

	assert.Equal(t, AggregateFinancials(expenses, sales), AggregateFinancials(expenses, sales))
}
