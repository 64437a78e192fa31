package models

import "time"

// MonthlyTotal represents monthly income and expense statistics
type MonthlyTotal struct {
	Month      string  `json:"month"` // Format: YYYY-MM
	Income     float64 `json:"income"`
	Expense    float64 `json:"expense"`
	NetBalance float64 `json:"netBalance"`
}

type CategoryTotal struct {
	Category string  `json:"category" bson:"_id"`
	Total    float64 `json:"total" bson:"total"`
	Count    int     `json:"count" bson:"count"`
}

// DebtSummary represents debt burden analytics
type DebtSummary struct {
	TotalOriginal   float64 `json:"totalOriginal"`
	TotalBalance    float64 `json:"totalBalance"`
	MonthlyPayments float64 `json:"monthlyPayments"`
	PaidOffPercent  float64 `json:"paidOffPercent"` // (TotalOriginal - TotalBalance) / TotalOriginal
	ActiveCount     int     `json:"activeCount"`
}

type AssetSummary struct {
	TotalValue         float64            `json:"totalValue"`
	TotalPurchasePrice float64            `json:"totalPurchasePrice"`
	Appreciation       float64            `json:"appreciation"`
	ByType             map[string]float64 `json:"byType"`
	Count              int                `json:"count"`
}

// UpcomingBill is a recurring expense or debt payment due soon
type UpcomingBill struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // expense or debt
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"dueDate"`
}

type DashboardSummary struct {
	PeriodStart              time.Time       `json:"periodStart"`
	PeriodEnd                time.Time       `json:"periodEnd"`
	MonthExpenses            float64         `json:"monthExpenses"`
	MonthIncome              float64         `json:"monthIncome"`
	MonthlyRecurringIncome   float64         `json:"monthlyRecurringIncome"`
	MonthlyRecurringExpenses float64         `json:"monthlyRecurringExpenses"`
	TotalDebt                float64         `json:"totalDebt"`
	TotalAssets              float64         `json:"totalAssets"`
	NetWorth                 float64         `json:"netWorth"`
	ExpensesByCategory       []CategoryTotal `json:"expensesByCategory"`
	Trend                    []MonthlyTotal  `json:"trend"`
	UpcomingBills            []UpcomingBill  `json:"upcomingBills"`
	BudgetsAtRisk            []BudgetStatus  `json:"budgetsAtRisk"`
}

// ExchangeRates are reference rates against Base
type ExchangeRates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"` // Format: YYYY-MM-DD
	Rates map[string]float64 `json:"rates"`
}

type Conversion struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
	Date   string  `json:"date"`
}
