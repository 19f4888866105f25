package cashbook

import (
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// Uncategorized is the category reported for transactions without one.
const Uncategorized = "uncategorized"

var hundred = decimal.NewFromInt(100)

// CategoryAmount is the total of one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryTotals holds per-category sums in order of first occurrence.
type CategoryTotals []CategoryAmount

// GroupByCategory sums the amounts of txs per category. Transactions without
// a category are summed under Uncategorized.
func GroupByCategory(txs []*Transaction) CategoryTotals {
	totals := CategoryTotals{}
	index := make(map[string]int)
	for _, t := range txs {
		name := t.category
		if name == "" {
			name = Uncategorized
		}
		if i, ok := index[name]; ok {
			totals[i].Amount = totals[i].Amount.Add(t.amount)
			continue
		}
		index[name] = len(totals)
		totals = append(totals, CategoryAmount{Category: name, Amount: t.amount})
	}
	return totals
}

// Total returns the sum of all categories.
func (c CategoryTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, ca := range c {
		total = total.Add(ca.Amount)
	}
	return total
}

// Get returns the total of the named category.
func (c CategoryTotals) Get(name string) (decimal.Decimal, bool) {
	for _, ca := range c {
		if ca.Category == name {
			return ca.Amount, true
		}
	}
	return decimal.Zero, false
}

// CategoryShare is a category total with its percentage of the overall total.
type CategoryShare struct {
	CategoryAmount
	Percent decimal.Decimal
}

// Shares returns each category's percentage of Total. It is empty when the
// total is zero.
func (c CategoryTotals) Shares() []CategoryShare {
	total := c.Total()
	if total.IsZero() {
		return nil
	}
	shares := make([]CategoryShare, 0, len(c))
	for _, ca := range c {
		shares = append(shares, CategoryShare{
			CategoryAmount: ca,
			Percent:        ca.Amount.Mul(hundred).Div(total),
		})
	}
	return shares
}

// MonthlyReport summarises one calendar month.
type MonthlyReport struct {
	Period            string
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Balance           decimal.Decimal
	IncomeByCategory  CategoryTotals
	ExpenseByCategory CategoryTotals
	Transactions      []*Transaction
}

func (r *MonthlyReport) clone() *MonthlyReport {
	c := *r
	c.IncomeByCategory = slices.Clone(r.IncomeByCategory)
	c.ExpenseByCategory = slices.Clone(r.ExpenseByCategory)
	c.Transactions = slices.Clone(r.Transactions)
	return &c
}

// TransactionReader is the read side of TransactionService used for reports.
type TransactionReader interface {
	TransactionsByPeriod(start, end time.Time) []*Transaction
	TransactionsByKind(k Kind) []*Transaction
	Revision() uint64
}

// ReportService aggregates transactions. Results are cached per ledger
// revision, so a report is recomputed once the ledger changes.
type ReportService struct {
	transactions TransactionReader
	cache        *cache.Cache
}

// NewReportService returns a ReportService reading from tr.
func NewReportService(tr TransactionReader) *ReportService {
	return &ReportService{
		transactions: tr,
		cache:        cache.New(5*time.Minute, 10*time.Minute),
	}
}

// MonthlyReport covers the half-open interval from the first day of month
// to the first day of the next month.
func (r *ReportService) MonthlyReport(year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, invalid("month", month, ErrInvalidMonth)
	}

	key := fmt.Sprintf("monthly:%04d-%02d@%d", year, month, r.transactions.Revision())
	if v, ok := r.cache.Get(key); ok {
		return v.(*MonthlyReport).clone(), nil
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := start.AddDate(0, 1, 0)
	txs := r.transactions.TransactionsByPeriod(start, next.AddDate(0, 0, -1))

	incomes := Filter{Kind: Income}.Apply(txs)
	expenses := Filter{Kind: Expense}.Apply(txs)

	rep := &MonthlyReport{
		Period:            fmt.Sprintf("%04d-%02d", year, month),
		IncomeByCategory:  GroupByCategory(incomes),
		ExpenseByCategory: GroupByCategory(expenses),
		Transactions:      txs,
	}
	rep.TotalIncome = rep.IncomeByCategory.Total()
	rep.TotalExpense = rep.ExpenseByCategory.Total()
	rep.Balance = rep.TotalIncome.Sub(rep.TotalExpense)

	r.cache.Set(key, rep, cache.DefaultExpiration)
	return rep.clone(), nil
}

// CategoryReport sums every transaction of kind k per category.
func (r *ReportService) CategoryReport(k Kind) (CategoryTotals, error) {
	if !k.Valid() {
		return nil, invalid("type", k, ErrInvalidKind)
	}

	key := fmt.Sprintf("category:%s@%d", k, r.transactions.Revision())
	if v, ok := r.cache.Get(key); ok {
		return slices.Clone(v.(CategoryTotals)), nil
	}

	totals := GroupByCategory(r.transactions.TransactionsByKind(k))
	r.cache.Set(key, totals, cache.DefaultExpiration)
	return slices.Clone(totals), nil
}
