package cashbook_test

import (
	"errors"
	"testing"

	"github.com/plenert/cashbook"
	"github.com/shopspring/decimal"
)

func januaryLedger(t *testing.T) *cashbook.TransactionService {
	svc, _ := openService(t,
		newTx(t, cashbook.Income, "1000", "2025-01-15", "Salário"),
		newTx(t, cashbook.Expense, "300", "2025-01-20", "Aluguel"),
		newTx(t, cashbook.Expense, "150", "2025-01-25", "Alimentação"),
		newTx(t, cashbook.Income, "500", "2025-02-05", "Freelance"),
	)
	return svc
}

func checkTotals(t *testing.T, name string, got cashbook.CategoryTotals, want ...cashbook.CategoryAmount) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("%s[%d] = %s %s, want %s %s", name, i,
				got[i].Category, got[i].Amount, want[i].Category, want[i].Amount)
		}
	}
}

func ca(category string, amount int64) cashbook.CategoryAmount {
	return cashbook.CategoryAmount{Category: category, Amount: decimal.NewFromInt(amount)}
}

func TestMonthlyReport(t *testing.T) {
	reports := cashbook.NewReportService(januaryLedger(t))

	rep, err := reports.MonthlyReport(2025, 1)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Period != "2025-01" {
		t.Errorf("period = %s", rep.Period)
	}
	if !rep.TotalIncome.Equal(decimal.NewFromInt(1000)) ||
		!rep.TotalExpense.Equal(decimal.NewFromInt(450)) ||
		!rep.Balance.Equal(decimal.NewFromInt(550)) {
		t.Errorf("totals = %s / %s / %s", rep.TotalIncome, rep.TotalExpense, rep.Balance)
	}
	checkTotals(t, "income", rep.IncomeByCategory, ca("Salário", 1000))
	checkTotals(t, "expense", rep.ExpenseByCategory, ca("Aluguel", 300), ca("Alimentação", 150))
	if len(rep.Transactions) != 3 {
		t.Errorf("transactions = %d, want 3", len(rep.Transactions))
	}
}

func TestMonthlyReportBoundaries(t *testing.T) {
	svc, _ := openService(t,
		newTx(t, cashbook.Expense, "10", "2024-11-30", ""),
		newTx(t, cashbook.Expense, "20", "2024-12-01", ""),
		newTx(t, cashbook.Expense, "30", "2024-12-31", ""),
		newTx(t, cashbook.Expense, "40", "2025-01-01", ""),
		newTx(t, cashbook.Income, "50", "2024-02-29", ""),
	)
	reports := cashbook.NewReportService(svc)

	rep, err := reports.MonthlyReport(2024, 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Transactions) != 2 || !rep.TotalExpense.Equal(decimal.NewFromInt(50)) {
		t.Errorf("december = %d transactions, expense %s", len(rep.Transactions), rep.TotalExpense)
	}
	checkTotals(t, "expense", rep.ExpenseByCategory, ca(cashbook.Uncategorized, 50))

	rep, _ = reports.MonthlyReport(2024, 2)
	if !rep.TotalIncome.Equal(decimal.NewFromInt(50)) {
		t.Errorf("leap february income = %s", rep.TotalIncome)
	}

	rep, err = reports.MonthlyReport(2030, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Transactions) != 0 || !rep.Balance.IsZero() ||
		len(rep.IncomeByCategory) != 0 || len(rep.ExpenseByCategory) != 0 {
		t.Errorf("empty month = %+v", rep)
	}
}

func TestMonthlyReportInvalidMonth(t *testing.T) {
	reports := cashbook.NewReportService(januaryLedger(t))
	for _, m := range []int{0, 13, -1} {
		rep, err := reports.MonthlyReport(2025, m)
		if rep != nil || !errors.Is(err, cashbook.ErrInvalidMonth) {
			t.Errorf("month %d: %v, %v", m, rep, err)
		}
	}
}

func TestCategoryReport(t *testing.T) {
	svc, _ := openService(t,
		newTx(t, cashbook.Expense, "300", "2025-01-20", "Aluguel"),
		newTx(t, cashbook.Income, "1000", "2025-01-15", "Salário"),
		newTx(t, cashbook.Expense, "150", "2025-01-25", "Alimentação"),
	)
	reports := cashbook.NewReportService(svc)

	totals, err := reports.CategoryReport(cashbook.Expense)
	if err != nil {
		t.Fatal(err)
	}
	checkTotals(t, "expense", totals, ca("Aluguel", 300), ca("Alimentação", 150))
	if !totals.Total().Equal(decimal.NewFromInt(450)) {
		t.Errorf("total = %s", totals.Total())
	}

	shares := totals.Shares()
	if len(shares) != 2 {
		t.Fatalf("shares = %v", shares)
	}
	if got := shares[0].Percent.StringFixed(1); got != "66.7" {
		t.Errorf("Aluguel share = %s, want 66.7", got)
	}
	if got := shares[1].Percent.StringFixed(1); got != "33.3" {
		t.Errorf("Alimentação share = %s, want 33.3", got)
	}

	if _, err := reports.CategoryReport("transfer"); !errors.Is(err, cashbook.ErrInvalidKind) {
		t.Errorf("error = %v, want ErrInvalidKind", err)
	}
}

func TestCategoryReportEmpty(t *testing.T) {
	svc, _ := openService(t, newTx(t, cashbook.Income, "10", "2025-01-01", ""))
	totals, err := cashbook.NewReportService(svc).CategoryReport(cashbook.Expense)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 0 || !totals.Total().IsZero() {
		t.Errorf("totals = %v", totals)
	}
	if shares := totals.Shares(); len(shares) != 0 {
		t.Errorf("shares = %v", shares)
	}
}

func TestReportsFollowLedgerChanges(t *testing.T) {
	svc := januaryLedger(t)
	reports := cashbook.NewReportService(svc)

	before, _ := reports.MonthlyReport(2025, 1)
	cats, _ := reports.CategoryReport(cashbook.Expense)

	if err := svc.AddTransaction(newTx(t, cashbook.Expense, "50", "2025-01-28", "Alimentação")); err != nil {
		t.Fatal(err)
	}

	after, _ := reports.MonthlyReport(2025, 1)
	if !after.TotalExpense.Equal(decimal.NewFromInt(500)) || len(after.Transactions) != 4 {
		t.Errorf("stale monthly report: expense %s, %d transactions", after.TotalExpense, len(after.Transactions))
	}
	if !before.TotalExpense.Equal(decimal.NewFromInt(450)) {
		t.Errorf("earlier report changed to %s", before.TotalExpense)
	}
	cats2, _ := reports.CategoryReport(cashbook.Expense)
	if v, _ := cats2.Get("Alimentação"); !v.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Alimentação = %s, want 200", v)
	}
	if v, _ := cats.Get("Alimentação"); !v.Equal(decimal.NewFromInt(150)) {
		t.Errorf("earlier category report changed to %s", v)
	}

	// cached results are copies
	again, _ := reports.MonthlyReport(2025, 1)
	again.ExpenseByCategory[0].Amount = decimal.Zero
	third, _ := reports.MonthlyReport(2025, 1)
	if third.ExpenseByCategory[0].Amount.IsZero() {
		t.Error("caller modified cached report")
	}
}
