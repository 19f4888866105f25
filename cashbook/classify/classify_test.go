package classify

import (
	"reflect"
	"testing"

	"github.com/plenert/cashbook"
	"github.com/shopspring/decimal"
)

func tx(t *testing.T, kind cashbook.Kind, category, description string) *cashbook.Transaction {
	t.Helper()
	tr, err := cashbook.NewTransaction(kind, decimal.NewFromInt(10), "2025-01-10", category, description)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestPredict(t *testing.T) {
	c := Train([]*cashbook.Transaction{
		tx(t, cashbook.Expense, "Alimentação", "Supermercado pagamento"),
		tx(t, cashbook.Expense, "Alimentação", "SUPERMERCADO 0412 pagamento"),
		tx(t, cashbook.Expense, "Aluguel", "Aluguel apartamento pagamento"),
		tx(t, cashbook.Expense, "Aluguel", "aluguel pagamento"),
		tx(t, cashbook.Expense, "", "no category is skipped"),
		tx(t, cashbook.Income, "Salário", "Folha de pagamento"),
	})

	tests := []struct {
		kind        cashbook.Kind
		description string
		want        string
		ok          bool
	}{
		{cashbook.Expense, "supermercado extra", "Alimentação", true},
		{cashbook.Expense, "Aluguel março", "Aluguel", true},
		{cashbook.Expense, "pagamento", "", false},
		{cashbook.Expense, "", "", false},
		{cashbook.Expense, "1234", "", false},
		// a single income category is not enough to choose between
		{cashbook.Income, "folha", "", false},
	}
	for _, tc := range tests {
		got, ok := c.Predict(tc.kind, tc.description)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Predict(%s, %q) = %q, %v; want %q, %v", tc.kind, tc.description, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTrainEmpty(t *testing.T) {
	c := Train(nil)
	if _, ok := c.Predict(cashbook.Expense, "anything"); ok {
		t.Error("empty classifier predicted a category")
	}
}

func TestWords(t *testing.T) {
	got := Words("PIX 12/03 Pão-de-Açúcar  #123")
	want := []string{"pix", "pão", "de", "açúcar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words = %q, want %q", got, want)
	}
}
