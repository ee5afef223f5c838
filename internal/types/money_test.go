package types

import "testing"

func TestMoney(t *testing.T) {
	nightly := Money{Amount: 12950, Currency: "EUR"}
	total := nightly.Times(3)
	if total.Amount != 38850 || total.Currency != "EUR" {
		t.Fatalf("unexpected total %+v", total)
	}
	if got := total.String(); got != "388.50 EUR" {
		t.Fatalf("expected 388.50 EUR, got %q", got)
	}
}
