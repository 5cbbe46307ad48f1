package offer

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPatch_ApplyOnlySetFields(t *testing.T) {
	o := &Offer{Title: "Home Loan", Category: "home", ShowOnHome: false, InterestRate: decimal.RequireFromString("7.5")}
	title := "Home Loan Plus"
	show := true
	rate := decimal.RequireFromString("6.25")

	p := Patch{Title: &title, ShowOnHome: &show, InterestRate: &rate}
	if p.Empty() {
		t.Fatal("patch should not be empty")
	}
	p.Apply(o)

	if o.Title != title || !o.ShowOnHome || !o.InterestRate.Equal(rate) {
		t.Fatalf("patch not applied: %+v", o)
	}
	if o.Category != "home" {
		t.Fatalf("category changed: %q", o.Category)
	}
}

func TestPatch_Empty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
}
