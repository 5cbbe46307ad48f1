package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		ApplicationID string `json:"application_id" validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{ApplicationID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{ApplicationID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "application_id", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestDecimalValidation(t *testing.T) {
	type P struct {
		Amount decimal.Decimal  `json:"loan_amount" validate:"gt=0,dec2"`
		Rate   *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	}
	cv := NewValidator()

	rate := decimal.RequireFromString("12.5")
	if err := cv.Validate(P{Amount: decimal.RequireFromString("1500.25"), Rate: &rate}); err != nil {
		t.Fatalf("expected OK, got %v", err)
	}
	if err := cv.Validate(P{Amount: decimal.NewFromInt(10)}); err != nil {
		t.Fatalf("nil optional rate should pass, got %v", err)
	}

	bad := decimal.NewFromInt(101)
	err := cv.Validate(P{Amount: decimal.RequireFromString("1.234"), Rate: &bad})
	if err == nil {
		t.Fatal("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "loan_amount", "at most 2 decimal places") {
		t.Fatalf("missing dec2 message: %+v", fe)
	}
	if !containsFieldMsg(fe, "interest_rate", "less than or equal to 100") {
		t.Fatalf("missing lte message: %+v", fe)
	}

	err = cv.Validate(P{Amount: decimal.Zero})
	if !containsFieldMsg(ToFieldErrors(err), "loan_amount", "greater than 0") {
		t.Fatalf("zero amount should fail gt=0: %v", err)
	}
}

func TestRequiredAndOneOfMapping(t *testing.T) {
	type P struct {
		Name string `json:"name" validate:"required"`
		Role string `json:"role" validate:"oneof=borrower manager"`
		Mail string `json:"email" validate:"omitempty,email"`
	}
	err := NewValidator().Validate(P{Role: "owner", Mail: "nope"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "name", "is required") {
		t.Fatalf("missing 'is required' for name: %+v", fe)
	}
	if !containsFieldMsg(fe, "role", "one of: borrower manager") {
		t.Fatalf("missing oneof message: %+v", fe)
	}
	if !containsFieldMsg(fe, "email", "valid email") {
		t.Fatalf("missing email message: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe)
	}
}
