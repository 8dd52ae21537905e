package util

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount_Positive(t *testing.T) {
	testCases := []string{"0.01", "1", "100.5", "9999999999.99"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", s, err)
		}
	}
}

func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(decimal.Zero)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

func TestValidateAmount_Negative(t *testing.T) {
	testCases := []string{"-0.01", "-100", "-9999.99"}

	for _, s := range testCases {
		amount, _ := decimal.NewFromString(s)
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%s) error = nil, want error", s)
		}
	}
}

func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(decimal.NewFromInt(10_000_000_000))

	if err == nil {
		t.Error("ValidateAmount(10000000000) error = nil, want error")
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateName_Valid(t *testing.T) {
	testCases := []string{"Salary", "Groceries", "Payment for: Car loan"}

	for _, name := range testCases {
		err := ValidateName(name)
		if err != nil {
			t.Errorf("ValidateName(%q) error = %v, want nil", name, err)
		}
	}
}

func TestValidateName_Empty(t *testing.T) {
	err := ValidateName("")

	if err == nil {
		t.Error("ValidateName(\"\") error = nil, want error")
	}
}

func TestValidateName_TooLong(t *testing.T) {
	err := ValidateName(strings.Repeat("x", 256))

	if err == nil {
		t.Error("ValidateName() with long string error = nil, want error")
	}
}

func TestValidateMonth_Valid(t *testing.T) {
	testCases := []string{"2024-01", "2023-12"}

	for _, month := range testCases {
		err := ValidateMonth(month)
		if err != nil {
			t.Errorf("ValidateMonth(%q) error = %v, want nil", month, err)
		}
	}
}

func TestValidateMonth_Invalid(t *testing.T) {
	testCases := []string{"", "2024", "2024-13", "2024-1", "jan-2024"}

	for _, month := range testCases {
		err := ValidateMonth(month)
		if err == nil {
			t.Errorf("ValidateMonth(%q) error = nil, want error", month)
		}
	}
}
