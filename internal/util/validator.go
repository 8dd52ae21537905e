package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// amounts above this are assumed to be input mistakes
var maxAmount = decimal.NewFromInt(10_000_000_000)

// ValidateAmount 验证金额（必须为正数且不超过上限）
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("amount too large, got %s", amount)
	}
	return nil
}

// ValidateDate 验证日期格式（必须为 YYYY-MM-DD）
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateName checks a record label (non-empty, bounded length).
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long, max 255 characters")
	}
	return nil
}

// ValidateMonth 验证月份格式（必须为 YYYY-MM）
func ValidateMonth(monthStr string) error {
	if monthStr == "" {
		return fmt.Errorf("month is empty")
	}
	_, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return fmt.Errorf("invalid month format: %w", err)
	}
	return nil
}
