package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError 输入校验失败，携带具体字段，调用方修正后重新提交
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ParseAmount 解析用户录入的金额字符串为规范化的非负两位小数
// 容忍常见的用户格式：
//   - "29,800"
//   - "₦29,800.00"
//   - "NGN 29800"
//
// 先去除货币符号与千分位分隔符，再交给 decimal 解析。
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	// 仅剥离已知的货币前缀与千分位分隔符，残留的任何其他字符交由
	// decimal 解析拒绝，避免把录入错误静默当成金额
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₦", "")
	s = strings.ReplaceAll(s, "NGN", "")
	s = strings.ReplaceAll(s, "ngn", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if amount.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	if amount.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount must have at most 2 decimal places")
	}

	return amount, nil
}

// 期间可接受的输入格式，规范化输出统一为 ISO 年月 "2006-01"
var periodLayouts = []string{"2006-01", "2006/01", "200601"}

// ParsePeriod 解析申报期间（自然月），返回规范化的 "YYYY-MM"
func ParsePeriod(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("period is empty")
	}

	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01"), nil
		}
	}
	return "", fmt.Errorf("invalid period %q, expected YYYY-MM", raw)
}
