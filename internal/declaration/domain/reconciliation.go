package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ReconciliationResult 核对结果，由申报金额与参考金额即时推导，不单独落库
type ReconciliationResult struct {
	DiscrepancyPercent decimal.Decimal `json:"discrepancy_percent"`
	Aligned            bool            `json:"aligned"`
}

// Reconcile 计算申报金额相对参考金额的带符号差异百分比
// 一致性采用精确匹配规则（无容差带）：差异百分比为 0 才视为一致。
// 参考金额为 0 时不做除法：申报同为 0 视为一致，否则差异记为 +100%。
func Reconcile(declared, reference decimal.Decimal) ReconciliationResult {
	if reference.IsZero() {
		if declared.IsZero() {
			return ReconciliationResult{DiscrepancyPercent: decimal.Zero, Aligned: true}
		}
		return ReconciliationResult{DiscrepancyPercent: hundred, Aligned: false}
	}

	percent := declared.Sub(reference).Div(reference).Mul(hundred).Round(2)
	return ReconciliationResult{
		DiscrepancyPercent: percent,
		Aligned:            percent.IsZero(),
	}
}
