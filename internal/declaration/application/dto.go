package application

import "github.com/wyfcoding/taxreconciliation/internal/declaration/domain"

// ReconcileResult 核对操作返回给调用方的结果
// 金额字段以十进制字符串传输，避免浮点误差。
type ReconcileResult struct {
	DeclarationID      string          `json:"declaration_id"`
	Status             string          `json:"status"`
	DiscrepancyPercent string          `json:"discrepancy_percent"`
	DeclaredAmount     string          `json:"declared_amount"`
	ReferenceAmount    string          `json:"reference_amount"`
	Invoice            *domain.Invoice `json:"invoice,omitempty"`
}

func newDiscrepantResult(d *domain.Declaration, result domain.ReconciliationResult) *ReconcileResult {
	return &ReconcileResult{
		DeclarationID:      d.DeclarationID,
		Status:             domain.DeclarationStatusDiscrepant.String(),
		DiscrepancyPercent: result.DiscrepancyPercent.String(),
		DeclaredAmount:     d.DeclaredAmount.String(),
		ReferenceAmount:    d.ReferenceAmount.String(),
	}
}

func newInvoicedResult(d *domain.Declaration, invoice *domain.Invoice) *ReconcileResult {
	return &ReconcileResult{
		DeclarationID:      d.DeclarationID,
		Status:             domain.DeclarationStatusInvoiced.String(),
		DiscrepancyPercent: "0",
		DeclaredAmount:     d.DeclaredAmount.String(),
		ReferenceAmount:    d.ReferenceAmount.String(),
		Invoice:            invoice,
	}
}

// DeclarationView 申报单查询视图，核对结果为即时推导
type DeclarationView struct {
	Declaration    *domain.Declaration         `json:"declaration"`
	Reconciliation domain.ReconciliationResult `json:"reconciliation"`
}
