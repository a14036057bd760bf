package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus 发票状态，本服务范围内开具即终态，后续缴款由结算侧处理
type InvoiceStatus int8

const (
	InvoiceStatusIssued InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	if s == InvoiceStatusIssued {
		return "ISSUED"
	}
	return "UNKNOWN"
}

// 行政费率 2%，缴款期限 14 天
var adminFeeRate = decimal.NewFromFloat(0.02)

const invoiceDueDays = 14

// Invoice 发票实体，每张申报单最多对应一张发票
// declaration_id 上的唯一索引在数据库层兜底这一约束。
type Invoice struct {
	gorm.Model
	InvoiceID     string          `gorm:"column:invoice_id;type:varchar(32);uniqueIndex;not null" json:"invoice_id"`
	InvoiceNumber string          `gorm:"column:invoice_number;type:varchar(32);uniqueIndex;not null" json:"invoice_number"`
	DeclarationID string          `gorm:"column:declaration_id;type:varchar(32);uniqueIndex;not null" json:"declaration_id"`
	InstitutionID string          `gorm:"column:institution_id;type:varchar(64);index;not null" json:"institution_id"`
	TaxAmount     decimal.Decimal `gorm:"column:tax_amount;type:decimal(20,2);not null" json:"tax_amount"`
	AdminFee      decimal.Decimal `gorm:"column:admin_fee;type:decimal(20,2);not null" json:"admin_fee"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(20,2);not null" json:"total_amount"`
	IssueDate     time.Time       `gorm:"column:issue_date;not null" json:"issue_date"`
	DueDate       time.Time       `gorm:"column:due_date;not null" json:"due_date"`
	Status        InvoiceStatus   `gorm:"column:status;type:tinyint;not null;default:1" json:"status"`
}

func (Invoice) TableName() string { return "tax_invoices" }

// NewInvoice 由核对一致的申报单推导发票
// 税额取申报金额，行政费为税额的 2%（四舍五入到分），到期日为开票日 +14 天。
func NewInvoice(invoiceID, invoiceNumber string, d *Declaration, issueDate time.Time) *Invoice {
	taxAmount := d.DeclaredAmount
	adminFee := taxAmount.Mul(adminFeeRate).Round(2)

	return &Invoice{
		InvoiceID:     invoiceID,
		InvoiceNumber: invoiceNumber,
		DeclarationID: d.DeclarationID,
		InstitutionID: d.InstitutionID,
		TaxAmount:     taxAmount,
		AdminFee:      adminFee,
		TotalAmount:   taxAmount.Add(adminFee),
		IssueDate:     issueDate,
		DueDate:       issueDate.AddDate(0, 0, invoiceDueDays),
		Status:        InvoiceStatusIssued,
	}
}
