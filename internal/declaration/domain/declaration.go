// Package domain 税款申报服务领域层
// 生成摘要：
// 1) 定义申报单聚合根及其状态机
// 2) 定义差异核对引擎（纯函数）
// 3) 定义发票实体与行政费计算
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DeclarationStatus 申报单状态
type DeclarationStatus int8

const (
	DeclarationStatusSubmitted  DeclarationStatus = 1
	DeclarationStatusReconciled DeclarationStatus = 2 // 瞬态，不落库
	DeclarationStatusDiscrepant DeclarationStatus = 3
	DeclarationStatusInvoiced   DeclarationStatus = 4
)

func (s DeclarationStatus) String() string {
	switch s {
	case DeclarationStatusSubmitted:
		return "SUBMITTED"
	case DeclarationStatusReconciled:
		return "RECONCILED"
	case DeclarationStatusDiscrepant:
		return "DISCREPANT"
	case DeclarationStatusInvoiced:
		return "INVOICED"
	}
	return "UNKNOWN"
}

// IsTerminal 终态判断：终态申报单不可再变更，修正需提交新申报单
func (s DeclarationStatus) IsTerminal() bool {
	return s == DeclarationStatusDiscrepant || s == DeclarationStatusInvoiced
}

var (
	// ErrDeclarationNotFound 申报单不存在
	ErrDeclarationNotFound = errors.New("declaration not found")
	// ErrInvoiceNotFound 发票不存在
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvalidState 状态不允许当前操作
	ErrInvalidState = errors.New("invalid declaration state")
	// ErrStatusConflict 并发状态变更冲突（CAS 失败），调用方应重读终态结果
	ErrStatusConflict = errors.New("declaration status changed concurrently")
)

// Declaration 申报单聚合根
// 金额字段提交后不可变，修正金额必须提交新申报单（留存审计轨迹）。
type Declaration struct {
	gorm.Model
	DeclarationID   string            `gorm:"column:declaration_id;type:varchar(32);uniqueIndex;not null" json:"declaration_id"`
	ReferenceID     string            `gorm:"column:reference_id;type:varchar(32);uniqueIndex;not null" json:"reference_id"`
	InstitutionID   string            `gorm:"column:institution_id;type:varchar(64);index;not null" json:"institution_id"`
	Period          string            `gorm:"column:period;type:char(7);not null" json:"period"`
	DeclaredAmount  decimal.Decimal   `gorm:"column:declared_amount;type:decimal(20,2);not null" json:"declared_amount"`
	ReferenceAmount decimal.Decimal   `gorm:"column:reference_amount;type:decimal(20,2);not null" json:"reference_amount"`
	Status          DeclarationStatus `gorm:"column:status;type:tinyint;not null;default:1" json:"status"`

	domainEvents []DomainEvent `gorm:"-" json:"-"`
}

func (Declaration) TableName() string { return "tax_declarations" }

// NewDeclaration 创建申报单，初始状态 SUBMITTED
func NewDeclaration(declarationID, referenceID, institutionID, period string, declared, reference decimal.Decimal) *Declaration {
	d := &Declaration{
		DeclarationID:   declarationID,
		ReferenceID:     referenceID,
		InstitutionID:   institutionID,
		Period:          period,
		DeclaredAmount:  declared,
		ReferenceAmount: reference,
		Status:          DeclarationStatusSubmitted,
	}

	d.addEvent(&DeclarationSubmittedEvent{
		DeclarationID:  declarationID,
		ReferenceID:    referenceID,
		InstitutionID:  institutionID,
		Period:         period,
		DeclaredAmount: declared.String(),
		Timestamp:      time.Now(),
	})

	return d
}

// Reconcile 基于自身两个金额计算核对结果
func (d *Declaration) Reconcile() ReconciliationResult {
	return Reconcile(d.DeclaredAmount, d.ReferenceAmount)
}

// MarkDiscrepant 核对不一致，进入终态 DISCREPANT
func (d *Declaration) MarkDiscrepant(result ReconciliationResult) error {
	if d.Status != DeclarationStatusSubmitted {
		return ErrInvalidState
	}
	d.Status = DeclarationStatusDiscrepant

	d.addEvent(&DeclarationDiscrepantEvent{
		DeclarationID:      d.DeclarationID,
		InstitutionID:      d.InstitutionID,
		Period:             d.Period,
		DeclaredAmount:     d.DeclaredAmount.String(),
		ReferenceAmount:    d.ReferenceAmount.String(),
		DiscrepancyPercent: result.DiscrepancyPercent.String(),
		Timestamp:          time.Now(),
	})

	return nil
}

// MarkInvoiced 核对一致并已开票，进入终态 INVOICED
// 状态变更与发票落库必须在同一事务内提交，见仓储层。
func (d *Declaration) MarkInvoiced(invoice *Invoice) error {
	if d.Status != DeclarationStatusSubmitted {
		return ErrInvalidState
	}
	d.Status = DeclarationStatusInvoiced

	d.addEvent(&InvoiceIssuedEvent{
		InvoiceID:     invoice.InvoiceID,
		InvoiceNumber: invoice.InvoiceNumber,
		DeclarationID: d.DeclarationID,
		InstitutionID: d.InstitutionID,
		TaxAmount:     invoice.TaxAmount.String(),
		AdminFee:      invoice.AdminFee.String(),
		TotalAmount:   invoice.TotalAmount.String(),
		DueDate:       invoice.DueDate,
		Timestamp:     time.Now(),
	})

	return nil
}

func (d *Declaration) addEvent(event DomainEvent) {
	d.domainEvents = append(d.domainEvents, event)
}

func (d *Declaration) GetDomainEvents() []DomainEvent {
	return d.domainEvents
}

func (d *Declaration) ClearDomainEvents() {
	d.domainEvents = nil
}
