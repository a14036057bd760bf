// Package domain 税款申报服务领域事件
package domain

import "time"

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// DeclarationSubmittedEvent 申报单提交事件
type DeclarationSubmittedEvent struct {
	DeclarationID  string    `json:"declaration_id"`
	ReferenceID    string    `json:"reference_id"`
	InstitutionID  string    `json:"institution_id"`
	Period         string    `json:"period"`
	DeclaredAmount string    `json:"declared_amount"`
	Timestamp      time.Time `json:"timestamp"`
}

func (e *DeclarationSubmittedEvent) EventName() string     { return "declaration.submitted" }
func (e *DeclarationSubmittedEvent) OccurredAt() time.Time { return e.Timestamp }

// DeclarationDiscrepantEvent 核对不一致事件
type DeclarationDiscrepantEvent struct {
	DeclarationID      string    `json:"declaration_id"`
	InstitutionID      string    `json:"institution_id"`
	Period             string    `json:"period"`
	DeclaredAmount     string    `json:"declared_amount"`
	ReferenceAmount    string    `json:"reference_amount"`
	DiscrepancyPercent string    `json:"discrepancy_percent"`
	Timestamp          time.Time `json:"timestamp"`
}

func (e *DeclarationDiscrepantEvent) EventName() string     { return "declaration.discrepant" }
func (e *DeclarationDiscrepantEvent) OccurredAt() time.Time { return e.Timestamp }

// InvoiceIssuedEvent 发票开具事件
type InvoiceIssuedEvent struct {
	InvoiceID     string    `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	DeclarationID string    `json:"declaration_id"`
	InstitutionID string    `json:"institution_id"`
	TaxAmount     string    `json:"tax_amount"`
	AdminFee      string    `json:"admin_fee"`
	TotalAmount   string    `json:"total_amount"`
	DueDate       time.Time `json:"due_date"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e *InvoiceIssuedEvent) EventName() string     { return "invoice.issued" }
func (e *InvoiceIssuedEvent) OccurredAt() time.Time { return e.Timestamp }
