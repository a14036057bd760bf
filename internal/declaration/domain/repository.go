// Package domain 税款申报服务仓储接口
package domain

import "context"

type DeclarationRepository interface {
	Save(ctx context.Context, declaration *Declaration) error
	GetByID(ctx context.Context, declarationID string) (*Declaration, error)
	ListByInstitution(ctx context.Context, institutionID string, limit, offset int) ([]*Declaration, error)

	// MarkDiscrepant 以 SUBMITTED 为前置条件做状态 CAS，
	// 并发丢失时返回 ErrStatusConflict，调用方重读终态。
	MarkDiscrepant(ctx context.Context, declarationID string) error

	// SaveInvoiced 在单个事务内完成 SUBMITTED→INVOICED 的状态 CAS 与发票落库，
	// 两者同时提交或同时回滚。并发丢失时返回 ErrStatusConflict。
	SaveInvoiced(ctx context.Context, declaration *Declaration, invoice *Invoice) error
}

type InvoiceRepository interface {
	GetByDeclarationID(ctx context.Context, declarationID string) (*Invoice, error)
}

// EventPublisher 领域事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
