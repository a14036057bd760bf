// Package application 税款申报应用层
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
)

// CommandService 申报单命令服务，负责申报单从提交到终态的全部状态流转
type CommandService struct {
	declarationRepo domain.DeclarationRepository
	invoiceRepo     domain.InvoiceRepository
	eventPublisher  domain.EventPublisher
	logger          *slog.Logger
}

// NewCommandService 创建命令服务
func NewCommandService(
	declarationRepo domain.DeclarationRepository,
	invoiceRepo domain.InvoiceRepository,
	eventPublisher domain.EventPublisher,
	logger *slog.Logger,
) *CommandService {
	return &CommandService{
		declarationRepo: declarationRepo,
		invoiceRepo:     invoiceRepo,
		eventPublisher:  eventPublisher,
		logger:          logger,
	}
}

// SubmitDeclarationCommand 提交申报单命令，金额与期间为原始字符串，由本服务规范化
type SubmitDeclarationCommand struct {
	InstitutionID   string
	Period          string
	DeclaredAmount  string
	ReferenceAmount string
}

// SubmitDeclaration 提交申报单
// 校验失败不产生任何持久化记录，直接返回 ValidationError。
func (s *CommandService) SubmitDeclaration(ctx context.Context, cmd SubmitDeclarationCommand) (*domain.Declaration, error) {
	if strings.TrimSpace(cmd.InstitutionID) == "" {
		return nil, &domain.ValidationError{Field: "institution_id", Reason: "institution is required"}
	}

	declared, err := domain.ParseAmount(cmd.DeclaredAmount)
	if err != nil {
		return nil, &domain.ValidationError{Field: "declared_amount", Reason: err.Error()}
	}
	if declared.Sign() <= 0 {
		return nil, &domain.ValidationError{Field: "declared_amount", Reason: "must be greater than zero"}
	}

	// 参考金额由评估方计算给出，允许为零，不允许缺失或为负
	reference, err := domain.ParseAmount(cmd.ReferenceAmount)
	if err != nil {
		return nil, &domain.ValidationError{Field: "reference_amount", Reason: err.Error()}
	}

	period, err := domain.ParsePeriod(cmd.Period)
	if err != nil {
		return nil, &domain.ValidationError{Field: "period", Reason: err.Error()}
	}

	declarationID := fmt.Sprintf("DECL-%d", idgen.GenID())
	referenceID := fmt.Sprintf("TD%s%s", strings.ReplaceAll(period, "-", ""), idgen.GenShortID(6))

	declaration := domain.NewDeclaration(declarationID, referenceID, cmd.InstitutionID, period, declared, reference)

	if err := s.declarationRepo.Save(ctx, declaration); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, declaration.GetDomainEvents())
	declaration.ClearDomainEvents()

	s.logger.InfoContext(ctx, "declaration submitted",
		"declaration_id", declarationID,
		"institution_id", cmd.InstitutionID,
		"period", period,
		"declared_amount", declared.String())

	return declaration, nil
}

// ReconcileDeclaration 核对申报单并按结果流转
// 对同一申报单的重复或并发调用是安全的：状态流出 SUBMITTED 的变更以 CAS 提交，
// 恰有一个调用方胜出；其余调用方观测到已有的终态结果而不是报错。
func (s *CommandService) ReconcileDeclaration(ctx context.Context, declarationID string) (*ReconcileResult, error) {
	declaration, err := s.declarationRepo.GetByID(ctx, declarationID)
	if err != nil {
		return nil, err
	}

	if declaration.Status != domain.DeclarationStatusSubmitted {
		return s.terminalOutcome(ctx, declaration)
	}

	result := declaration.Reconcile()
	if !result.Aligned {
		return s.markDiscrepant(ctx, declaration, result)
	}
	return s.issueInvoice(ctx, declaration, result)
}

func (s *CommandService) markDiscrepant(ctx context.Context, declaration *domain.Declaration, result domain.ReconciliationResult) (*ReconcileResult, error) {
	if err := declaration.MarkDiscrepant(result); err != nil {
		return nil, err
	}

	if err := s.declarationRepo.MarkDiscrepant(ctx, declaration.DeclarationID); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return s.reloadOutcome(ctx, declaration.DeclarationID)
		}
		return nil, err
	}

	s.publishEvents(ctx, declaration.GetDomainEvents())
	declaration.ClearDomainEvents()

	s.logger.InfoContext(ctx, "declaration discrepant",
		"declaration_id", declaration.DeclarationID,
		"discrepancy_percent", result.DiscrepancyPercent.String())

	return newDiscrepantResult(declaration, result), nil
}

func (s *CommandService) issueInvoice(ctx context.Context, declaration *domain.Declaration, result domain.ReconciliationResult) (*ReconcileResult, error) {
	issueDate := time.Now()
	invoiceID := fmt.Sprintf("INV-%d", idgen.GenID())
	invoiceNumber := fmt.Sprintf("TI%s%s", issueDate.Format("20060102"), idgen.GenShortID(6))

	invoice := domain.NewInvoice(invoiceID, invoiceNumber, declaration, issueDate)

	if err := declaration.MarkInvoiced(invoice); err != nil {
		return nil, err
	}

	if err := s.declarationRepo.SaveInvoiced(ctx, declaration, invoice); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return s.reloadOutcome(ctx, declaration.DeclarationID)
		}
		return nil, err
	}

	s.publishEvents(ctx, declaration.GetDomainEvents())
	declaration.ClearDomainEvents()

	s.logger.InfoContext(ctx, "invoice issued",
		"declaration_id", declaration.DeclarationID,
		"invoice_id", invoiceID,
		"total_amount", invoice.TotalAmount.String())

	return newInvoicedResult(declaration, invoice), nil
}

// reloadOutcome CAS 落败后重读申报单，向落败方返回胜出方产生的终态结果
func (s *CommandService) reloadOutcome(ctx context.Context, declarationID string) (*ReconcileResult, error) {
	declaration, err := s.declarationRepo.GetByID(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	return s.terminalOutcome(ctx, declaration)
}

// terminalOutcome 将已处于终态的申报单映射为核对结果
// 差异百分比属于推导状态，按需重算。
func (s *CommandService) terminalOutcome(ctx context.Context, declaration *domain.Declaration) (*ReconcileResult, error) {
	switch declaration.Status {
	case domain.DeclarationStatusDiscrepant:
		return newDiscrepantResult(declaration, declaration.Reconcile()), nil
	case domain.DeclarationStatusInvoiced:
		invoice, err := s.invoiceRepo.GetByDeclarationID(ctx, declaration.DeclarationID)
		if err != nil {
			return nil, err
		}
		return newInvoicedResult(declaration, invoice), nil
	default:
		// SUBMITTED 之外的非终态（落库的瞬态）不应出现
		return nil, domain.ErrInvalidState
	}
}

// publishEvents 发布领域事件
func (s *CommandService) publishEvents(ctx context.Context, events []domain.DomainEvent) {
	for _, event := range events {
		if err := s.eventPublisher.Publish(ctx, event.EventName(), "", event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish event",
				"event", event.EventName(),
				"error", err)
		}
	}
}
