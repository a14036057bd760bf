package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
)

// QueryService 申报单查询服务
type QueryService struct {
	declarationRepo domain.DeclarationRepository
	invoiceRepo     domain.InvoiceRepository
	logger          *slog.Logger
}

// NewQueryService 创建查询服务
func NewQueryService(
	declarationRepo domain.DeclarationRepository,
	invoiceRepo domain.InvoiceRepository,
	logger *slog.Logger,
) *QueryService {
	return &QueryService{
		declarationRepo: declarationRepo,
		invoiceRepo:     invoiceRepo,
		logger:          logger,
	}
}

// GetDeclaration 查询申报单及其即时推导的核对结果
func (s *QueryService) GetDeclaration(ctx context.Context, declarationID string) (*DeclarationView, error) {
	declaration, err := s.declarationRepo.GetByID(ctx, declarationID)
	if err != nil {
		return nil, err
	}
	return &DeclarationView{
		Declaration:    declaration,
		Reconciliation: declaration.Reconcile(),
	}, nil
}

// GetInvoice 按申报单查询发票，申报单未开票时返回 ErrInvoiceNotFound
func (s *QueryService) GetInvoice(ctx context.Context, declarationID string) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByDeclarationID(ctx, declarationID)
}

// ListDeclarations 查询机构的申报历史，按创建时间倒序
func (s *QueryService) ListDeclarations(ctx context.Context, institutionID string, limit, offset int) ([]*domain.Declaration, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.declarationRepo.ListByInstitution(ctx, institutionID, limit, offset)
}
