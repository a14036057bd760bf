// Package mysql 实现税款申报服务的 MySQL 仓储层，基于 GORM。
package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
	"gorm.io/gorm"
)

// declarationRepository GORM 申报单仓储实现
type declarationRepository struct {
	db *gorm.DB
}

// NewDeclarationRepository 创建申报单仓储
func NewDeclarationRepository(db *gorm.DB) domain.DeclarationRepository {
	return &declarationRepository{db: db}
}

// Save 保存新提交的申报单
func (r *declarationRepository) Save(ctx context.Context, declaration *domain.Declaration) error {
	return r.db.WithContext(ctx).Create(declaration).Error
}

// GetByID 根据业务 ID 获取申报单
func (r *declarationRepository) GetByID(ctx context.Context, declarationID string) (*domain.Declaration, error) {
	var declaration domain.Declaration
	if err := r.db.WithContext(ctx).Where("declaration_id = ?", declarationID).First(&declaration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDeclarationNotFound
		}
		return nil, err
	}
	return &declaration, nil
}

// ListByInstitution 查询机构申报历史，最新在前
func (r *declarationRepository) ListByInstitution(ctx context.Context, institutionID string, limit, offset int) ([]*domain.Declaration, error) {
	var declarations []*domain.Declaration
	err := r.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&declarations).Error
	return declarations, err
}

// MarkDiscrepant SUBMITTED→DISCREPANT 的条件更新
// 影响行数为 0 说明状态已被并发流转，返回 ErrStatusConflict。
func (r *declarationRepository) MarkDiscrepant(ctx context.Context, declarationID string) error {
	res := r.db.WithContext(ctx).Model(&domain.Declaration{}).
		Where("declaration_id = ? AND status = ?", declarationID, domain.DeclarationStatusSubmitted).
		Updates(map[string]any{
			"status":     domain.DeclarationStatusDiscrepant,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

// SaveInvoiced 状态流转与开票的原子提交
// SUBMITTED→INVOICED 的条件更新与发票插入在同一事务内，任一失败整体回滚，
// 申报单停留在 SUBMITTED，调用方可安全重试。
func (r *declarationRepository) SaveInvoiced(ctx context.Context, declaration *domain.Declaration, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Declaration{}).
			Where("declaration_id = ? AND status = ?", declaration.DeclarationID, domain.DeclarationStatusSubmitted).
			Updates(map[string]any{
				"status":     domain.DeclarationStatusInvoiced,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusConflict
		}

		if err := tx.Create(invoice).Error; err != nil {
			// declaration_id 唯一索引兜底一单一票约束
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrStatusConflict
			}
			return err
		}
		return nil
	})
}

// invoiceRepository GORM 发票仓储实现
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓储
func NewInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	return &invoiceRepository{db: db}
}

// GetByDeclarationID 根据申报单获取发票
func (r *invoiceRepository) GetByDeclarationID(ctx context.Context, declarationID string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := r.db.WithContext(ctx).Where("declaration_id = ?", declarationID).First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}
