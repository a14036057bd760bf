// Package interfaces 税款申报接口层
package interfaces

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/application"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
)

// HTTPHandler HTTP 接口处理器
type HTTPHandler struct {
	commandService *application.CommandService
	queryService   *application.QueryService
}

// NewHTTPHandler 创建 HTTP 处理器
func NewHTTPHandler(
	commandService *application.CommandService,
	queryService *application.QueryService,
) *HTTPHandler {
	return &HTTPHandler{
		commandService: commandService,
		queryService:   queryService,
	}
}

// RegisterRoutes 注册路由
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	decl := r.Group("/declarations")
	{
		decl.POST("", h.SubmitDeclaration)
		decl.POST("/:id/reconcile", h.ReconcileDeclaration)
		decl.GET("/:id", h.GetDeclaration)
		decl.GET("/:id/invoice", h.GetInvoice)
	}
	r.GET("/institutions/:id/declarations", h.ListDeclarations)
}

// SubmitDeclarationRequest 提交申报单请求
// 金额以字符串传输，服务端规范化，不接受浮点。
type SubmitDeclarationRequest struct {
	InstitutionID   string `json:"institution_id" binding:"required"`
	Period          string `json:"period" binding:"required"`
	DeclaredAmount  string `json:"declared_amount" binding:"required"`
	ReferenceAmount string `json:"reference_amount" binding:"required"`
}

// SubmitDeclaration 提交申报单
func (h *HTTPHandler) SubmitDeclaration(c *gin.Context) {
	var req SubmitDeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	cmd := application.SubmitDeclarationCommand{
		InstitutionID:   req.InstitutionID,
		Period:          req.Period,
		DeclaredAmount:  req.DeclaredAmount,
		ReferenceAmount: req.ReferenceAmount,
	}

	declaration, err := h.commandService.SubmitDeclaration(c.Request.Context(), cmd)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, declaration)
}

// ReconcileDeclaration 核对申报单
// 差异属于正常业务分支而非错误，与开票一样以 200 返回。
func (h *HTTPHandler) ReconcileDeclaration(c *gin.Context) {
	id := c.Param("id")
	result, err := h.commandService.ReconcileDeclaration(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, result)
}

// GetDeclaration 查询申报单
func (h *HTTPHandler) GetDeclaration(c *gin.Context) {
	id := c.Param("id")
	view, err := h.queryService.GetDeclaration(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, view)
}

// GetInvoice 查询申报单对应的发票
func (h *HTTPHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	invoice, err := h.queryService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, invoice)
}

// ListDeclarations 查询机构申报历史
func (h *HTTPHandler) ListDeclarations(c *gin.Context) {
	institutionID := c.Param("id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid limit", "")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid offset", "")
		return
	}

	declarations, err := h.queryService.ListDeclarations(c.Request.Context(), institutionID, limit, offset)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, declarations)
}

// renderError 按错误类别映射 HTTP 状态码
func (h *HTTPHandler) renderError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ErrorWithStatus(c, http.StatusBadRequest, validationErr.Reason, validationErr.Field)
	case errors.Is(err, domain.ErrDeclarationNotFound), errors.Is(err, domain.ErrInvoiceNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrInvalidState):
		response.ErrorWithStatus(c, http.StatusConflict, err.Error(), "")
	default:
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}
