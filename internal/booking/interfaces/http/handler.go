package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/fxbooking/internal/booking/application"
	"github.com/wyfcoding/fxbooking/internal/booking/domain"
	"github.com/wyfcoding/fxbooking/pkg/logger"
	"github.com/wyfcoding/fxbooking/pkg/response"
)

// BookingHandler 交易预订 HTTP 处理器
type BookingHandler struct {
	commands *application.BookingCommandService
	queries  *application.BookingQueryService
}

// NewBookingHandler 创建 HTTP 处理器实例
func NewBookingHandler(commands *application.BookingCommandService, queries *application.BookingQueryService) *BookingHandler {
	return &BookingHandler{commands: commands, queries: queries}
}

// RegisterRoutes 注册路由
func (h *BookingHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1/trades")
	{
		api.POST("", h.BookTrade)
		api.GET("", h.ListTrades)
		api.GET("/range", h.ListTradesByDateRange)
		api.GET("/expiring", h.ListExpiringTrades)
		api.GET("/reference/:reference", h.GetTradeByReference)
		api.GET("/:id", h.GetTrade)
		api.PUT("/:id/status", h.UpdateTradeStatus)
		api.POST("/:id/cancel", h.CancelTrade)
	}
}

// BookTrade 录入交易
func (h *BookingHandler) BookTrade(c *gin.Context) {
	var httpReq BookTradeRequest
	if err := c.ShouldBindJSON(&httpReq); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req, err := httpReq.ToDomain()
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.commands.BookTrade(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateTradeStatus 变更交易状态
func (h *BookingHandler) UpdateTradeStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	trade, err := h.commands.UpdateTradeStatus(c.Request.Context(), id, domain.TradeStatus(req.NewStatus))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, trade)
}

// CancelTrade 撤销交易
func (h *BookingHandler) CancelTrade(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.commands.CancelTrade(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "trade cancelled", nil)
}

// GetTrade 按 id 查询交易
func (h *BookingHandler) GetTrade(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	trade, err := h.queries.GetTrade(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, trade)
}

// GetTradeByReference 按交易编号查询
func (h *BookingHandler) GetTradeByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, "reference is required", "")
		return
	}

	trade, err := h.queries.GetTradeByReference(c.Request.Context(), reference)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, trade)
}

// ListTrades 按条件分页查询
func (h *BookingHandler) ListTrades(c *gin.Context) {
	filter := domain.TradeFilter{}
	if v := c.Query("product_type"); v != "" {
		pt := domain.ProductType(v)
		filter.ProductType = &pt
	}
	if v := c.Query("status"); v != "" {
		st := domain.TradeStatus(v)
		filter.Status = &st
	}
	if v := c.Query("counterparty_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid counterparty_id", "")
			return
		}
		cpID := uint(id)
		filter.Counterparty = &cpID
	}
	if v := c.Query("base_currency"); v != "" {
		filter.BaseCurrency = &v
	}
	if v := c.Query("quote_currency"); v != "" {
		filter.QuoteCurrency = &v
	}
	filter.Limit = h.parseIntQuery(c, "limit", 50)
	filter.Offset = h.parseIntQuery(c, "offset", 0)

	trades, total, err := h.queries.ListTrades(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"trades": trades, "total": total})
}

// ListTradesByDateRange 按交易日区间查询
func (h *BookingHandler) ListTradesByDateRange(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD", "")
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD", "")
		return
	}
	limit := h.parseIntQuery(c, "limit", 50)
	offset := h.parseIntQuery(c, "offset", 0)

	trades, total, err := h.queries.ListTradesByDateRange(c.Request.Context(), start, end, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"trades": trades, "total": total})
}

// ListExpiringTrades 查询即将到期的活跃交易
func (h *BookingHandler) ListExpiringTrades(c *gin.Context) {
	days := h.parseIntQuery(c, "days", 7)

	trades, err := h.queries.ListExpiringTrades(c.Request.Context(), days)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, gin.H{"trades": trades})
}

func (h *BookingHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid trade id", "")
		return 0, false
	}
	return uint(id), true
}

func (h *BookingHandler) parseIntQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// writeError 将领域错误映射为 HTTP 状态码。
// 业务规则拒绝是高频预期路径，只记 debug；其余按内部错误处理。
func (h *BookingHandler) writeError(c *gin.Context, err error) {
	var ruleErr *domain.BusinessRuleError
	switch {
	case errors.As(err, &ruleErr):
		logger.Debug(c.Request.Context(), "request rejected by business rule", "rule", ruleErr.Rule, "message", ruleErr.Message)
		response.ErrorWithStatus(c, http.StatusBadRequest, ruleErr.Message, ruleErr.Rule)
	case errors.Is(err, domain.ErrDuplicateTradeReference):
		response.ErrorWithStatus(c, http.StatusBadRequest, "Trade reference already exists", "")
	case errors.Is(err, domain.ErrTradeNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "Trade not found", "")
	case errors.Is(err, domain.ErrCounterpartyNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, "Counterparty not found", "")
	default:
		logger.Error(c.Request.Context(), "internal error", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "internal server error", "")
	}
}
