package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) Checkout(c *gin.Context) {
	var req struct {
		AddressID *uuid.UUID `json:"address_id"`
		Note      string     `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	order, err := oh.orderService.Checkout(c.Request.Context(), services.CheckoutInput{
		AddressID: req.AddressID,
		Note:      req.Note,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "checkout_failed", err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}

func (oh *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	order, err := oh.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "order_fetch_failed", err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}

func (oh *OrderHandler) ListMyOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page, err := oh.orderService.ListMyOrders(c.Request.Context(), limit, offset)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "orders_list_failed", err)
		return
	}
	RespondOK(c, page)
}

func (oh *OrderHandler) ListOrders(c *gin.Context) {
	filter := repos.OrderFilter{Status: c.Query("status")}
	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
			return
		}
		filter.UserID = &userID
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	page, err := oh.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "orders_list_failed", err)
		return
	}
	RespondOK(c, page)
}

func (oh *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	order, err := oh.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "order_status_failed", err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}
