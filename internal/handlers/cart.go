package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/storefront-backend/internal/services"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (ch *CartHandler) GetCart(c *gin.Context) {
	items, err := ch.cartService.GetCart(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cart_fetch_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

type cartAddRequest struct {
	ProductID  uuid.UUID      `json:"product_id"`
	Quantity   int            `json:"quantity"`
	Attributes datatypes.JSON `json:"attributes"`
}

func (ch *CartHandler) AddItem(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	items, err := ch.cartService.AddToCart(c.Request.Context(), req.ProductID, req.Quantity, req.Attributes)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cart_add_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

// BuyNow puts a single item into a temporary hold that shadows the saved
// cart until checkout, clear, or the next regular add.
func (ch *CartHandler) BuyNow(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	items, err := ch.cartService.AddToCartTemporary(c.Request.Context(), req.ProductID, req.Quantity, req.Attributes)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cart_add_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items, "temporary": true})
}

func (ch *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	items, err := ch.cartService.RemoveFromCart(c.Request.Context(), productID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cart_remove_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func (ch *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	items, err := ch.cartService.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cart_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func (ch *CartHandler) Clear(c *gin.Context) {
	if err := ch.cartService.ClearCart(c.Request.Context()); err != nil {
		RespondError(c, http.StatusInternalServerError, "cart_clear_failed", err)
		return
	}
	RespondOK(c, gin.H{"items": []any{}})
}
