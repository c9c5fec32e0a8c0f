package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wooltrace/internal/service"
)

// ShopHandler handles marketplace endpoints.
type ShopHandler struct {
	shopService service.ShopService
	userService service.UserService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(shopService service.ShopService, userService service.UserService) *ShopHandler {
	return &ShopHandler{shopService: shopService, userService: userService}
}

// Products handles GET /api/v1/shop/products
func (h *ShopHandler) Products(c *gin.Context) {
	offset, limit := pagination(c)
	products, total, err := h.shopService.Products(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Product handles GET /api/v1/shop/products/:id
func (h *ShopHandler) Product(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	product, err := h.shopService.Product(c.Request.Context(), batchID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// PlaceOrder handles POST /api/v1/shop/order
func (h *ShopHandler) PlaceOrder(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// The order confirmation email needs the buyer's name and address.
	buyer, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	order, err := h.shopService.PlaceOrder(c.Request.Context(), buyer, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// MyOrders handles GET /api/v1/shop/orders/my
func (h *ShopHandler) MyOrders(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orders, err := h.shopService.MyOrders(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, orders)
}

// DeleteOrder handles DELETE /api/v1/shop/order/:id
func (h *ShopHandler) DeleteOrder(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	if err := h.shopService.DeleteOrder(c.Request.Context(), orderID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "order cancelled"})
}

// PayOrder handles POST /api/v1/shop/order/:id/pay
func (h *ShopHandler) PayOrder(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	var input service.PayOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.shopService.PayOrder(c.Request.Context(), orderID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}
