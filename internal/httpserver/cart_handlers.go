package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"agrimarket-cart/internal/domain"
	cartsvc "agrimarket-cart/internal/service/cart"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cartHandler struct {
	carts    CartProvider
	sessions SessionService
	taxRate  decimal.Decimal
	now      func() time.Time
	logger   *log.Logger
}

func (h *cartHandler) createSession(c *gin.Context) {
	id, err := h.sessions.Issue(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": id})
}

func (h *cartHandler) forgetSession(c *gin.Context) {
	if err := h.carts.Forget(c.Request.Context(), sessionFromContext(c.Request.Context())); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cartHandler) getCart(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	h.respond(c, store.SessionID(), store.Snapshot())
}

func (h *cartHandler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		h.fail(c, err)
		return
	}
	openDrawer, err := strconv.ParseBool(c.DefaultQuery("openDrawer", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "openDrawer must be a boolean"})
		return
	}

	store, ok := h.store(c)
	if !ok {
		return
	}
	add := store.AddItem
	if openDrawer {
		add = store.AddItemAndOpen
	}
	state, err := add(c.Request.Context(), req.toLineItem(mode))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, store.SessionID(), state)
}

func (h *cartHandler) updateQuantity(c *gin.Context) {
	mode, err := domain.ParseMode(c.Param("mode"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quantity required"})
		return
	}
	store, ok := h.store(c)
	if !ok {
		return
	}
	state, err := store.UpdateQuantity(c.Request.Context(), c.Param("productId"), mode, *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, store.SessionID(), state)
}

func (h *cartHandler) removeItem(c *gin.Context) {
	mode, err := domain.ParseMode(c.Param("mode"))
	if err != nil {
		h.fail(c, err)
		return
	}
	store, ok := h.store(c)
	if !ok {
		return
	}
	state, err := store.RemoveItem(c.Request.Context(), c.Param("productId"), mode)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, store.SessionID(), state)
}

func (h *cartHandler) clearCart(c *gin.Context) {
	h.dispatch(c, cartsvc.ClearCart{})
}

func (h *cartHandler) toggleDrawer(c *gin.Context) {
	h.dispatch(c, cartsvc.ToggleDrawer{})
}

func (h *cartHandler) openDrawer(c *gin.Context) {
	h.dispatch(c, cartsvc.OpenDrawer{})
}

func (h *cartHandler) closeDrawer(c *gin.Context) {
	h.dispatch(c, cartsvc.CloseDrawer{})
}

func (h *cartHandler) orderPayload(c *gin.Context) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartsvc.BuildOrderRequest(store.Snapshot(), h.now()))
}

func (h *cartHandler) dispatch(c *gin.Context, action cartsvc.Action) {
	store, ok := h.store(c)
	if !ok {
		return
	}
	state, err := store.Dispatch(c.Request.Context(), action)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, store.SessionID(), state)
}

func (h *cartHandler) store(c *gin.Context) (*cartsvc.Store, bool) {
	ctx := c.Request.Context()
	store, err := h.carts.Open(ctx, sessionFromContext(ctx))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return store, true
}

func (h *cartHandler) respond(c *gin.Context, sessionID string, state domain.CartState) {
	c.JSON(http.StatusOK, toCartResponse(sessionID, state, h.taxRate))
}

func (h *cartHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProductID),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRentalDays),
		errors.Is(err, domain.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, cartsvc.ErrStoreClosed):
		c.JSON(http.StatusConflict, gin.H{"message": "session was forgotten, retry"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		h.logger.Printf("cart api: %s %s error=%v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
