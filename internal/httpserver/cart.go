package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	lines, err := h.Svc.List(ctx, c.QueryParam("user_id"))
	if err != nil {
		return fail(l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"cart_items": lines})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	var req AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "add_to_cart_error", err)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	line, err := h.Svc.Add(ctx, req.UserID, req.ProductID, quantity)
	if err != nil {
		return fail(l, "add_to_cart_error", err)
	}

	l.Info("cart_item_added", "cart_item_id", line.ID, "quantity", line.Quantity)
	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	var req UpdateCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return fail(l, "update_cart_error", err)
	}

	item, err := h.Svc.UpdateQuantity(ctx, req.CartItemID, req.Quantity)
	if err != nil {
		return fail(l, "update_cart_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":   "cart updated",
		"cart_item": item,
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "remove.cart")

	if err := h.Svc.Remove(ctx, c.QueryParam("cart_item_id")); err != nil {
		return fail(l, "remove_from_cart_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"message": "item removed from cart"})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	n, err := h.Svc.Clear(ctx, c.QueryParam("user_id"))
	if err != nil {
		return fail(l, "clear_cart_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"message": "cart cleared", "removed": n})
}
