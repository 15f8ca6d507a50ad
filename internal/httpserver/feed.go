package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/feed"
	"github.com/Skotchmaster/storefront/internal/logging"
)

type FeedHTTP struct {
	Ingestor *feed.Ingestor
}

func (h *FeedHTTP) FetchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "fetch.products")

	n, err := h.Ingestor.RefreshCatalog(ctx)
	if err != nil {
		return fail(l, "fetch_products_error", err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "products fetched and stored",
		"count":   n,
	})
}
