package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/util"
)

type SearchHTTP struct {
	Index *search.Index
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.products")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return fail(l, "search_error", fmt.Errorf("%w: q is required", domain.ErrValidation))
	}
	page, size := util.ClampPage(
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("size"), 10),
	)
	from, limit := util.Calculate(page, size)

	total, products, err := h.Index.Search(ctx, q, from, limit)
	if err != nil {
		return fail(l, "search_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":     products,
		"total":        total,
		"pages":        util.PageCount(total, size),
		"current_page": page,
		"per_page":     size,
	})
}
