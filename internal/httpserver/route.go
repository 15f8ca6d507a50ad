package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	Auth    *AuthHTTP
	Cart    *CartHTTP
	Catalog *CatalogHTTP
	Feed    *FeedHTTP
	// Search is nil when Elasticsearch is not configured.
	Search *SearchHTTP
	Ready  func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")
	api.POST("/register", d.Auth.Register)
	api.POST("/login", d.Auth.Login)

	cart := api.Group("/cart")
	cart.GET("", d.Cart.GetCart)
	cart.POST("/add", d.Cart.AddToCart)
	cart.PUT("/update", d.Cart.UpdateCart)
	cart.DELETE("/remove", d.Cart.RemoveFromCart)
	cart.DELETE("/clear", d.Cart.ClearCart)

	e.GET("/products", d.Catalog.ListProducts)
	e.GET("/products/:id", d.Catalog.GetProduct)

	e.GET("/fetch-products", d.Feed.FetchProducts)
	e.POST("/fetch-products", d.Feed.FetchProducts)

	if d.Search != nil {
		api.GET("/search", d.Search.Search)
	}
}
