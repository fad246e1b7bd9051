package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

type cartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// AddToCart puts a product in the session cart, merging quantity when the
// product is already there.
func (ct *Controller) AddToCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "productId is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := ct.findProduct(ctx, req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Товар не знайдено"))
		return
	}
	if !product.InStock {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Товару немає в наявності"))
		return
	}

	sess.Cart.Add(*product)
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
		"count": sess.Cart.Count(),
	}))
}

// RemoveFromCart drops a product from the cart entirely.
func (ct *Controller) RemoveFromCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.Cart.Remove(c.Param("productId"))
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
		"count": sess.Cart.Count(),
	}))
}

// IncreaseQuantity bumps a cart line by one.
func (ct *Controller) IncreaseQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.Cart.Increase(c.Param("productId"))
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Quantity increased", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
	}))
}

// DecreaseQuantity lowers a cart line by one, removing it at quantity 1.
func (ct *Controller) DecreaseQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.Cart.Decrease(c.Param("productId"))
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Quantity decreased", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
	}))
}

// ClearCart empties the cart.
func (ct *Controller) ClearCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.Cart.Clear()
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart cleared", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": 0,
	}))
}

// GetCart returns the current cart contents.
func (ct *Controller) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched", gin.H{
		"items": sess.Cart.Snapshot(),
		"total": sess.Cart.Total(),
		"count": sess.Cart.Count(),
	}))
}

// ToggleFavorite flips a product's favorite mark and reports the new state.
func (ct *Controller) ToggleFavorite(c *gin.Context) {
	sess := middleware.GetSession(c)
	favorited := sess.Favorites.Toggle(c.Param("productId"))
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Favorite toggled", gin.H{
		"favorited": favorited,
		"ids":       sess.Favorites.IDs(),
	}))
}

// GetFavorites lists the favorited product ids.
func (ct *Controller) GetFavorites(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Favorites fetched", gin.H{
		"ids": sess.Favorites.IDs(),
	}))
}
