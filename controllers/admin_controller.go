package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/cache"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
)

// CreateTrailer adds a trailer through the store API. The catalog cache is
// dropped only after the store API confirms the write.
func (ct *Controller) CreateTrailer(c *gin.Context) {
	ct.createProduct(c, func(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
		return ct.apiFor(middleware.GetSession(c)).CreateTrailer(ctx, req)
	})
}

// CreateComponent adds a component through the store API.
func (ct *Controller) CreateComponent(c *gin.Context) {
	ct.createProduct(c, func(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
		return ct.apiFor(middleware.GetSession(c)).CreateComponent(ctx, req)
	})
}

func (ct *Controller) createProduct(c *gin.Context, create func(context.Context, models.ProductRequest) (*models.Product, error)) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product payload: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := create(ctx, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}

	catalog_cache.Invalidate()
	logrus.Infof("✅ Product %s created", product.ID)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created", product))
}

// UpdateTrailer edits a trailer through the store API.
func (ct *Controller) UpdateTrailer(c *gin.Context) {
	ct.updateProduct(c, func(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
		return ct.apiFor(middleware.GetSession(c)).UpdateTrailer(ctx, id, req)
	})
}

// UpdateComponent edits a component through the store API.
func (ct *Controller) UpdateComponent(c *gin.Context) {
	ct.updateProduct(c, func(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
		return ct.apiFor(middleware.GetSession(c)).UpdateComponent(ctx, id, req)
	})
}

func (ct *Controller) updateProduct(c *gin.Context, update func(context.Context, string, models.ProductRequest) (*models.Product, error)) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product payload: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	product, err := update(ctx, c.Param("id"), req)
	if err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated", product))
}

// DeleteTrailer removes a trailer through the store API.
func (ct *Controller) DeleteTrailer(c *gin.Context) {
	ct.deleteProduct(c, func(ctx context.Context, id string) error {
		return ct.apiFor(middleware.GetSession(c)).DeleteTrailer(ctx, id)
	})
}

// DeleteComponent removes a component through the store API.
func (ct *Controller) DeleteComponent(c *gin.Context) {
	ct.deleteProduct(c, func(ctx context.Context, id string) error {
		return ct.apiFor(middleware.GetSession(c)).DeleteComponent(ctx, id)
	})
}

func (ct *Controller) deleteProduct(c *gin.Context, remove func(context.Context, string) error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := remove(ctx, c.Param("id")); err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}

	catalog_cache.Invalidate()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted", nil))
}

// UpdateOrderStatus moves an order along its lifecycle.
func (ct *Controller) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Status must be one of Processing, Shipped, Delivered, Cancelled"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := ct.apiFor(middleware.GetSession(c)).UpdateOrderStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated", order))
}

// DeleteOrder removes an order.
func (ct *Controller) DeleteOrder(c *gin.Context) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := ct.apiFor(middleware.GetSession(c)).DeleteOrder(ctx, c.Param("id")); err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Order not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order deleted", nil))
}

// UpdateUser edits a user's name, email or role.
func (ct *Controller) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid user payload"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := ct.apiFor(middleware.GetSession(c)).UpdateUser(ctx, c.Param("id"), req)
	if err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User updated", user))
}

// DeleteUser removes an account.
func (ct *Controller) DeleteUser(c *gin.Context) {
	sess := middleware.GetSession(c)
	if u := sess.User(); u != nil && u.ID == c.Param("id") {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "You cannot delete your own account"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := ct.apiFor(sess).DeleteUser(ctx, c.Param("id")); err != nil {
		if storeapi.IsNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "User not found"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User deleted", nil))
}

// UploadImage pushes a product image to cloudinary and returns its URL.
func (ct *Controller) UploadImage(c *gin.Context) {
	if ct.media == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Image uploads are not configured"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "image file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Could not read uploaded file"))
		return
	}
	defer src.Close()

	// Uploads carry the whole file, so they get a longer window than the
	// standard API timeout.
	ctx, cancel := config.WithCustomTimeout(60 * time.Second)
	defer cancel()

	url, err := ct.media.UploadImage(ctx, src, "products")
	if err != nil {
		logrus.Errorf("❌ Image upload failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Image upload failed"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image uploaded", gin.H{"url": url}))
}
