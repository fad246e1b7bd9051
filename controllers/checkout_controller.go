package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/checkout"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
)

// checkoutState is the wizard snapshot returned after every checkout call.
func checkoutState(sess *session.Session) gin.H {
	w := sess.Wizard()
	if w == nil {
		return gin.H{
			"active": false,
			"items":  sess.Cart.Snapshot(),
			"total":  sess.Cart.Total(),
		}
	}
	return gin.H{
		"active":   true,
		"step":     w.Step(),
		"customer": w.Customer(),
		"delivery": w.Delivery(),
		"payment":  w.Payment(),
		"items":    sess.Cart.Snapshot(),
		"total":    w.Total(),
	}
}

// StartCheckout opens the wizard at step one. An empty cart cannot enter
// checkout.
func (ct *Controller) StartCheckout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.Cart.Count() == 0 {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Кошик порожній"))
		return
	}
	w := checkout.NewWizard(sess.Cart, ct.apiFor(sess), sess.Router, sess.User())
	sess.SetWizard(w)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout started", checkoutState(sess)))
}

// CheckoutState reports the wizard's current position and data.
func (ct *Controller) CheckoutState(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Checkout state", checkoutState(sess)))
}

func activeWizard(c *gin.Context, sess *session.Session) *checkout.Wizard {
	w := sess.Wizard()
	if w == nil {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Оформлення замовлення не розпочато"))
		return nil
	}
	return w
}

// SubmitCustomerInfo completes step one.
func (ct *Controller) SubmitCustomerInfo(c *gin.Context) {
	sess := middleware.GetSession(c)
	w := activeWizard(c, sess)
	if w == nil {
		return
	}
	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid customer payload"))
		return
	}
	if err := w.NextCustomer(info); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(c, checkoutMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer info saved", checkoutState(sess)))
}

type deliveryPaymentRequest struct {
	Delivery models.DeliveryInfo `json:"delivery"`
	Payment  models.PaymentInfo  `json:"payment"`
}

// SubmitDeliveryPayment completes step two.
func (ct *Controller) SubmitDeliveryPayment(c *gin.Context) {
	sess := middleware.GetSession(c)
	w := activeWizard(c, sess)
	if w == nil {
		return
	}
	var req deliveryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid delivery payload"))
		return
	}
	if err := w.NextDelivery(req.Delivery, req.Payment); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse(c, checkoutMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Delivery and payment saved", checkoutState(sess)))
}

// CheckoutBack steps the wizard backward. Completed data is kept.
func (ct *Controller) CheckoutBack(c *gin.Context) {
	sess := middleware.GetSession(c)
	w := activeWizard(c, sess)
	if w == nil {
		return
	}
	w.Back()
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Stepped back", checkoutState(sess)))
}

// SubmitOrder finishes step three: the order is posted to the store API,
// the cart is cleared and navigation moves to the confirmation page.
func (ct *Controller) SubmitOrder(c *gin.Context) {
	sess := middleware.GetSession(c)
	w := activeWizard(c, sess)
	if w == nil {
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	order, err := w.Submit(ctx)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, checkout.ErrSubmitInFlight) {
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse(c, checkoutMessage(err)))
		return
	}

	logrus.Infof("✅ Order %s placed for %s", order.ID, order.Customer.Email)
	sess.ClearWizard()
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order placed", gin.H{
		"order":    order,
		"redirect": "/order-confirmation/" + order.ID,
	}))
}

// checkoutMessage maps wizard errors to customer-facing Ukrainian text.
func checkoutMessage(err error) string {
	switch {
	case errors.Is(err, checkout.ErrCustomerIncomplete):
		return "Вкажіть ім'я, email та телефон"
	case errors.Is(err, checkout.ErrCityRequired):
		return "Оберіть місто доставки"
	case errors.Is(err, checkout.ErrBranchRequired):
		return "Оберіть відділення Нової Пошти"
	case errors.Is(err, checkout.ErrBadDeliveryMethod):
		return "Невідомий спосіб доставки"
	case errors.Is(err, checkout.ErrBadPaymentMethod):
		return "Невідомий спосіб оплати"
	case errors.Is(err, checkout.ErrEmptyCart):
		return "Кошик порожній"
	case errors.Is(err, checkout.ErrSubmitInFlight):
		return "Замовлення вже відправляється"
	case errors.Is(err, checkout.ErrWrongStep):
		return "Дія недоступна на цьому кроці"
	}
	return friendlyMessage(err)
}
