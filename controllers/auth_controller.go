package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
)

// Login proxies credentials to the store API and binds the returned token
// to the session.
func (ct *Controller) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	auth, err := ct.api.Login(ctx, req)
	if err != nil {
		if apiErr, ok := err.(*storeapi.APIError); ok && apiErr.StatusCode == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Невірний email або пароль"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}

	sess := middleware.GetSession(c)
	sess.SetToken(auth.Token)
	sess.SetUser(&auth.User)
	ct.sessions.Persist(sess)

	logrus.Infof("✅ User %s logged in", auth.User.Email)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged in", auth.User))
}

// Register creates an account on the store API and signs the session in.
func (ct *Controller) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Name, email and password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	auth, err := ct.api.Register(ctx, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}

	sess := middleware.GetSession(c)
	sess.SetToken(auth.Token)
	sess.SetUser(&auth.User)
	ct.sessions.Persist(sess)

	logrus.Infof("✅ User %s registered", auth.User.Email)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Registered", auth.User))
}

// Logout drops the session's auth state. The store API is stateless, so
// nothing is revoked remotely.
func (ct *Controller) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	sess.ClearAuth()
	ct.sessions.Persist(sess)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}

// Me returns the signed-in user, refreshing the cached copy from the store
// API.
func (ct *Controller) Me(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.Token() == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Not signed in"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := ct.apiFor(sess).Me(ctx)
	if err != nil {
		if apiErr, ok := err.(*storeapi.APIError); ok && apiErr.StatusCode == http.StatusUnauthorized {
			sess.ClearAuth()
			ct.sessions.Persist(sess)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Session expired"))
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	sess.SetUser(user)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile fetched", user))
}

// UpdateProfile changes the signed-in user's name and email.
func (ct *Controller) UpdateProfile(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.Token() == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Not signed in"))
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid profile payload"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	user, err := ct.apiFor(sess).UpdateProfile(ctx, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	sess.SetUser(user)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated", user))
}

// UpdatePassword changes the signed-in user's password.
func (ct *Controller) UpdatePassword(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.Token() == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Not signed in"))
		return
	}

	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Current and new password are required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := ct.apiFor(sess).UpdatePassword(ctx, req); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Password updated", nil))
}

// ForgotPassword starts the reset flow. The store API answers the same way
// whether or not the address exists.
func (ct *Controller) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Email is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := ct.api.ForgotPassword(ctx, req); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reset email sent", nil))
}
