package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/catalog"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/config"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/navigation"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/storeapi"
)

// ViewPayload is what the thin client renders: the resolved view, its data,
// and a redirect path when navigation was forcibly replaced.
type ViewPayload struct {
	View     navigation.View `json:"view"`
	Data     any             `json:"data,omitempty"`
	NotFound bool            `json:"notFound,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
}

// listingData is the payload of the two listing pages.
type listingData struct {
	Products []models.Product    `json:"products"`
	Brands   []string            `json:"brands"`
	Types    []string            `json:"types"`
	Filters  catalog.FilterState `json:"filters"`
}

// ResolveView mirrors client-side navigation: the requested path becomes
// the session's current path, resolves to a view, and the view's data is
// loaded. A response whose navigation was superseded mid-load is discarded
// (409) instead of presenting a page the user already left.
func (ct *Controller) ResolveView(c *gin.Context) {
	sess := middleware.GetSession(c)
	path := c.Request.URL.Path

	if c.Query("replace") == "1" {
		sess.Router.NavigateReplace(path)
	} else {
		sess.Router.Navigate(path)
	}
	view := navigation.Resolve(path)

	// Unauthorized admin access: silent replace-redirect home, no error page.
	if view.IsAdmin() && !middleware.IsAdmin(sess, ct.AdminResolver()) {
		sess.Router.NavigateReplace("/")
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Redirected", ViewPayload{
			View:     navigation.View{ID: navigation.ViewHome},
			Redirect: "/",
		}))
		return
	}

	// Leaving /checkout discards a half-finished wizard.
	if view.ID != navigation.ViewCheckout && sess.Wizard() != nil {
		sess.ClearWizard()
	}

	epoch := sess.Router.Epoch()
	payload, err := ct.loadView(c, sess, view)
	if err != nil {
		logrus.Warnf("[views] failed to load %s: %v", view.ID, err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, friendlyMessage(err)))
		return
	}
	if sess.Router.Epoch() != epoch {
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Navigation superseded"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "View resolved", payload))
}

// friendlyMessage surfaces the store API's own message when there is one.
func friendlyMessage(err error) string {
	if apiErr, ok := err.(*storeapi.APIError); ok {
		return apiErr.Message
	}
	return "Не вдалося завантажити дані. Спробуйте ще раз."
}

func (ct *Controller) loadView(c *gin.Context, sess *session.Session, view navigation.View) (*ViewPayload, error) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	payload := &ViewPayload{View: view}

	switch view.ID {
	case navigation.ViewHome:
		products, err := ct.trailers(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = buildListing(products, models.CategoryTrailers, parseFilters(c))

	case navigation.ViewComponents:
		products, err := ct.components(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = buildListing(products, models.CategoryComponents, parseFilters(c))

	case navigation.ViewProductDetail:
		product, err := ct.api.FetchTrailerBySlug(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = product

	case navigation.ViewComponentDetail:
		product, err := ct.api.FetchComponentByID(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = product

	case navigation.ViewOrderConfirmation:
		order, err := ct.apiFor(sess).FetchOrderByID(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = order

	case navigation.ViewCart:
		payload.Data = gin.H{
			"items": sess.Cart.Snapshot(),
			"total": sess.Cart.Total(),
		}

	case navigation.ViewFavorites:
		products, err := ct.favoriteProducts(ctx, sess)
		if err != nil {
			return nil, err
		}
		payload.Data = gin.H{
			"ids":      sess.Favorites.IDs(),
			"products": products,
		}

	case navigation.ViewMyOrders:
		if sess.Token() == "" {
			payload.Data = gin.H{"requiresAuth": true}
			return payload, nil
		}
		orders, err := ct.apiFor(sess).FetchMyOrders(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = orders

	case navigation.ViewMyProfile:
		if sess.Token() == "" {
			payload.Data = gin.H{"requiresAuth": true}
			return payload, nil
		}
		user, err := ct.apiFor(sess).Me(ctx)
		if err != nil {
			return nil, err
		}
		sess.SetUser(user)
		payload.Data = user

	case navigation.ViewCheckout:
		payload.Data = checkoutState(sess)

	case navigation.ViewAdminDashboard:
		data, err := ct.adminDashboard(ctx, sess)
		if err != nil {
			return nil, err
		}
		payload.Data = data

	case navigation.ViewAdminOrders:
		orders, err := ct.apiFor(sess).FetchAllOrders(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = orders

	case navigation.ViewAdminProducts:
		products, err := ct.trailers(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = products

	case navigation.ViewAdminAccessories:
		products, err := ct.components(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = products

	case navigation.ViewAdminUsers:
		users, err := ct.apiFor(sess).FetchUsers(ctx)
		if err != nil {
			return nil, err
		}
		payload.Data = users

	case navigation.ViewAdminTrailerEdit:
		product, err := ct.api.FetchTrailerByID(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = product

	case navigation.ViewAdminAccessoryEdit:
		product, err := ct.api.FetchComponentByID(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = product

	case navigation.ViewAdminUserEdit:
		user, err := ct.apiFor(sess).FetchUserByID(ctx, view.Param)
		if storeapi.IsNotFound(err) {
			payload.NotFound = true
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
		payload.Data = user
	}

	// Static pages (login, register, contacts, delivery-and-payment, the
	// admin "new" forms) carry no data.
	return payload, nil
}

func buildListing(products []models.Product, category string, filters catalog.FilterState) listingData {
	scoped := catalog.ByCategory(products, category)
	return listingData{
		Products: catalog.ApplyFilters(scoped, filters),
		Brands:   catalog.DistinctBrands(scoped),
		Types:    catalog.DistinctSubcategories(scoped),
		Filters:  filters,
	}
}

// parseFilters reads the listing filter state from query params. Absent
// params leave the all-default state, which filters nothing out.
func parseFilters(c *gin.Context) catalog.FilterState {
	return catalog.FilterState{
		SearchQuery:    c.Query("search"),
		MinPrice:       c.Query("minPrice"),
		MaxPrice:       c.Query("maxPrice"),
		Brands:         splitParam(c.Query("brands")),
		ComponentTypes: splitParam(c.Query("types")),
		InStockOnly:    c.Query("inStock") == "1",
	}
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (ct *Controller) favoriteProducts(ctx context.Context, sess *session.Session) ([]models.Product, error) {
	ids := sess.Favorites.IDs()
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	trailers, err := ct.trailers(ctx)
	if err != nil {
		return nil, err
	}
	components, err := ct.components(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(ids))
	for _, p := range append(trailers, components...) {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (ct *Controller) adminDashboard(ctx context.Context, sess *session.Session) (gin.H, error) {
	orders, err := ct.apiFor(sess).FetchAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	trailers, err := ct.trailers(ctx)
	if err != nil {
		return nil, err
	}
	components, err := ct.components(ctx)
	if err != nil {
		return nil, err
	}
	var revenue float64
	for _, o := range orders {
		if o.Status != models.OrderCancelled {
			revenue += o.Total
		}
	}
	return gin.H{
		"orderCount":     len(orders),
		"trailerCount":   len(trailers),
		"componentCount": len(components),
		"revenue":        revenue,
	}, nil
}
