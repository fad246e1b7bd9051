package navigation

import "strings"

// ViewID enumerates every page the storefront can show.
type ViewID string

const (
	ViewHome              ViewID = "home"
	ViewLogin             ViewID = "login"
	ViewRegister          ViewID = "register"
	ViewCart              ViewID = "cart"
	ViewFavorites         ViewID = "favorites"
	ViewComponents        ViewID = "components"
	ViewContacts          ViewID = "contacts"
	ViewDeliveryPayment   ViewID = "delivery-and-payment"
	ViewCheckout          ViewID = "checkout"
	ViewMyOrders          ViewID = "my-orders"
	ViewMyProfile         ViewID = "my-profile"
	ViewProductDetail     ViewID = "product-detail"
	ViewComponentDetail   ViewID = "component-detail"
	ViewOrderConfirmation ViewID = "order-confirmation"

	ViewAdminDashboard     ViewID = "admin-dashboard"
	ViewAdminOrders        ViewID = "admin-orders"
	ViewAdminProducts      ViewID = "admin-products"
	ViewAdminAccessories   ViewID = "admin-accessories"
	ViewAdminUsers         ViewID = "admin-users"
	ViewAdminTrailerNew    ViewID = "admin-trailer-new"
	ViewAdminTrailerEdit   ViewID = "admin-trailer-edit"
	ViewAdminAccessoryNew  ViewID = "admin-accessory-new"
	ViewAdminAccessoryEdit ViewID = "admin-accessory-edit"
	ViewAdminUserNew       ViewID = "admin-user-new"
	ViewAdminUserEdit      ViewID = "admin-user-edit"
)

// View is the outcome of resolving a path: the page to show plus the raw
// dynamic segment for views that carry one (slug, id). Param is taken
// verbatim from the path; a value that matches nothing downstream renders
// as the page's not-found state, never as a resolver error.
type View struct {
	ID    ViewID `json:"id"`
	Param string `json:"param,omitempty"`
}

// IsAdmin reports whether the view belongs to the back office.
func (v View) IsAdmin() bool {
	return strings.HasPrefix(string(v.ID), "admin-")
}

// Resolve maps a path to the view it shows. It is a pure, total function:
// anything unrecognized falls through to the home view.
//
// Precedence: parameterized admin routes, exact admin routes, public detail
// prefixes, then the fixed public table.
func Resolve(path string) View {
	switch {
	case strings.HasPrefix(path, "/admin/trailer/new"):
		return View{ID: ViewAdminTrailerNew}
	case strings.HasPrefix(path, "/admin/trailer/edit/"):
		return View{ID: ViewAdminTrailerEdit, Param: segmentAt(path, 4)}
	case strings.HasPrefix(path, "/admin/accessories/new"):
		return View{ID: ViewAdminAccessoryNew}
	case strings.HasPrefix(path, "/admin/accessories/edit/"):
		return View{ID: ViewAdminAccessoryEdit, Param: segmentAt(path, 4)}
	case strings.HasPrefix(path, "/admin/user/edit/"):
		return View{ID: ViewAdminUserEdit, Param: segmentAt(path, 4)}
	}

	switch path {
	case "/admin/user/new":
		return View{ID: ViewAdminUserNew}
	case "/admin/orders":
		return View{ID: ViewAdminOrders}
	case "/admin/products":
		return View{ID: ViewAdminProducts}
	case "/admin/accessories":
		return View{ID: ViewAdminAccessories}
	case "/admin/users":
		return View{ID: ViewAdminUsers}
	case "/admin":
		return View{ID: ViewAdminDashboard}
	}

	switch {
	case strings.HasPrefix(path, "/order-confirmation/"):
		return View{ID: ViewOrderConfirmation, Param: segmentAt(path, 2)}
	case strings.HasPrefix(path, "/product/"):
		return View{ID: ViewProductDetail, Param: segmentAt(path, 2)}
	case strings.HasPrefix(path, "/details/"):
		return View{ID: ViewComponentDetail, Param: segmentAt(path, 2)}
	}

	switch path {
	case "/login":
		return View{ID: ViewLogin}
	case "/register":
		return View{ID: ViewRegister}
	case "/cart":
		return View{ID: ViewCart}
	case "/favorites":
		return View{ID: ViewFavorites}
	case "/details":
		return View{ID: ViewComponents}
	case "/contacts":
		return View{ID: ViewContacts}
	case "/delivery-and-payment":
		return View{ID: ViewDeliveryPayment}
	case "/checkout":
		return View{ID: ViewCheckout}
	case "/my-orders":
		return View{ID: ViewMyOrders}
	case "/my-profile":
		return View{ID: ViewMyProfile}
	default:
		return View{ID: ViewHome}
	}
}

// segmentAt returns the i-th "/"-separated segment of path, or "" when the
// path is too short. No decoding, no shape validation.
func segmentAt(path string, i int) string {
	parts := strings.Split(path, "/")
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}
