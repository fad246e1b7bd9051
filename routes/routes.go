package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/controllers"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
)

// Setup wires every endpoint of the storefront gateway. Anything not under
// /api is treated as a navigation path and resolved to a view.
func Setup(router *gin.Engine, ct *controllers.Controller) {
	api := router.Group("/api")

	// ════════════════════════════════════════════════════════════
	// Auth (proxied to the store API, token held in the session)
	// ════════════════════════════════════════════════════════════
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimiter(10, time.Minute), ct.Login)
		auth.POST("/register", middleware.RateLimiter(5, time.Minute), ct.Register)
		auth.POST("/logout", ct.Logout)
		auth.POST("/forgot-password", middleware.RateLimiter(3, 5*time.Minute), ct.ForgotPassword)
		auth.GET("/me", ct.Me)
		auth.PUT("/profile", ct.UpdateProfile)
		auth.PUT("/password", ct.UpdatePassword)
	}

	// ════════════════════════════════════════════════════════════
	// Cart and favorites (session state, no auth required)
	// ════════════════════════════════════════════════════════════
	cart := api.Group("/cart")
	{
		cart.GET("", ct.GetCart)
		cart.POST("/items", ct.AddToCart)
		cart.DELETE("/items/:productId", ct.RemoveFromCart)
		cart.POST("/items/:productId/increase", ct.IncreaseQuantity)
		cart.POST("/items/:productId/decrease", ct.DecreaseQuantity)
		cart.DELETE("", ct.ClearCart)
	}

	favorites := api.Group("/favorites")
	{
		favorites.GET("", ct.GetFavorites)
		favorites.POST("/:productId/toggle", ct.ToggleFavorite)
	}

	// ════════════════════════════════════════════════════════════
	// Checkout wizard
	// ════════════════════════════════════════════════════════════
	checkout := api.Group("/checkout")
	{
		checkout.POST("/start", ct.StartCheckout)
		checkout.GET("/state", ct.CheckoutState)
		checkout.POST("/customer", ct.SubmitCustomerInfo)
		checkout.POST("/delivery", ct.SubmitDeliveryPayment)
		checkout.POST("/back", ct.CheckoutBack)
		checkout.POST("/submit", ct.SubmitOrder)
	}

	// ════════════════════════════════════════════════════════════
	// Nova Poshta address lookups (rate limited, debounced)
	// ════════════════════════════════════════════════════════════
	delivery := api.Group("/delivery")
	{
		delivery.POST("/cities/search", middleware.RateLimiter(30, time.Minute), ct.SearchCities)
		delivery.GET("/cities/suggestions", ct.CitySuggestions)
		delivery.GET("/warehouses", ct.GetWarehouses)
	}

	// ════════════════════════════════════════════════════════════
	// Admin back office (role checked per request)
	// ════════════════════════════════════════════════════════════
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(ct.AdminResolver()))
	{
		admin.POST("/trailers", ct.CreateTrailer)
		admin.PUT("/trailers/:id", ct.UpdateTrailer)
		admin.DELETE("/trailers/:id", ct.DeleteTrailer)

		admin.POST("/components", ct.CreateComponent)
		admin.PUT("/components/:id", ct.UpdateComponent)
		admin.DELETE("/components/:id", ct.DeleteComponent)

		admin.PATCH("/orders/:id/status", ct.UpdateOrderStatus)
		admin.DELETE("/orders/:id", ct.DeleteOrder)

		admin.PUT("/users/:id", ct.UpdateUser)
		admin.DELETE("/users/:id", ct.DeleteUser)

		admin.POST("/media/upload", ct.UploadImage)
	}

	// Everything else is a navigation path: resolve it to a view and its
	// data. Unknown paths fall through to the home view inside Resolve.
	router.NoRoute(ct.ResolveView)
}
