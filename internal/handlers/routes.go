package handlers

import (
	"github.com/arzan03/StoreFront/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Routes holds every handler the API mounts.
type Routes struct {
	JWTSecret []byte
	Socket    fiber.Handler

	Auth      *AuthHandler
	Admin     *AdminHandler
	Products  *ProductHandler
	Carts     *CartHandler
	Orders    *OrderHandler
	Wishlists *WishlistHandler
	Contacts  *ContactHandler
	Reviews   *ReviewHandler
}

func (r *Routes) Mount(app *fiber.App) {
	auth := middleware.Auth(r.JWTSecret)
	admin := middleware.RequireAdmin

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running")
	})
	if r.Socket != nil {
		app.Get("/socket", r.Socket)
	}

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", r.Auth.Register)
	users.Post("/login", r.Auth.Login)
	users.Get("/profile", auth, r.Auth.Profile)
	users.Put("/profile", auth, r.Auth.UpdateProfile)
	users.Get("/", auth, admin, r.Admin.ListUsers)
	users.Get("/:id", auth, admin, r.Admin.GetUserByID)

	products := api.Group("/products")
	products.Get("/", r.Products.ListProducts)
	products.Get("/search", r.Products.Search)
	products.Get("/categories", r.Products.CategoryShowcase)
	products.Get("/category/:category", r.Products.ByCategory)
	products.Get("/trending", r.Products.Trending)

	stats := products.Group("/stats", auth, admin)
	stats.Get("/category", r.Admin.CategoryStats)
	stats.Get("/rating", r.Admin.RatingStats)
	stats.Get("/monthly", r.Admin.MonthlyStats)
	stats.Get("/sizes", r.Admin.SizeStats)
	stats.Get("/dashboard", r.Admin.Dashboard)

	products.Get("/:id", r.Products.GetProduct)
	products.Post("/", auth, admin, r.Products.AddProduct)
	products.Delete("/:id", auth, admin, r.Products.RemoveProduct)
	products.Patch("/:id/category", auth, admin, r.Products.ChangeCategory)
	products.Post("/:productId/reviews", auth, r.Products.AddReview)
	products.Put("/:productId/reviews/:reviewId", auth, r.Products.EditReview)
	products.Delete("/:productId/reviews/:reviewId", auth, r.Products.DeleteReview)

	cart := api.Group("/cart", auth)
	cart.Get("/", r.Carts.GetCart)
	cart.Post("/", r.Carts.AddItem)
	cart.Put("/", r.Carts.UpdateQuantity)
	cart.Delete("/", r.Carts.RemoveItem)

	wishlist := api.Group("/wishlist", auth)
	wishlist.Get("/", r.Wishlists.Get)
	wishlist.Post("/:productId", r.Wishlists.Add)
	wishlist.Delete("/:productId", r.Wishlists.Remove)

	orders := api.Group("/orders", auth)
	orders.Post("/checkout", r.Orders.Checkout)
	orders.Get("/my", r.Orders.MyOrders)
	orders.Get("/", admin, r.Orders.AllOrders)
	orders.Delete("/", admin, r.Orders.DeleteAllOrders)
	orders.Get("/:id", r.Orders.GetOrder)
	orders.Patch("/:id/status", admin, r.Orders.UpdateStatus)
	orders.Delete("/:id", admin, r.Orders.DeleteOrder)

	reviews := api.Group("/reviews")
	reviews.Get("/", r.Reviews.List)
	reviews.Post("/", auth, r.Reviews.Create)
	reviews.Delete("/", auth, admin, r.Reviews.DeleteAll)
	reviews.Put("/:id", auth, r.Reviews.Update)
	reviews.Delete("/:id", auth, r.Reviews.Delete)

	contacts := api.Group("/contacts", auth)
	contacts.Post("/", r.Contacts.Create)
	contacts.Get("/", admin, r.Contacts.List)
	contacts.Delete("/", admin, r.Contacts.DeleteAll)
	contacts.Delete("/:id", admin, r.Contacts.Delete)
}
