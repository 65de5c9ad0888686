package server

import (
	"net/http"

	"giftly-be/internal/handler"
	appmw "giftly-be/internal/middleware"
	"giftly-be/internal/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Store    *handler.StoreHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Review   *handler.ReviewHandler
	Order    *handler.OrderHandler
	Connect  *handler.ConnectHandler
	Admin    *handler.AdminHandler
	Upload   *handler.UploadHandler
	Hook     *handler.HookHandler
}

type Server struct {
	echo     *echo.Echo
	handlers Handlers
}

func New(h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(appmw.RequestLogger())
	e.Use(appmw.Auth())
	e.Use(appmw.RateLimit())

	s := &Server{echo: e, handlers: h}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	s.echo.POST("/hooks/auth-email", h.Hook.AuthEmail)

	api := s.echo.Group("/api")

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/vendor-register", h.Auth.VendorRegister)

	// -------- public browse --------
	api.GET("/stores", h.Store.ListPublic)
	api.GET("/stores/:slug", h.Store.GetBySlug)
	api.GET("/products", h.Catalog.BrowseProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/products/:id/reviews", h.Review.ListForProduct)
	api.GET("/services", h.Catalog.BrowseServices)
	api.GET("/services/:id", h.Catalog.GetService)
	api.GET("/services/:id/reviews", h.Review.ListForService)

	// -------- gift receiver (token-addressed, no login) --------
	api.GET("/gift-receiver/:token", h.Order.GiftPreview)
	api.POST("/gift-receiver/:token/confirm", h.Order.ConfirmGift)

	// -------- authenticated --------
	authed := api.Group("", appmw.RequireAuth())
	authed.GET("/profile", h.Auth.GetProfile)
	authed.PATCH("/profile", h.Auth.UpdateProfile)

	authed.GET("/cart", h.Cart.GetCart)
	authed.POST("/cart", h.Cart.AddItem)
	authed.DELETE("/cart", h.Cart.Clear)
	authed.PATCH("/cart/items/:id", h.Cart.UpdateItem)
	authed.DELETE("/cart/items/:id", h.Cart.RemoveItem)

	authed.GET("/wishlist", h.Wishlist.List)
	authed.POST("/wishlist", h.Wishlist.Add)
	authed.DELETE("/wishlist/:id", h.Wishlist.Remove)

	authed.POST("/reviews", h.Review.Create)

	authed.POST("/orders", h.Order.Create)
	authed.GET("/orders", h.Order.List)
	authed.GET("/orders/:id", h.Order.Get)
	authed.POST("/orders/:id/cancel", h.Order.Cancel)

	authed.POST("/uploads", h.Upload.Upload)

	// -------- vendor --------
	vendor := api.Group("/vendor", appmw.RequireRole(string(user.RoleVendor)))
	vendor.GET("/store", h.Store.GetVendorStore)
	vendor.PATCH("/store", h.Store.UpdateVendorStore)

	vendor.GET("/products", h.Catalog.ListVendorProducts)
	vendor.POST("/products", h.Catalog.CreateProduct)
	vendor.PATCH("/products/:id", h.Catalog.UpdateProduct)
	vendor.DELETE("/products/:id", h.Catalog.DeleteProduct)

	vendor.GET("/services", h.Catalog.ListVendorServices)
	vendor.POST("/services", h.Catalog.CreateService)
	vendor.PATCH("/services/:id", h.Catalog.UpdateService)
	vendor.DELETE("/services/:id", h.Catalog.DeleteService)

	vendor.GET("/orders", h.Order.ListVendorOrders)
	vendor.PATCH("/orders/:id/status", h.Order.UpdateVendorOrderStatus)

	connect := api.Group("/connect", appmw.RequireRole(string(user.RoleVendor)))
	connect.POST("/onboard", h.Connect.Onboard)
	connect.GET("/complete", h.Connect.Complete)
	connect.GET("/dashboard-link", h.Connect.DashboardLink)
	connect.POST("/disconnect", h.Connect.Disconnect)

	// -------- admin --------
	admin := api.Group("/admin", appmw.RequireRole(string(user.RoleAdmin)))
	admin.GET("/commission", h.Admin.GetSettings)
	admin.PATCH("/commission", h.Admin.UpdateSettings)

	admin.GET("/stores", h.Admin.ListStores)
	admin.POST("/stores/:id/approve", h.Admin.ApproveStore)
	admin.POST("/stores/:id/reject", h.Admin.RejectStore)
	admin.POST("/stores/:id/suspend", h.Admin.SuspendStore)

	admin.GET("/orders", h.Admin.ListOrders)
	admin.GET("/payouts", h.Admin.ListPayouts)
	admin.POST("/process-payouts", h.Admin.ProcessPayouts)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
