package router

import (
	"github.com/gin-gonic/gin"
	"github.com/labakery/backend/internal/interfaces/http/handler"
)

// Handlers bundles every handler the API serves
type Handlers struct {
	Order    *handler.OrderHandler
	Product  *handler.ProductHandler
	Upload   *handler.UploadHandler
	Expense  *handler.ExpenseHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
	Auth     *handler.AuthHandler
	System   *handler.SystemHandler
}

// Guards are the route-specific middlewares. Any of them may be nil.
type Guards struct {
	// Admin authenticates back-office requests
	Admin gin.HandlerFunc
	// OptionalAuth resolves a bearer token when one is sent
	OptionalAuth gin.HandlerFunc
	// CheckoutLimit throttles public order placement
	CheckoutLimit gin.HandlerFunc
	// LoginLimit throttles login attempts
	LoginLimit gin.HandlerFunc
	// JSONBody caps JSON request bodies
	JSONBody gin.HandlerFunc
	// UploadBody caps multipart uploads
	UploadBody gin.HandlerFunc
}

// PublicRoutes are the storefront endpoints plus the admin login
func PublicRoutes(h Handlers, g Guards) *DomainGroup {
	public := NewDomainGroup("public", "").Use(g.JSONBody)

	public.GET("/health", h.System.Health)
	public.GET("/system/info", h.System.Info)
	public.GET("/products", h.Product.ListPublic)
	public.GET("/configs", h.Settings.Get)
	public.POST("/orders", g.CheckoutLimit, g.OptionalAuth, h.Order.Checkout)
	public.POST("/admin/login", g.LoginLimit, h.Auth.Login)

	return public
}

// AdminRoutes are the back-office endpoints; all require an admin token
func AdminRoutes(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(g.Admin)

	api := admin.Group("admin-json", "").Use(g.JSONBody)
	api.POST("/logout", h.Auth.Logout)
	api.GET("/me", h.Auth.Me)

	api.GET("/orders", h.Order.List)
	api.GET("/orders/:id", h.Order.GetByID)
	api.PATCH("/orders/:id", h.Order.Update)
	api.POST("/pos-orders", h.Order.CreatePOSOrder)
	api.POST("/test-telegram", h.Order.TestNotification)

	api.GET("/products", h.Product.ListAdmin)
	api.POST("/products", h.Product.Create)
	api.GET("/products/:id", h.Product.GetByID)
	api.PATCH("/products/:id", h.Product.Update)
	api.POST("/products/:id/hide", h.Product.Hide)
	api.DELETE("/products/:id", h.Product.Delete)

	api.GET("/expenses", h.Expense.List)
	api.POST("/expenses", h.Expense.Create)
	api.GET("/expenses/:id", h.Expense.GetByID)
	api.PATCH("/expenses/:id", h.Expense.Update)
	api.DELETE("/expenses/:id", h.Expense.Delete)

	api.GET("/configs", h.Settings.Get)
	api.PATCH("/configs", h.Settings.Update)

	api.GET("/reports/financial", h.Report.Financial)
	api.GET("/reports/dashboard", h.Report.Dashboard)
	api.GET("/reports/chart", h.Report.Chart)

	uploads := admin.Group("admin-upload", "").Use(g.UploadBody)
	uploads.POST("/upload", h.Upload.Upload)

	return admin
}

// Mount registers the public and admin groups on r
func Mount(r *Router, h Handlers, g Guards) {
	r.Register(PublicRoutes(h, g)).Register(AdminRoutes(h, g))
	r.Setup()
}
