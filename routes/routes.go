package routes

import (
	"go-bizops-dashboard/controllers"
	"go-bizops-dashboard/middlewares"
	"go-bizops-dashboard/models"

	"github.com/gin-gonic/gin"
)

// guard returns the middleware that protects one permission area.
type guard func(code string) gin.HandlerFunc

// admins are not permission-scoped
func allow(string) gin.HandlerFunc { return func(c *gin.Context) { c.Next() } }

// byKind guards the preview with the permission of the document kind it
// computes.
func byKind(need guard) gin.HandlerFunc {
	invoice, quotation := need(models.PermInvoice), need(models.PermQuotation)
	return func(c *gin.Context) {
		if c.Query("kind") == "quotation" {
			quotation(c)
			return
		}
		invoice(c)
	}
}

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{

		// ================= ADMIN APP =================
		admin := api.Group("/admin")
		{
			admin.POST("/register", controllers.AdminRegister)
			admin.POST("/login", controllers.AdminLogin)

			// Everything below needs an admin token
			adminAuth := admin.Group("", middlewares.AdminAuth())

			adminAuth.GET("/profile", controllers.GetDataAdminProfile)
			adminAuth.PUT("/profile", controllers.AdminUpdateProfile)
			adminAuth.PUT("/profile/password", controllers.AdminChangePassword)

			// Operational users
			adminAuth.GET("/users", controllers.AdminGetAllUsers)
			adminAuth.POST("/users", controllers.AdminCreateUser)
			adminAuth.PUT("/users/:id/permissions", controllers.AdminSetUserPermissions)
			adminAuth.GET("/permissions", controllers.AdminListPermissions)

			business := adminAuth.Group("/businesses")
			{
				business.GET("", controllers.GetAllBusinesses)
				business.GET("/:id", controllers.GetBusinessByID)
				business.POST("", controllers.CreateBusiness)
				business.PUT("/:id", controllers.UpdateBusiness)
				business.DELETE("/:id", controllers.DeleteBusiness)
			}

			terms := adminAuth.Group("/terms")
			{
				terms.GET("", controllers.GetAllTerms)
				terms.GET("/:id", controllers.GetTermsByID)
				terms.POST("", controllers.CreateTerms)
				terms.PUT("/:id", controllers.UpdateTerms)
				terms.DELETE("/:id", controllers.DeleteTerms)
			}

			masterRoutes(adminAuth, allow)
			documentRoutes(adminAuth, allow)
		}

		// ================= USER APP =================
		user := api.Group("/user")
		{
			user.POST("/login", controllers.UserLogin)

			userAuth := user.Group("", middlewares.UserAuth())
			{
				userAuth.GET("/profile", controllers.UserProfile)
				userAuth.PUT("/profile", controllers.UserUpdateProfile)
				userAuth.PUT("/profile/password", controllers.UserChangePassword)
				userAuth.GET("/permissions", controllers.GetPermissions)

				// Letterheads and terms are read-only for users
				userAuth.GET("/businesses", controllers.GetAllBusinesses)
				userAuth.GET("/terms", controllers.GetAllTerms)

				masterRoutes(userAuth, middlewares.RequirePerm)
				documentRoutes(userAuth, middlewares.RequirePerm)
			}
		}
	}
}

func masterRoutes(g *gin.RouterGroup, need guard) {
	customer := g.Group("/customers", need(models.PermCustomer))
	{
		customer.GET("", controllers.GetAllCustomer)
		customer.GET("/:id", controllers.GetCustomerByID)
		customer.POST("", controllers.CreateCustomer)
		customer.PUT("/:id", controllers.UpdateCustomer)
		customer.DELETE("/:id", controllers.DeleteCustomer)
	}

	catalog := g.Group("/catalog", need(models.PermCatalog))
	{
		catalog.GET("", controllers.GetAllCatalogItems)
		catalog.GET("/:id", controllers.GetCatalogItemByID)
		catalog.POST("", controllers.CreateCatalogItem)
		catalog.PUT("/:id", controllers.UpdateCatalogItem)
		catalog.DELETE("/:id", controllers.DeleteCatalogItem)
	}
}

func documentRoutes(g *gin.RouterGroup, need guard) {
	g.POST("/documents/preview", byKind(need), controllers.PreviewDocument)

	invoices := g.Group("/invoices", need(models.PermInvoice))
	{
		invoices.GET("", controllers.ListInvoices)
		invoices.POST("", controllers.CreateInvoice)
		invoices.GET("/:id", controllers.GetInvoice)
		invoices.PUT("/:id", controllers.UpdateInvoice)
		invoices.DELETE("/:id", controllers.DeleteInvoice)
		invoices.PUT("/:id/status", controllers.ChangeInvoiceStatus)
		invoices.POST("/:id/payments", controllers.RecordInvoicePayment)
		invoices.GET("/:id/pdf", controllers.InvoicePDF)
	}

	quotations := g.Group("/quotations", need(models.PermQuotation))
	{
		quotations.GET("", controllers.ListQuotations)
		quotations.POST("", controllers.CreateQuotation)
		quotations.GET("/:id", controllers.GetQuotation)
		quotations.PUT("/:id", controllers.UpdateQuotation)
		quotations.PUT("/:id/status", controllers.ChangeQuotationStatus)
		quotations.POST("/:id/convert", controllers.ConvertQuotation)
		quotations.GET("/:id/pdf", controllers.QuotationPDF)
	}

	offers := g.Group("/offers", need(models.PermOffer))
	{
		offers.POST("/preview", controllers.PreviewOffer)
		offers.GET("", controllers.ListOffers)
		offers.POST("", controllers.CreateOffer)
		offers.GET("/:id", controllers.GetOffer)
		offers.PUT("/:id", controllers.UpdateOffer)
		offers.GET("/:id/pdf", controllers.OfferPDF)
	}

	g.GET("/reports/receivables", need(models.PermReportView), controllers.ReportReceivables)
}
