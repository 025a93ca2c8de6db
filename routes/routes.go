package routes

import (
	"os"
	"strings"

	"aquacrm-backend/config"
	"aquacrm-backend/controllers"
	"aquacrm-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Catalog product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			// Draft routes come before /:id so gin does not treat
			// "draft" as an invoice identifier
			invoices.GET("/draft", controllers.GetDraft)
			invoices.PUT("/draft", controllers.SaveDraft)
			invoices.DELETE("/draft", controllers.ClearDraft)
			invoices.POST("/draft/items", controllers.DraftItemOp)

			invoices.POST("/import", controllers.ImportInvoices)
			invoices.POST("/upsert", controllers.UpsertInvoice)

			invoices.GET("/export/csv", controllers.ExportInvoicesCSV)
			invoices.GET("/export/sales-csv", controllers.ExportSalesCSV)
			invoices.GET("/export/pdf", controllers.ExportInvoicesPDF)
			invoices.GET("/export/xlsx", controllers.ExportInvoicesXLSX)

			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Reminder template routes
		templates := api.Group("/reminder-templates")
		{
			templates.POST("", controllers.CreateReminderTemplate)
			templates.GET("", controllers.GetReminderTemplates)
			templates.PUT("/:id", controllers.UpdateReminderTemplate)
			templates.DELETE("/:id", controllers.DeleteReminderTemplate)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
