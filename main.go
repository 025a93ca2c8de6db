package main

import (
	"fmt"
	"log"
	"os"

	"aquacrm-backend/config"
	"aquacrm-backend/controllers"
	"aquacrm-backend/models"
	"aquacrm-backend/routes"
	"aquacrm-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.CatalogProduct{},
		&models.Invoice{},
		&models.Product{},
		&models.DraftRecord{},
		&models.ReminderTemplate{},
		&models.ReminderLog{},
	)
}

func main() {
	// Hydrate the invoice draft before the router can accept writes
	if err := controllers.InitDrafts(services.NewDraftStore(services.NewDBBackend(config.DB))); err != nil {
		log.Fatalf("Failed to hydrate invoice draft: %v", err)
	}

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	importer := services.NewImporter(services.NewGormInvoiceStore(config.DB))
	importer.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
