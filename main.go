package main

import (
	"log/slog"
	"os"

	"designmecha-mes/config"
	"designmecha-mes/internal/handlers"
	"designmecha-mes/internal/routes"
	"designmecha-mes/models"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.Partner{},
		&models.Staff{},
		&models.Equipment{},
		&models.Product{},
		&models.Process{},
		&models.ProductProcess{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.Stock{},
		&models.StockProduction{},
		&models.ProductionPlan{},
		&models.ProductionPlanItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.OutsourcingOrder{},
		&models.OutsourcingOrderItem{},
	); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	go handlers.FeedHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	addr := ":" + config.App.HTTPPort
	slog.Info("Starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
