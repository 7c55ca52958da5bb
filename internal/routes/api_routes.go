// designmecha-mes/internal/routes/api_routes.go
package routes

import (
	"designmecha-mes/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes wires every API endpoint under /api.
func RegisterAPIRoutes(r *gin.RouterGroup) {
	api := r.Group("/api")
	{
		// --- PRODUCTION PLANS ---
		production := api.Group("/production")
		{
			production.GET("/plans", handlers.ListProductionPlansHandler)
			production.POST("/plans", handlers.CreateProductionPlanHandler)
			production.GET("/plans/draft", handlers.DraftProductionPlanHandler)
			production.GET("/plans/:id", handlers.GetProductionPlanHandler)
			production.PUT("/plans/:id", handlers.UpdateProductionPlanHandler)
			production.DELETE("/plans/:id", handlers.DeleteProductionPlanHandler)
			production.POST("/plans/:id/reorder", handlers.ReorderPlanItemsHandler)
			production.POST("/plans/:id/complete", handlers.CompleteProductionPlanHandler)
			production.POST("/plans/:id/revert", handlers.RevertProductionPlanHandler)
			production.GET("/plans/:id/export_excel", handlers.ExportProductionPlanHandler)

			production.PATCH("/plan-items/:id/status", handlers.UpdatePlanItemStatusHandler)

			production.GET("/board", handlers.ProductionBoardHandler)
			production.GET("/feed", handlers.ProductionFeedEndpoint)
		}

		// --- PURCHASING ---
		purchase := api.Group("/purchase")
		{
			purchase.GET("/pending-items", handlers.PendingPurchaseItemsHandler)
			purchase.GET("/orders", handlers.ListPurchaseOrdersHandler)
			purchase.POST("/orders", handlers.CreatePurchaseOrderHandler)
			purchase.PATCH("/orders/:id/status", handlers.UpdatePurchaseOrderStatusHandler)
			purchase.DELETE("/orders/:id", handlers.DeletePurchaseOrderHandler)
		}

		outsourcing := api.Group("/outsourcing")
		{
			outsourcing.GET("/pending-items", handlers.PendingOutsourcingItemsHandler)
			outsourcing.GET("/orders", handlers.ListOutsourcingOrdersHandler)
			outsourcing.POST("/orders", handlers.CreateOutsourcingOrderHandler)
			outsourcing.PATCH("/orders/:id/status", handlers.UpdateOutsourcingOrderStatusHandler)
			outsourcing.DELETE("/orders/:id", handlers.DeleteOutsourcingOrderHandler)
		}

		// --- SALES ---
		sales := api.Group("/sales")
		{
			sales.GET("/orders", handlers.ListSalesOrdersHandler)
			sales.POST("/orders", handlers.CreateSalesOrderHandler)
			sales.GET("/orders/:id", handlers.GetSalesOrderHandler)
			sales.PATCH("/orders/:id/status", handlers.UpdateSalesOrderStatusHandler)
			sales.DELETE("/orders/:id", handlers.DeleteSalesOrderHandler)
		}

		// --- INVENTORY ---
		inventory := api.Group("/inventory")
		{
			inventory.GET("/stocks", handlers.ListStocksHandler)
			inventory.GET("/stocks/:id", handlers.GetStockHandler)
			inventory.PUT("/stocks/:id", handlers.UpdateStockHandler)
			inventory.GET("/stock-productions", handlers.ListStockProductionsHandler)
			inventory.POST("/stock-productions", handlers.CreateStockProductionHandler)
			inventory.POST("/stock-productions/:id/cancel", handlers.CancelStockProductionHandler)
		}

		// --- MASTER DATA ---
		api.GET("/products", handlers.ListProductsHandler)
		api.GET("/products/:id", handlers.GetProductHandler)
		api.GET("/processes", handlers.ListProcessesHandler)
		api.GET("/partners", handlers.ListPartnersHandler)
		api.GET("/staff", handlers.ListStaffHandler)
		api.GET("/equipment", handlers.ListEquipmentHandler)
	}
}
