package routes

import (
	"backend/config"
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewChatHub()
	recipes := services.NewRecipeService()
	facts := services.NewFoodFactsService()
	plans := services.NewPlanService(config.DB, recipes)
	chat := services.NewChatService(config.DB, hub)
	bookmarks := services.NewBookmarkService(config.DB)
	health := services.NewHealthService(nil) // no platform source server-side; synthetic fallback
	assistant := services.NewAssistantService(plans)

	planCtl := controllers.NewPlanController(plans)
	chatCtl := controllers.NewChatController(chat, hub)
	bookmarkCtl := controllers.NewBookmarkController(bookmarks)
	factsCtl := controllers.NewFoodFactsController(facts)
	healthCtl := controllers.NewHealthController(health)
	assistantCtl := controllers.NewAssistantController(assistant)

	// Public
	dev := r.Group("/dev")
	{
		dev.POST("/token", controllers.MintDevToken)
	}
	guest := r.Group("/guest")
	{
		guest.POST("/bookmarks", bookmarkCtl.SaveGuest)
		guest.GET("/bookmarks", bookmarkCtl.ListGuest)
	}

	// Authenticated API
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/plans/generate", planCtl.Generate)
		api.POST("/plans/manual", planCtl.CreateManual)
		api.GET("/plans/current", planCtl.Current)
		api.GET("/plans/:id/summary", planCtl.Summary)
		api.POST("/plans/:id/archive", planCtl.Archive)

		api.GET("/chat/:peerId/history", chatCtl.History)
		api.POST("/chat/:peerId/messages", chatCtl.Send)
		api.GET("/ws/chat", chatCtl.ChatWS)

		api.POST("/bookmarks", bookmarkCtl.Save)
		api.GET("/bookmarks", bookmarkCtl.List)
		api.DELETE("/bookmarks/:recipeId", bookmarkCtl.Remove)
		api.POST("/bookmarks/reconcile", bookmarkCtl.Reconcile)

		api.GET("/foodfacts/:barcode", factsCtl.Lookup)
		api.GET("/health/:metric", healthCtl.Latest)
		api.POST("/assistant/ask", assistantCtl.Ask)
	}

	return r
}
