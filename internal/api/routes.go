package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alcyxob/runplan/internal/service"
)

func SetupRoutes(router *gin.Engine, planService service.PlanService) {
	planHandler := NewPlanHandler(planService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		planGroup := apiV1.Group("/plans")
		{
			planGroup.POST("", planHandler.GeneratePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.GET("/:id/export", planHandler.ExportPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
		}
	}
}
