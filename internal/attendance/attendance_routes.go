package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	attendances.Use(middleware.ContextLogger(logger))
	{
		attendances.GET("",
			middleware.RateLimitByActor(3, 10),
			handler.GetAll,
		)

		attendances.POST("",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RequirePrivileged(),
			handler.Create,
		)

		attendances.GET("/reports/:month",
			middleware.RateLimitByActor(1, 5),
			handler.MonthlyReport,
		)

		attendances.GET("/reports/:month/:employee_id",
			middleware.RateLimitByActor(1, 5),
			middleware.RequirePrivileged(),
			handler.MonthlyReport,
		)

		attendances.GET("/:date/:employee_id",
			middleware.RateLimitByActor(3, 10),
			handler.GetByDateAndEmployee,
		)

		attendances.PATCH("/:date/:employee_id",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RequirePrivileged(),
			handler.Update,
		)

		attendances.DELETE("/:date/:employee_id",
			middleware.RateLimitByActor(0.1, 1),
			middleware.RequirePrivileged(),
			handler.Delete,
		)
	}
}
