package employee

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByActor(3, 10),
			handler.GetAll,
		)

		employees.GET("/:employee_id",
			middleware.RateLimitByActor(3, 10),
			handler.GetByEmployeeID,
		)

		employees.POST("",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RequirePrivileged(),
			handler.Create,
		)

		employees.PATCH("/:employee_id",
			middleware.RateLimitByActor(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:employee_id",
			middleware.RateLimitByActor(0.1, 1),
			middleware.RequirePrivileged(),
			handler.Delete,
		)
	}
}
